package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/conduit-lang/chartdata/internal/cache"
	"github.com/conduit-lang/chartdata/internal/cli/ui"
	"github.com/conduit-lang/chartdata/internal/tabledoc"
	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Output formats
const (
	outputWire  = "wire"
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTable = "table"
)

var outputFormats = []string{outputWire, outputJSON, outputYAML, outputTable}

// outputOptions are the flags shared by every command that produces a table
type outputOptions struct {
	format string
	file   string
	pretty bool
	limit  int
}

func (o *outputOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.format, "format", "f", outputWire, "Output format: wire, json, yaml, table")
	f.StringVarP(&o.file, "output", "o", "", "Write output to a file instead of stdout")
	f.BoolVar(&o.pretty, "pretty", false, "Indent wire JSON")
	f.IntVar(&o.limit, "limit", 20, "Rows shown by the table format (0 shows all)")
}

func (o *outputOptions) validate() error {
	for _, f := range outputFormats {
		if o.format == f {
			return nil
		}
	}
	return &nameError{kind: "output format", name: o.format, valid: outputFormats}
}

// encode serializes dt: wire is the renderer JSON, json and yaml are table documents
func (o *outputOptions) encode(dt *datatable.DataTable) ([]byte, error) {
	switch o.format {
	case outputJSON:
		return tabledoc.Encode(tabledoc.FromTable(dt), tabledoc.JSON)
	case outputYAML:
		return tabledoc.Encode(tabledoc.FromTable(dt), tabledoc.YAML)
	default:
		if o.pretty {
			return dt.ToJSONIndent("  ")
		}
		s, err := dt.ToJSON()
		return []byte(s), err
	}
}

// emit builds a table and writes it in the selected format. Encoded output is
// looked up in the render cache first, keyed by source and settings.
func (a *app) emit(cmd *cobra.Command, o *outputOptions, source []byte, settings []string, build func() (*datatable.DataTable, error)) error {
	if err := o.validate(); err != nil {
		return err
	}

	if o.format == outputTable {
		dt, err := build()
		if err != nil {
			return err
		}
		return o.writeWith(cmd, a, func(w io.Writer) error {
			ew := &errWriter{w: w}
			ui.Preview(ew, dt, ui.PreviewOptions{Limit: o.limit, NoColor: a.noColor || o.file != ""})
			return ew.err
		})
	}

	c, err := a.renderCache()
	if err != nil {
		return err
	}

	settings = append(settings, o.format, strconv.FormatBool(o.pretty), datatable.DefaultTimezone())
	key := cache.RenderKey(source, settings...)

	data, hit, err := cache.Fetch(cmd.Context(), c, key, a.logger, func() ([]byte, error) {
		dt, err := build()
		if err != nil {
			return nil, err
		}
		return o.encode(dt)
	})
	if err != nil {
		return err
	}
	a.logger.Debug("rendered table", zap.Bool("cached", hit), zap.Int("bytes", len(data)))

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return o.writeWith(cmd, a, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeWith sends output to the --output file or stdout
func (o *outputOptions) writeWith(cmd *cobra.Command, a *app, write func(io.Writer) error) error {
	if o.file == "" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	f, err := os.Create(o.file)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}

	info, statErr := f.Stat()
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	size := "unknown size"
	if statErr == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	ui.WriteSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Wrote %s (%s)", o.file, size), a.noColor)
	return nil
}

// errWriter keeps the first write error so writers that ignore errors can
// still report one
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// parseTypeOverrides converts --type name=tag flags
func parseTypeOverrides(in map[string]string) (map[string]datatable.ColumnType, error) {
	if len(in) == 0 {
		return nil, nil
	}

	out := make(map[string]datatable.ColumnType, len(in))
	for _, name := range sortedKeys(in) {
		t, err := datatable.ParseColumnType(in[name])
		if err != nil {
			return nil, &nameError{
				kind:  "column type",
				name:  in[name],
				valid: datatable.ColumnTypeTags(),
				hint:  "List column types: chartdata types",
				err:   err,
			}
		}
		out[name] = t
	}
	return out, nil
}

// overrideSettings renders --type flags in a stable order for cache keys
func overrideSettings(in map[string]string) string {
	s := ""
	for _, name := range sortedKeys(in) {
		s += name + "=" + in[name] + ";"
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
