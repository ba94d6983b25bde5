package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/conduit-lang/chartdata/internal/cli/ui"
	"github.com/conduit-lang/chartdata/internal/source"
	"github.com/conduit-lang/chartdata/internal/tabledoc"
	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	var (
		limit int
		sheet string
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Describe the columns and rows of a table",
		Long: `Load a table document or workbook and show its timezone, columns,
formatters and the first rows.

Examples:
  chartdata inspect sales.yml
  chartdata inspect sales.xlsx --sheet Q2 --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			dt, err := a.loadTable(path, sheet)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			summary := ui.NewKeyValueTable(w, a.noColor)
			summary.AddRow("Source", path)
			summary.AddRow("Timezone", dt.Timezone())
			summary.AddRow("Columns", strconv.Itoa(dt.ColumnCount()))
			summary.AddRow("Rows", humanize.Comma(int64(dt.RowCount())))
			summary.Render()
			fmt.Fprintln(w)

			ui.Header(w, "Columns", a.noColor)
			cols := ui.NewTable(w, []string{"#", "id", "label", "type", "role", "pattern", "format"}, &ui.TableOptions{NoColor: a.noColor})
			for i, c := range dt.Columns() {
				format := ""
				if f, ok := dt.Formatter(i); ok {
					format = f.Type()
				}
				cols.AddRow(strconv.Itoa(i), c.ID(), c.Label(), c.Type().String(), c.Role(), c.Pattern(), format)
			}
			cols.Render()
			fmt.Fprintln(w)

			ui.Header(w, "Rows", a.noColor)
			ui.Preview(w, dt, ui.PreviewOptions{Limit: limit, NoColor: a.noColor})
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Rows to preview (0 shows all)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name for workbooks (default first sheet)")

	return cmd
}

// loadTable reads a workbook or a table document, chosen by extension
func (a *app) loadTable(path, sheet string) (*datatable.DataTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return source.ReadXLSX(path, source.Options{
			Timezone: a.cfg.Timezone,
			Sheet:    sheet,
			Logger:   a.logger,
		})
	default:
		doc, err := tabledoc.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return tabledoc.Build(doc, a.cfg.Timezone, a.logger)
	}
}
