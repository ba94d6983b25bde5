package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/conduit-lang/chartdata/internal/tabledoc"
	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/spf13/cobra"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		out         outputOptions
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a table document as chart JSON",
		Long: `Read a YAML or JSON table document, validate every row against its
columns, apply its formatters and print the result.

The input encoding follows the file extension (.json is JSON, anything else
YAML). Use - to read from stdin.

Examples:
  chartdata render sales.yml                  # Compact cols/rows JSON
  chartdata render sales.yml --pretty -o out.json
  chartdata render sales.yml -f table         # Preview in the terminal
  cat sales.json | chartdata render - --input-format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			enc := tabledoc.EncodingFor(path)
			if inputFormat != "" {
				var err error
				if enc, err = tabledoc.ParseEncoding(inputFormat); err != nil {
					return err
				}
			}

			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			return a.emit(cmd, &out, data, []string{"render", string(enc)}, func() (*datatable.DataTable, error) {
				doc, err := tabledoc.Parse(data, enc)
				if err != nil {
					return nil, err
				}
				return tabledoc.Build(doc, a.cfg.Timezone, a.logger)
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input encoding: yaml, json (default from extension)")

	return cmd
}

// readInput reads a file, or stdin for "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
