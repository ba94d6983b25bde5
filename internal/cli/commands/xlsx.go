package commands

import (
	"bytes"
	"strconv"

	"github.com/conduit-lang/chartdata/internal/source"
	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/spf13/cobra"
)

func newXLSXCommand(a *app) *cobra.Command {
	var (
		out      outputOptions
		sheet    string
		noHeader bool
		types    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "xlsx <workbook>",
		Short: "Render a spreadsheet sheet as a table",
		Long: `Read one sheet of an Excel workbook and turn it into a table. The first
row holds column labels unless --no-header is set. Column types follow the
cell types and number formats of the first data row.

Examples:
  chartdata xlsx sales.xlsx
  chartdata xlsx sales.xlsx --sheet Q2 -f table
  chartdata xlsx sales.xlsx --no-header --pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseTypeOverrides(types)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			settings := []string{"xlsx", sheet, strconv.FormatBool(noHeader), overrideSettings(types)}
			return a.emit(cmd, &out, data, settings, func() (*datatable.DataTable, error) {
				return source.ReadXLSXFrom(bytes.NewReader(data), source.Options{
					Timezone: a.cfg.Timezone,
					Types:    overrides,
					Sheet:    sheet,
					NoHeader: noHeader,
					Logger:   a.logger,
				})
			})
		},
	}

	out.register(cmd)
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default first sheet)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first row as data")
	cmd.Flags().StringToStringVarP(&types, "type", "t", nil, "Override a column type, e.g. -t Day=date")

	return cmd
}
