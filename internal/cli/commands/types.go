package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/conduit-lang/chartdata/internal/cli/ui"
	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/conduit-lang/chartdata/pkg/datatable/formats"
	"github.com/spf13/cobra"
)

func newTypesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List column types, roles and formatters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			ui.Header(w, "Column types", a.noColor)
			types := ui.NewTable(w, []string{"type", "date-like", "wire value"}, &ui.TableOptions{NoColor: a.noColor})
			for _, tag := range datatable.ColumnTypeTags() {
				t, err := datatable.ParseColumnType(tag)
				if err != nil {
					return err
				}
				types.AddRow(tag, fmt.Sprint(t.IsDateLike()), wireExample(t))
			}
			types.Render()
			fmt.Fprintln(w)

			ui.Header(w, "Column roles", a.noColor)
			fmt.Fprintln(w, strings.Join(datatable.Roles(), ", "))
			fmt.Fprintln(w)

			ui.Header(w, "Formatters", a.noColor)
			fmt.Fprintln(w, strings.Join(formats.Types(), ", "))
			return nil
		},
	}
}

func wireExample(t datatable.ColumnType) string {
	switch t {
	case datatable.TypeBoolean:
		return "true"
	case datatable.TypeNumber:
		return "1234.5"
	case datatable.TypeString:
		return `"text"`
	case datatable.TypeDate:
		return strconv.Quote(datatable.DateLiteral(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	case datatable.TypeDateTime:
		return strconv.Quote(datatable.DateLiteral(time.Date(2024, 1, 31, 13, 45, 0, 0, time.UTC)))
	case datatable.TypeTimeOfDay:
		return "[13,45,0]"
	default:
		return ""
	}
}
