package ui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/conduit-lang/chartdata/pkg/datatable"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// PreviewOptions configures Preview
type PreviewOptions struct {
	// Limit caps the rows shown; zero shows every row
	Limit   int
	NoColor bool
}

// Preview renders a DataTable as a terminal table. Display strings win over
// raw values, so column formatters show through.
func Preview(w io.Writer, dt *datatable.DataTable, opts PreviewOptions) {
	cols := dt.Columns()
	if len(cols) == 0 {
		newColor(opts.NoColor, color.FgHiBlack).Fprintln(w, "(no columns)")
		return
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		name := c.Label()
		if name == "" {
			name = c.ID()
		}
		headers[i] = fmt.Sprintf("%s (%s)", name, c.Type())
	}

	table := NewTable(w, headers, &TableOptions{NoColor: opts.NoColor})

	wire := dt.Wire()
	rows := dt.Rows()
	shown := len(rows)
	if opts.Limit > 0 && shown > opts.Limit {
		shown = opts.Limit
	}

	for r := 0; r < shown; r++ {
		cells := rows[r].Cells()
		out := make([]string, len(cells))
		for i, cell := range cells {
			if f := wire.Rows[r].C[i].F; f != "" {
				out[i] = f
				continue
			}
			out[i] = CellText(cols[i].Type(), cell.Raw())
		}
		table.AddRow(out...)
	}
	table.Render()

	if hidden := len(rows) - shown; hidden > 0 {
		newColor(opts.NoColor, color.FgHiBlack).Fprintf(w, "… %s more rows (%s total)\n",
			humanize.Comma(int64(hidden)), humanize.Comma(int64(len(rows))))
	}
}

// CellText renders a raw cell value for display
func CellText(typ datatable.ColumnType, raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case time.Time:
		if typ == datatable.TypeDate {
			return v.Format("2006-01-02")
		}
		return v.Format("2006-01-02 15:04:05")
	case datatable.TimeOfDay:
		return v.String()
	case float64:
		return humanize.Ftoa(v)
	case float32:
		return humanize.Ftoa(float64(v))
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
