package datatable

import (
	"fmt"
	"sort"
)

// Formatter rewrites the display string of every cell in a column when the
// table is serialized. Stored values are never modified.
type Formatter interface {
	// Type returns the renderer's formatter name, e.g. "NumberFormat"
	Type() string

	// Options returns the options the renderer needs to rebuild the formatter
	Options() map[string]interface{}

	// Format renders a raw cell value. It returns false when the formatter
	// leaves display strings to the renderer or cannot handle the value.
	Format(raw interface{}) (string, bool)
}

// FormatColumn attaches f to the column at index, replacing any previous formatter
func (dt *DataTable) FormatColumn(index int, f Formatter) error {
	if err := dt.checkColumnIndex(index); err != nil {
		return err
	}
	if f == nil {
		return configValueError("formatter", fmt.Sprint(index), "formatter must not be nil")
	}

	if dt.formatters == nil {
		dt.formatters = make(map[int]Formatter)
	}
	dt.formatters[index] = f
	return nil
}

// FormatColumns attaches several formatters in ascending index order,
// stopping at the first invalid index
func (dt *DataTable) FormatColumns(formatters map[int]Formatter) error {
	indices := make([]int, 0, len(formatters))
	for i := range formatters {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	for _, i := range indices {
		if err := dt.FormatColumn(i, formatters[i]); err != nil {
			return err
		}
	}
	return nil
}

// Formatter returns the formatter attached to the column at index
func (dt *DataTable) Formatter(index int) (Formatter, bool) {
	f, ok := dt.formatters[index]
	return f, ok
}

// FormattedColumns returns a copy of the index to formatter mapping
func (dt *DataTable) FormattedColumns() map[int]Formatter {
	out := make(map[int]Formatter, len(dt.formatters))
	for i, f := range dt.formatters {
		out[i] = f
	}
	return out
}

// HasFormattedColumns reports whether any formatter is attached
func (dt *DataTable) HasFormattedColumns() bool {
	return len(dt.formatters) > 0
}
