package datatable

import (
	"fmt"
	"reflect"
)

// Row is an ordered sequence of cells, one per column
type Row struct {
	cells []Cell
}

// Len returns the number of cells
func (r Row) Len() int {
	return len(r.cells)
}

// Cells returns a copy of the row's cells
func (r Row) Cells() []Cell {
	out := make([]Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// Cell returns the cell at index
func (r Row) Cell(index int) (Cell, error) {
	if index < 0 || index >= len(r.cells) {
		return Cell{}, fmt.Errorf("%w: %d (row has %d cells)", ErrInvalidColumnIndex, index, len(r.cells))
	}
	return r.cells[index], nil
}

// ColumnValue returns the encoded value at index, e.g. a date literal string
func (r Row) ColumnValue(index int) (interface{}, error) {
	c, err := r.Cell(index)
	if err != nil {
		return nil, err
	}
	return c.value, nil
}

// rowValues turns a row container into its element values.
// Any slice or array is a row; strings and scalars are not.
func rowValues(row interface{}) ([]interface{}, bool) {
	switch v := row.(type) {
	case nil:
		return nil, false
	case []interface{}:
		return v, true
	case Row:
		values := make([]interface{}, len(v.cells))
		for i, c := range v.cells {
			values[i] = c
		}
		return values, true
	}

	rv := reflect.ValueOf(row)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	values := make([]interface{}, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, true
}
