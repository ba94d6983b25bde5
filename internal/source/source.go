// Package source loads DataTables from external data: SQL query results and
// spreadsheet sheets. Column types are taken from source metadata where it
// exists and inferred from the first non-empty value otherwise.
package source

import (
	"errors"
	"fmt"

	"github.com/conduit-lang/chartdata/pkg/datatable"
	"go.uber.org/zap"
)

var (
	// ErrQueryFailed is returned when the database rejects a query
	ErrQueryFailed = errors.New("query failed")

	// ErrUndefinedTable is returned when a query names a missing table
	ErrUndefinedTable = errors.New("undefined table")

	// ErrUndefinedColumn is returned when a query names a missing column
	ErrUndefinedColumn = errors.New("undefined column")

	// ErrSheetNotFound is returned when a workbook has no sheet with the requested name
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrEmptySource is returned when a source has no columns
	ErrEmptySource = errors.New("source has no columns")
)

// Options control how a source becomes a table
type Options struct {
	// Timezone of the built table; empty keeps the process default
	Timezone string

	// Types overrides inferred column types, keyed by column name
	Types map[string]datatable.ColumnType

	// Sheet selects a workbook sheet; empty means the first sheet
	Sheet string

	// NoHeader treats the first sheet row as data instead of labels
	NoHeader bool

	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) newTable() *datatable.DataTable {
	dt := datatable.New()
	dt.SetLogger(o.logger())
	if o.Timezone != "" {
		dt.SetTimezone(o.Timezone)
	}
	return dt
}

// addColumns appends one column per name. Names become column ids unless
// they repeat, in which case the generated id is kept.
func addColumns(dt *datatable.DataTable, names []string, types []datatable.ColumnType) error {
	seen := make(map[string]int, len(names))
	for _, n := range names {
		seen[n]++
	}

	for i, name := range names {
		spec := datatable.ColumnSpec{Type: types[i], Label: name}
		if name != "" && seen[name] == 1 {
			spec.ID = name
		}
		if err := dt.AddColumn(spec); err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
	}
	return nil
}

// inferType maps a Go value produced by a driver or parser to a column type
func inferType(v interface{}) datatable.ColumnType {
	switch v.(type) {
	case bool:
		return datatable.TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return datatable.TypeNumber
	case datatable.TimeOfDay:
		return datatable.TypeTimeOfDay
	case datatable.DateLike:
		return datatable.TypeDateTime
	default:
		return datatable.TypeString
	}
}
