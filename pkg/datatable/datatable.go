// Package datatable builds typed tables for a chart renderer.
//
// A DataTable owns an ordered list of columns and rows. Columns fix the
// schema; every row is validated and encoded against it when added, so the
// table can always be serialized into the renderer's cols/rows structure.
// Dates are emitted as "Date(Y,M,D,h,m,s)" literals with a zero-indexed month.
//
// A DataTable is not safe for concurrent use; callers sharing one must
// serialize access themselves.
package datatable

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DataTable is an append-only table of typed columns and validated rows
type DataTable struct {
	columns    []Column
	rows       []Row
	formatters map[int]Formatter
	loc        *time.Location
	logger     *zap.Logger
}

// New creates an empty table using the process default timezone
func New() *DataTable {
	return &DataTable{
		loc:    defaultLocation(),
		logger: zap.NewNop(),
	}
}

// NewWithTimezone creates an empty table in tz. A tz that is not a valid zone
// name or *time.Location is ignored and the process default is used.
func NewWithTimezone(tz interface{}) *DataTable {
	dt := New()
	dt.SetTimezone(tz)
	return dt
}

// SetLogger sets the logger used for debug output; nil restores the no-op logger
func (dt *DataTable) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dt.logger = logger
}

// SetTimezone changes the zone used to interpret datetime values.
// Invalid input is ignored and the current zone kept; the result reports
// whether tz was applied.
func (dt *DataTable) SetTimezone(tz interface{}) bool {
	loc, ok := resolveLocation(tz)
	if !ok {
		dt.log().Debug("ignoring invalid timezone",
			zap.Any("timezone", tz),
			zap.String("keeping", dt.Timezone()))
		return false
	}
	dt.loc = loc
	return true
}

// Timezone returns the name of the table's timezone
func (dt *DataTable) Timezone() string {
	return dt.Location().String()
}

// Location returns the table's timezone
func (dt *DataTable) Location() *time.Location {
	if dt.loc == nil {
		return defaultLocation()
	}
	return dt.loc
}

func (dt *DataTable) log() *zap.Logger {
	if dt.logger == nil {
		return zap.NewNop()
	}
	return dt.logger
}

// AddColumn appends a column. def is a type tag (with optional label, role
// and pattern in args), a positional tuple, an option map or a ColumnSpec.
func (dt *DataTable) AddColumn(def interface{}, args ...string) error {
	spec, err := parseColumnDef(def, args)
	if err != nil {
		return err
	}
	return dt.appendColumn(spec)
}

// AddColumns appends each definition in order, stopping at the first invalid one.
// Columns added before the failure remain.
func (dt *DataTable) AddColumns(defs ...interface{}) error {
	for i, def := range defs {
		if err := dt.AddColumn(def); err != nil {
			return fmt.Errorf("column definition %d: %w", i, err)
		}
	}
	return nil
}

// AddBooleanColumn appends a boolean column
func (dt *DataTable) AddBooleanColumn(label string) error {
	return dt.appendColumn(ColumnSpec{Type: TypeBoolean, Label: label})
}

// AddNumberColumn appends a number column
func (dt *DataTable) AddNumberColumn(label string) error {
	return dt.appendColumn(ColumnSpec{Type: TypeNumber, Label: label})
}

// AddStringColumn appends a string column
func (dt *DataTable) AddStringColumn(label string) error {
	return dt.appendColumn(ColumnSpec{Type: TypeString, Label: label})
}

// AddDateColumn appends a date column
func (dt *DataTable) AddDateColumn(label string) error {
	return dt.appendColumn(ColumnSpec{Type: TypeDate, Label: label})
}

// AddDateTimeColumn appends a datetime column
func (dt *DataTable) AddDateTimeColumn(label string) error {
	return dt.appendColumn(ColumnSpec{Type: TypeDateTime, Label: label})
}

// AddTimeOfDayColumn appends a timeofday column
func (dt *DataTable) AddTimeOfDayColumn(label string) error {
	return dt.appendColumn(ColumnSpec{Type: TypeTimeOfDay, Label: label})
}

// AddRoleColumn appends an auxiliary column such as a tooltip or annotation
func (dt *DataTable) AddRoleColumn(typ ColumnType, role, label string) error {
	if role == "" {
		return fmt.Errorf("%w: role column needs a role", ErrInvalidColumnRole)
	}
	return dt.appendColumn(ColumnSpec{Type: typ, Role: role, Label: label})
}

func (dt *DataTable) appendColumn(spec ColumnSpec) error {
	if spec.ID == "" {
		spec.ID = dt.generatedID()
	} else if dt.hasColumnID(spec.ID) {
		return configValueError("column", "id", fmt.Sprintf("duplicate column id %q", spec.ID))
	}

	col, err := newColumn(spec)
	if err != nil {
		return err
	}

	dt.columns = append(dt.columns, col)
	return nil
}

// generatedID returns col<index>, suffixed with _1, _2, ... while taken
func (dt *DataTable) generatedID() string {
	base := fmt.Sprintf("col%d", len(dt.columns))
	id := base
	for n := 1; dt.hasColumnID(id); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

func (dt *DataTable) hasColumnID(id string) bool {
	for _, c := range dt.columns {
		if c.id == id {
			return true
		}
	}
	return false
}

// AddRow validates values against the columns and appends them as one row.
// Either every cell is accepted or the table is left unchanged.
func (dt *DataTable) AddRow(values []interface{}) error {
	if len(values) != len(dt.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrInvalidCellCount, len(values), len(dt.columns))
	}

	loc := dt.Location()
	cells := make([]Cell, len(values))
	for i, v := range values {
		cell, err := encodeCell(dt.columns[i], v, loc)
		if err != nil {
			return &CellError{Row: len(dt.rows), Column: i, Value: v, Err: err}
		}
		cells[i] = cell
	}

	dt.rows = append(dt.rows, Row{cells: cells})
	return nil
}

// AddRows appends rows one at a time. Each element must be a slice or array
// of cell values. On failure the rows before the bad one remain in the table;
// there is no rollback.
func (dt *DataTable) AddRows(rows ...interface{}) error {
	for i, r := range rows {
		values, ok := rowValues(r)
		if !ok {
			return fmt.Errorf("%w: row %d is %T, not a sequence of cells", ErrInvalidRowDefinition, i, r)
		}
		if err := dt.AddRow(values); err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the columns in insertion order
func (dt *DataTable) Columns() []Column {
	out := make([]Column, len(dt.columns))
	copy(out, dt.columns)
	return out
}

// Rows returns the rows in insertion order
func (dt *DataTable) Rows() []Row {
	out := make([]Row, len(dt.rows))
	for i, r := range dt.rows {
		out[i] = Row{cells: r.Cells()}
	}
	return out
}

// ColumnCount returns the number of columns
func (dt *DataTable) ColumnCount() int {
	return len(dt.columns)
}

// RowCount returns the number of rows
func (dt *DataTable) RowCount() int {
	return len(dt.rows)
}

// Column returns the column at index
func (dt *DataTable) Column(index int) (Column, error) {
	if err := dt.checkColumnIndex(index); err != nil {
		return Column{}, err
	}
	return dt.columns[index], nil
}

// ColumnType returns the type of the column at index
func (dt *DataTable) ColumnType(index int) (ColumnType, error) {
	c, err := dt.Column(index)
	if err != nil {
		return 0, err
	}
	return c.typ, nil
}

// ColumnLabel returns the label of the column at index
func (dt *DataTable) ColumnLabel(index int) (string, error) {
	c, err := dt.Column(index)
	if err != nil {
		return "", err
	}
	return c.label, nil
}

// ColumnTypes returns every column type in order
func (dt *DataTable) ColumnTypes() []ColumnType {
	out := make([]ColumnType, len(dt.columns))
	for i, c := range dt.columns {
		out[i] = c.typ
	}
	return out
}

// ColumnLabels returns every column label in order
func (dt *DataTable) ColumnLabels() []string {
	out := make([]string, len(dt.columns))
	for i, c := range dt.columns {
		out[i] = c.label
	}
	return out
}

func (dt *DataTable) checkColumnIndex(index int) error {
	if index < 0 || index >= len(dt.columns) {
		return fmt.Errorf("%w: %d (table has %d columns)", ErrInvalidColumnIndex, index, len(dt.columns))
	}
	return nil
}
