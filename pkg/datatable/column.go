package datatable

import (
	"fmt"

	"github.com/conduit-lang/chartdata/internal/configschema"
)

// Column describes one table column
type Column struct {
	typ        ColumnType
	label      string
	id         string
	role       string
	pattern    string
	properties map[string]interface{}
}

// ColumnSpec is the typed form of a column definition
type ColumnSpec struct {
	Type       ColumnType
	Label      string
	ID         string
	Role       string
	Pattern    string
	Properties map[string]interface{}
}

// Type returns the column type
func (c Column) Type() ColumnType { return c.typ }

// Label returns the display label
func (c Column) Label() string { return c.label }

// ID returns the column identifier
func (c Column) ID() string { return c.id }

// Role returns the role tag, empty for data columns
func (c Column) Role() string { return c.role }

// Pattern returns the format pattern emitted with the column
func (c Column) Pattern() string { return c.pattern }

// Properties returns a copy of the column properties
func (c Column) Properties() map[string]interface{} {
	return copyProperties(c.properties)
}

// IsRole reports whether the column is an auxiliary role column
func (c Column) IsRole() bool {
	return c.role != ""
}

// Spec returns the column as a ColumnSpec
func (c Column) Spec() ColumnSpec {
	return ColumnSpec{
		Type:       c.typ,
		Label:      c.label,
		ID:         c.id,
		Role:       c.role,
		Pattern:    c.pattern,
		Properties: copyProperties(c.properties),
	}
}

func newColumn(spec ColumnSpec) (Column, error) {
	if !spec.Type.Valid() {
		return Column{}, fmt.Errorf("%w: %d", ErrInvalidColumnType, int(spec.Type))
	}
	if err := validateRole(spec.Role); err != nil {
		return Column{}, err
	}

	return Column{
		typ:        spec.Type,
		label:      spec.Label,
		id:         spec.ID,
		role:       spec.Role,
		pattern:    spec.Pattern,
		properties: copyProperties(spec.Properties),
	}, nil
}

// parseColumnDef accepts every supported column definition form:
//
//	"date"                                 bare tag, args are label, role, pattern
//	[]interface{}{"date", "Day", "", ""}   positional tuple
//	map[string]interface{}{"type": "date"} keyed options
//	ColumnSpec / Column
func parseColumnDef(def interface{}, args []string) (ColumnSpec, error) {
	var spec ColumnSpec
	var err error

	switch d := def.(type) {
	case ColumnSpec:
		spec = d
	case *ColumnSpec:
		if d == nil {
			return ColumnSpec{}, fmt.Errorf("%w: nil column spec", ErrInvalidColumnType)
		}
		spec = *d
	case Column:
		spec = d.Spec()
	case []string:
		tuple := make([]interface{}, len(d))
		for i, s := range d {
			tuple[i] = s
		}
		spec, err = parseColumnTuple(tuple)
	case []interface{}:
		spec, err = parseColumnTuple(d)
	case map[string]interface{}, map[interface{}]interface{}:
		spec, err = parseColumnMap(d)
	default:
		spec.Type, err = parseTypeValue(def)
		if err == nil {
			spec, err = applyColumnArgs(spec, args)
		}
		return spec, err
	}

	if err != nil {
		return ColumnSpec{}, err
	}
	if len(args) > 0 {
		return ColumnSpec{}, configValueError("column", "args", "extra arguments are only allowed with a bare type tag")
	}
	return spec, nil
}

var columnTupleFields = []string{"type", "label", "role", "pattern"}

func parseColumnTuple(tuple []interface{}) (ColumnSpec, error) {
	if len(tuple) == 0 {
		return ColumnSpec{}, fmt.Errorf("%w: empty column definition", ErrInvalidColumnType)
	}
	if len(tuple) > len(columnTupleFields) {
		return ColumnSpec{}, configValueError("column", "tuple",
			fmt.Sprintf("expected at most %d fields (type, label, role, pattern), got %d", len(columnTupleFields), len(tuple)))
	}

	typ, err := parseTypeValue(tuple[0])
	if err != nil {
		return ColumnSpec{}, err
	}

	strs := make([]string, len(columnTupleFields))
	for i := 1; i < len(tuple); i++ {
		if tuple[i] == nil {
			continue
		}
		s, ok := tuple[i].(string)
		if !ok {
			return ColumnSpec{}, configValueError("column", columnTupleFields[i],
				fmt.Sprintf("expected string, got %T", tuple[i]))
		}
		strs[i] = s
	}

	return ColumnSpec{Type: typ, Label: strs[1], Role: strs[2], Pattern: strs[3]}, nil
}

func parseColumnMap(def interface{}) (ColumnSpec, error) {
	m, ok := configschema.ToMap(def)
	if !ok {
		return ColumnSpec{}, configValueError("column", "keys", "column option keys must be strings")
	}

	rawType, ok := m["type"]
	if !ok {
		return ColumnSpec{}, fmt.Errorf("%w: column definition has no type", ErrInvalidColumnType)
	}
	typ, err := parseTypeValue(rawType)
	if err != nil {
		return ColumnSpec{}, err
	}

	spec := ColumnSpec{Type: typ}
	schema := configschema.New("column").
		Field("type", func(interface{}) error { return nil }).
		Field("label", configschema.String(&spec.Label)).
		Field("id", configschema.String(&spec.ID)).
		Field("role", configschema.String(&spec.Role)).
		Field("pattern", configschema.String(&spec.Pattern)).
		Field("p", configschema.Map(&spec.Properties))

	if err := schema.Apply(m); err != nil {
		return ColumnSpec{}, err
	}
	return spec, nil
}

func applyColumnArgs(spec ColumnSpec, args []string) (ColumnSpec, error) {
	if len(args) > len(columnTupleFields)-1 {
		return ColumnSpec{}, configValueError("column", "args",
			fmt.Sprintf("expected at most 3 arguments (label, role, pattern), got %d", len(args)))
	}

	fields := []*string{&spec.Label, &spec.Role, &spec.Pattern}
	for i, a := range args {
		*fields[i] = a
	}
	return spec, nil
}
