package datatable

import (
	"fmt"
	"time"

	"github.com/conduit-lang/chartdata/internal/configschema"
)

// Cell is one value of a row, with an optional display override and properties.
//
// Stored cells hold the wire-ready encoding in Value and the normalized input
// in Raw (time.Time for date columns, TimeOfDay for timeofday columns).
type Cell struct {
	value      interface{}
	raw        interface{}
	formatted  string
	properties map[string]interface{}
}

// NewCell builds a cell input carrying a display string and properties.
// Pass it as a row element; the value is validated when the row is added.
func NewCell(value interface{}, formatted string, properties map[string]interface{}) Cell {
	return Cell{
		raw:        value,
		formatted:  formatted,
		properties: copyProperties(properties),
	}
}

// Value returns the encoded value
func (c Cell) Value() interface{} {
	return c.value
}

// Raw returns the normalized value before wire encoding
func (c Cell) Raw() interface{} {
	return c.raw
}

// Formatted returns the display override, empty when none was given
func (c Cell) Formatted() string {
	return c.formatted
}

// Properties returns a copy of the cell properties
func (c Cell) Properties() map[string]interface{} {
	return copyProperties(c.properties)
}

// IsNull reports whether the cell has no value
func (c Cell) IsNull() bool {
	return c.raw == nil
}

// encodeCell validates input against col and returns the stored cell
func encodeCell(col Column, input interface{}, loc *time.Location) (Cell, error) {
	var cell Cell
	value := input

	switch v := input.(type) {
	case Cell:
		cell.formatted = v.formatted
		cell.properties = copyProperties(v.properties)
		value = v.raw
	case map[string]interface{}, map[interface{}]interface{}:
		parsed, err := parseCellMap(v)
		if err != nil {
			return Cell{}, err
		}
		cell = parsed
		value = parsed.raw
	}

	if value == nil {
		cell.raw = nil
		cell.value = nil
		return cell, nil
	}

	if isEmptyPlaceholder(value) {
		return Cell{}, fmt.Errorf("%w: empty %T has no usable value", ErrInvalidRowProperty, value)
	}

	raw, encoded, err := col.typ.encode(value, loc)
	if err != nil {
		return Cell{}, err
	}

	cell.raw = raw
	cell.value = encoded
	return cell, nil
}

// parseCellMap reads the object form of a cell: {"v": value, "f": display, "p": properties}
func parseCellMap(input interface{}) (Cell, error) {
	m, ok := configschema.ToMap(input)
	if !ok {
		return Cell{}, fmt.Errorf("%w: cell map keys must be strings", ErrInvalidRowProperty)
	}
	if len(m) == 0 {
		return Cell{}, fmt.Errorf("%w: empty cell map has no usable value", ErrInvalidRowProperty)
	}

	var cell Cell
	for key, val := range m {
		switch key {
		case "v":
			cell.raw = val
		case "f":
			if val == nil {
				continue
			}
			s, ok := val.(string)
			if !ok {
				return Cell{}, fmt.Errorf("%w: f must be a string, got %T", ErrInvalidRowProperty, val)
			}
			cell.formatted = s
		case "p":
			if val == nil {
				continue
			}
			props, ok := configschema.ToMap(val)
			if !ok {
				return Cell{}, fmt.Errorf("%w: p must be a map, got %T", ErrInvalidRowProperty, val)
			}
			cell.properties = copyProperties(props)
		default:
			return Cell{}, fmt.Errorf("%w: unknown cell key %q (valid keys are v, f, p)", ErrInvalidRowProperty, key)
		}
	}

	return cell, nil
}

func copyProperties(p map[string]interface{}) map[string]interface{} {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
