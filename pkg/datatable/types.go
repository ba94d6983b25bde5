package datatable

import (
	"fmt"
	"time"
)

// ColumnType is one of the six column type tags understood by the renderer
type ColumnType int

const (
	TypeBoolean ColumnType = iota
	TypeNumber
	TypeString
	TypeDate
	TypeDateTime
	TypeTimeOfDay

	numColumnTypes
)

// encodeFunc validates a raw cell value and returns its normalized form and
// its wire encoding
type encodeFunc func(value interface{}, loc *time.Location) (raw interface{}, encoded interface{}, err error)

type typeInfo struct {
	tag      string
	dateLike bool
	encode   encodeFunc
}

// registry holds one entry per ColumnType; the array length keeps it in step
// with the enum.
var registry = [numColumnTypes]typeInfo{
	TypeBoolean:   {tag: "boolean", encode: encodeBoolean},
	TypeNumber:    {tag: "number", encode: encodeNumber},
	TypeString:    {tag: "string", encode: encodeString},
	TypeDate:      {tag: "date", dateLike: true, encode: encodeDate},
	TypeDateTime:  {tag: "datetime", dateLike: true, encode: encodeDateTime},
	TypeTimeOfDay: {tag: "timeofday", dateLike: true, encode: encodeTimeOfDay},
}

// String returns the type tag
func (t ColumnType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return registry[t].tag
}

// Valid reports whether t is a registered column type
func (t ColumnType) Valid() bool {
	return t >= 0 && t < numColumnTypes
}

// IsDateLike reports whether the type carries date or time values
func (t ColumnType) IsDateLike() bool {
	return t.Valid() && registry[t].dateLike
}

// MarshalText implements encoding.TextMarshaler
func (t ColumnType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColumnType, int(t))
	}
	return []byte(registry[t].tag), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ColumnType) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ColumnType) encode(value interface{}, loc *time.Location) (interface{}, interface{}, error) {
	return registry[t].encode(value, loc)
}

// ParseColumnType converts a type tag to a ColumnType
func ParseColumnType(s string) (ColumnType, error) {
	for i, info := range registry {
		if info.tag == s {
			return ColumnType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid types are %v)", ErrInvalidColumnType, s, ColumnTypeTags())
}

// ColumnTypeTags returns every registered type tag in enum order
func ColumnTypeTags() []string {
	tags := make([]string, 0, len(registry))
	for _, info := range registry {
		tags = append(tags, info.tag)
	}
	return tags
}

// parseTypeValue accepts a type tag given as ColumnType or string
func parseTypeValue(value interface{}) (ColumnType, error) {
	switch v := value.(type) {
	case ColumnType:
		if !v.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidColumnType, int(v))
		}
		return v, nil
	case string:
		return ParseColumnType(v)
	default:
		return 0, fmt.Errorf("%w: %#v is not a type tag", ErrInvalidColumnType, value)
	}
}
