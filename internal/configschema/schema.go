// Package configschema validates loose key/value option maps against a
// closed set of recognized option names.
//
// Each configuration-bearing type declares a Schema that maps option names to
// setters. Unknown keys fail with ErrInvalidProperty and values of the wrong
// shape fail with ErrInvalidValue, both wrapped in a PropertyError naming the
// offending key and the owning type.
package configschema

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrInvalidProperty is returned when an option name is not part of a schema
	ErrInvalidProperty = errors.New("invalid config property")

	// ErrInvalidValue is returned when an option value has the wrong type or shape
	ErrInvalidValue = errors.New("invalid config value")
)

// PropertyError describes a rejected option
type PropertyError struct {
	Owner  string
	Key    string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *PropertyError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s %q", e.Owner, e.Err, e.Key)
	}
	return fmt.Sprintf("%s: %s %q: %s", e.Owner, e.Err, e.Key, e.Reason)
}

// Unwrap returns ErrInvalidProperty or ErrInvalidValue
func (e *PropertyError) Unwrap() error {
	return e.Err
}

// Setter assigns a single option value, returning an error describing why the
// value was rejected
type Setter func(value interface{}) error

// Schema is a closed set of options for one configuration type
type Schema struct {
	owner   string
	setters map[string]Setter
}

// New creates an empty schema for the named owner type
func New(owner string) *Schema {
	return &Schema{
		owner:   owner,
		setters: make(map[string]Setter),
	}
}

// Owner returns the name used in error messages
func (s *Schema) Owner() string {
	return s.owner
}

// Field registers an option name with its setter
func (s *Schema) Field(name string, set Setter) *Schema {
	s.setters[name] = set
	return s
}

// Keys returns the recognized option names in sorted order
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.setters))
	for k := range s.setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether name is a recognized option
func (s *Schema) Has(name string) bool {
	_, ok := s.setters[name]
	return ok
}

// Set applies a single option
func (s *Schema) Set(name string, value interface{}) error {
	set, ok := s.setters[name]
	if !ok {
		return &PropertyError{
			Owner:  s.owner,
			Key:    name,
			Reason: "valid options are " + strings.Join(s.Keys(), ", "),
			Err:    ErrInvalidProperty,
		}
	}

	if err := set(value); err != nil {
		return &PropertyError{
			Owner:  s.owner,
			Key:    name,
			Reason: err.Error(),
			Err:    ErrInvalidValue,
		}
	}

	return nil
}

// Apply validates and applies every option in opts.
// Keys are visited in sorted order so the first reported error is stable.
func (s *Schema) Apply(opts map[string]interface{}) error {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := s.Set(k, opts[k]); err != nil {
			return err
		}
	}

	return nil
}

// String returns a setter accepting only string values
func String(dst *string) Setter {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		*dst = s
		return nil
	}
}

// NonEmptyString returns a setter accepting only non-empty strings
func NonEmptyString(dst *string) Setter {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		if s == "" {
			return fmt.Errorf("must not be empty")
		}
		*dst = s
		return nil
	}
}

// OneOf returns a setter accepting one of the allowed strings
func OneOf(dst *string, allowed ...string) Setter {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		for _, a := range allowed {
			if s == a {
				*dst = s
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}

// Bool returns a setter accepting only bool values
func Bool(dst *bool) Setter {
	return func(value interface{}) error {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		*dst = b
		return nil
	}
}

// Int returns a setter accepting integers and integral floats
func Int(dst *int) Setter {
	return func(value interface{}) error {
		n, ok := ToInt(value)
		if !ok {
			return fmt.Errorf("expected integer, got %T", value)
		}
		*dst = n
		return nil
	}
}

// IntRange returns a setter accepting integers within [min, max]
func IntRange(dst *int, min, max int) Setter {
	return func(value interface{}) error {
		n, ok := ToInt(value)
		if !ok {
			return fmt.Errorf("expected integer, got %T", value)
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		*dst = n
		return nil
	}
}

// Float returns a setter accepting any numeric value
func Float(dst *float64) Setter {
	return func(value interface{}) error {
		f, ok := ToFloat(value)
		if !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
		*dst = f
		return nil
	}
}

// OptionalFloat returns a setter storing a pointer to the numeric value
func OptionalFloat(dst **float64) Setter {
	return func(value interface{}) error {
		f, ok := ToFloat(value)
		if !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
		*dst = &f
		return nil
	}
}

// Map returns a setter accepting string-keyed maps
func Map(dst *map[string]interface{}) Setter {
	return func(value interface{}) error {
		m, ok := ToMap(value)
		if !ok {
			return fmt.Errorf("expected map, got %T", value)
		}
		*dst = m
		return nil
	}
}

// ToInt converts Go integer kinds and integral floats to int
func ToInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		if float32(math.Trunc(float64(v))) != v {
			return 0, false
		}
		return int(v), true
	case float64:
		if math.Trunc(v) != v || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// ToFloat converts Go numeric kinds to float64
func ToFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// ToMap normalizes decoder-produced maps to map[string]interface{}.
// YAML decoders may produce map[interface{}]interface{}; keys must be strings.
func ToMap(value interface{}) (map[string]interface{}, bool) {
	switch m := value.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = v
		}
		return out, true
	default:
		return nil, false
	}
}
