// Package formats provides column formatters for datatable.
//
// Every formatter is built from a loose option map validated against a closed
// schema: unknown keys fail with datatable.ErrInvalidConfigProperty and values
// of the wrong type with datatable.ErrInvalidConfigValue.
package formats

import (
	"fmt"
	"sort"

	"github.com/conduit-lang/chartdata/internal/configschema"
	"github.com/conduit-lang/chartdata/pkg/datatable"
)

// Options is a loose option map, usually decoded from JSON or YAML
type Options map[string]interface{}

type constructor func(opts Options) (datatable.Formatter, error)

var constructors = map[string]constructor{
	ArrowFormatType:  func(o Options) (datatable.Formatter, error) { return NewArrowFormat(o) },
	BarFormatType:    func(o Options) (datatable.Formatter, error) { return NewBarFormat(o) },
	DateFormatType:   func(o Options) (datatable.Formatter, error) { return NewDateFormat(o) },
	NumberFormatType: func(o Options) (datatable.Formatter, error) { return NewNumberFormat(o) },
}

// New builds a formatter by its renderer type name
func New(formatType string, opts Options) (datatable.Formatter, error) {
	ctor, ok := constructors[formatType]
	if !ok {
		return nil, &configschema.PropertyError{
			Owner:  "format",
			Key:    "type",
			Reason: fmt.Sprintf("unknown formatter %q (valid types are %v)", formatType, Types()),
			Err:    datatable.ErrInvalidConfigValue,
		}
	}
	return ctor(opts)
}

// Types returns the supported formatter type names
func Types() []string {
	out := make([]string, 0, len(constructors))
	for t := range constructors {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// optionsOf returns a copy of the options that were explicitly set
func optionsOf(set Options) map[string]interface{} {
	out := make(map[string]interface{}, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out
}
