package formats

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/conduit-lang/chartdata/internal/configschema"
	"github.com/dustin/go-humanize"
)

// NumberFormatType is the renderer name of NumberFormat
const NumberFormatType = "NumberFormat"

// maxFractionDigits is the highest precision humanize.FormatFloat supports
const maxFractionDigits = 9

// NumberFormat renders numbers with configurable separators, precision and affixes
type NumberFormat struct {
	DecimalSymbol  string
	FractionDigits int
	GroupingSymbol string
	NegativeColor  string
	NegativeParens bool
	Pattern        string
	Prefix         string
	Suffix         string

	opts Options
}

// NewNumberFormat builds a NumberFormat from options
func NewNumberFormat(opts Options) (*NumberFormat, error) {
	f := &NumberFormat{
		DecimalSymbol:  ".",
		FractionDigits: 2,
		GroupingSymbol: ",",
	}

	schema := configschema.New(NumberFormatType).
		Field("decimalSymbol", symbol(&f.DecimalSymbol, false)).
		Field("fractionDigits", configschema.IntRange(&f.FractionDigits, 0, maxFractionDigits)).
		Field("groupingSymbol", symbol(&f.GroupingSymbol, true)).
		Field("negativeColor", configschema.String(&f.NegativeColor)).
		Field("negativeParens", configschema.Bool(&f.NegativeParens)).
		Field("pattern", configschema.String(&f.Pattern)).
		Field("prefix", configschema.String(&f.Prefix)).
		Field("suffix", configschema.String(&f.Suffix))

	if err := schema.Apply(opts); err != nil {
		return nil, err
	}
	if f.GroupingSymbol != "" && f.GroupingSymbol == f.DecimalSymbol {
		return nil, &configschema.PropertyError{
			Owner:  NumberFormatType,
			Key:    "groupingSymbol",
			Reason: "must differ from decimalSymbol",
			Err:    configschema.ErrInvalidValue,
		}
	}

	f.opts = opts
	return f, nil
}

// symbol accepts a single character that humanize does not treat as a digit directive
func symbol(dst *string, allowEmpty bool) configschema.Setter {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		if s == "" && allowEmpty {
			*dst = s
			return nil
		}
		if utf8.RuneCountInString(s) != 1 || strings.ContainsAny(s, "#0+") {
			return fmt.Errorf("must be a single character other than #, 0 or +")
		}
		*dst = s
		return nil
	}
}

// Type implements datatable.Formatter
func (f *NumberFormat) Type() string { return NumberFormatType }

// Options implements datatable.Formatter
func (f *NumberFormat) Options() map[string]interface{} { return optionsOf(f.opts) }

// Format implements datatable.Formatter. Patterns are left to the renderer.
func (f *NumberFormat) Format(raw interface{}) (string, bool) {
	if f.Pattern != "" {
		return "", false
	}

	n, ok := configschema.ToFloat(raw)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return "", false
	}
	// humanize truncates through int64
	if math.Abs(n) >= math.MaxInt64 {
		return "", false
	}

	body := f.Prefix + humanize.FormatFloat(f.directive(), math.Abs(n)) + f.Suffix
	if n >= 0 || isZeroAtPrecision(n, f.FractionDigits) {
		return body, true
	}
	if f.NegativeParens {
		return "(" + body + ")", true
	}
	return "-" + body, true
}

// directive builds the humanize format string, e.g. "#,###.##"
func (f *NumberFormat) directive() string {
	var b strings.Builder
	b.WriteString("#")
	if f.GroupingSymbol != "" {
		b.WriteString(f.GroupingSymbol)
	}
	b.WriteString("###")
	b.WriteString(f.DecimalSymbol)
	b.WriteString(strings.Repeat("#", f.FractionDigits))
	return b.String()
}

func isZeroAtPrecision(n float64, digits int) bool {
	return math.Abs(n) < 0.5*math.Pow10(-digits)
}
