package formats

import (
	"github.com/conduit-lang/chartdata/internal/configschema"
)

const (
	// ArrowFormatType is the renderer name of ArrowFormat
	ArrowFormatType = "ArrowFormat"
	// BarFormatType is the renderer name of BarFormat
	BarFormatType = "BarFormat"
)

// ArrowFormat adds an up or down arrow relative to Base. The renderer draws
// the arrow; display strings are not rewritten.
type ArrowFormat struct {
	Base float64

	opts Options
}

// NewArrowFormat builds an ArrowFormat from options
func NewArrowFormat(opts Options) (*ArrowFormat, error) {
	f := &ArrowFormat{}

	schema := configschema.New(ArrowFormatType).
		Field("base", configschema.Float(&f.Base))

	if err := schema.Apply(opts); err != nil {
		return nil, err
	}

	f.opts = opts
	return f, nil
}

// Type implements datatable.Formatter
func (f *ArrowFormat) Type() string { return ArrowFormatType }

// Options implements datatable.Formatter
func (f *ArrowFormat) Options() map[string]interface{} { return optionsOf(f.opts) }

// Format implements datatable.Formatter; arrows are drawn by the renderer
func (f *ArrowFormat) Format(interface{}) (string, bool) { return "", false }

// BarFormat draws a bar next to each value. Display strings are not rewritten.
type BarFormat struct {
	Base          float64
	ColorNegative string
	ColorPositive string
	DrawZeroLine  bool
	Max           *float64
	Min           *float64
	ShowValue     bool
	Width         int

	opts Options
}

// NewBarFormat builds a BarFormat from options
func NewBarFormat(opts Options) (*BarFormat, error) {
	f := &BarFormat{
		ColorNegative: "red",
		ColorPositive: "blue",
		ShowValue:     true,
		Width:         100,
	}

	barColors := []string{"red", "green", "blue"}
	schema := configschema.New(BarFormatType).
		Field("base", configschema.Float(&f.Base)).
		Field("colorNegative", configschema.OneOf(&f.ColorNegative, barColors...)).
		Field("colorPositive", configschema.OneOf(&f.ColorPositive, barColors...)).
		Field("drawZeroLine", configschema.Bool(&f.DrawZeroLine)).
		Field("max", configschema.OptionalFloat(&f.Max)).
		Field("min", configschema.OptionalFloat(&f.Min)).
		Field("showValue", configschema.Bool(&f.ShowValue)).
		Field("width", configschema.IntRange(&f.Width, 1, 10000))

	if err := schema.Apply(opts); err != nil {
		return nil, err
	}

	f.opts = opts
	return f, nil
}

// Type implements datatable.Formatter
func (f *BarFormat) Type() string { return BarFormatType }

// Options implements datatable.Formatter
func (f *BarFormat) Options() map[string]interface{} { return optionsOf(f.opts) }

// Format implements datatable.Formatter; bars are drawn by the renderer
func (f *BarFormat) Format(interface{}) (string, bool) { return "", false }
