package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
		excludes []string
	}{
		{
			name: "context and detail",
			opts: ErrorOptions{
				Context: "invalid row",
				Problem: "rows[2]",
				Detail:  "invalid cell count",
			},
			contains: []string{"✗ INVALID ROW: rows[2]\n", "   invalid cell count\n"},
			excludes: []string{"Did you mean"},
		},
		{
			name: "suggestions and hints",
			opts: ErrorOptions{
				Problem:     "bad type",
				Suggestions: []string{"number", "string"},
				Hints:       []string{"List column types: chartdata types"},
			},
			contains: []string{"Did you mean: number, string?", "→ List column types: chartdata types"},
		},
		{
			name:     "warning",
			opts:     ErrorOptions{Level: ErrorLevelWarning, Problem: "timezone ignored"},
			contains: []string{"! timezone ignored"},
		},
		{
			name:     "info",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "cache cleared"},
			contains: []string{"i cache cleared"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.NoColor = true
			out := FormatError(tt.opts)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, ErrorOptions{Problem: "boom", NoColor: true})
	assert.Equal(t, "✗ boom\n", buf.String())
}

func TestUnknownNameError(t *testing.T) {
	out := UnknownNameError("column type", "nubmer", []string{"boolean", "number", "string"}, "List column types: chartdata types", true)

	assert.Contains(t, out, "✗ UNKNOWN COLUMN TYPE: nubmer")
	assert.Contains(t, out, "Valid values: boolean, number, string")
	assert.Contains(t, out, "Did you mean: number?")
	assert.Contains(t, out, "→ List column types: chartdata types")

	out = UnknownNameError("formatter", "Sparkline", []string{"NumberFormat"}, "", true)
	assert.NotContains(t, out, "Did you mean")
	assert.NotContains(t, out, "→")
}

func TestWarning(t *testing.T) {
	assert.Equal(t, "! careful\n", Warning("careful", true))
}

func TestWriteSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "cache cleared", true)
	assert.Equal(t, "✓ cache cleared\n", buf.String())
}
