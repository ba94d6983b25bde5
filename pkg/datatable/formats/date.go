package formats

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/conduit-lang/chartdata/internal/configschema"
)

// DateFormatType is the renderer name of DateFormat
const DateFormatType = "DateFormat"

var formatTypePatterns = map[string]string{
	"short":  "M/d/yy",
	"medium": "MMM d, y",
	"long":   "MMMM d, y",
}

// DateFormat renders date and datetime values with an ICU-style pattern
type DateFormat struct {
	FormatType string
	Pattern    string
	// TimeZone is an hour offset from UTC; nil keeps the table's zone
	TimeZone *float64

	tokens []dateToken
	opts   Options
}

// NewDateFormat builds a DateFormat from options.
// pattern wins over formatType; the default is the medium format.
func NewDateFormat(opts Options) (*DateFormat, error) {
	f := &DateFormat{FormatType: "medium"}

	schema := configschema.New(DateFormatType).
		Field("formatType", configschema.OneOf(&f.FormatType, "short", "medium", "long")).
		Field("pattern", configschema.String(&f.Pattern)).
		Field("timeZone", timeZoneOffset(&f.TimeZone))

	if err := schema.Apply(opts); err != nil {
		return nil, err
	}

	pattern := f.Pattern
	if pattern == "" {
		pattern = formatTypePatterns[f.FormatType]
	}

	tokens, err := compileDatePattern(pattern)
	if err != nil {
		return nil, &configschema.PropertyError{
			Owner:  DateFormatType,
			Key:    "pattern",
			Reason: err.Error(),
			Err:    configschema.ErrInvalidValue,
		}
	}

	f.tokens = tokens
	f.opts = opts
	return f, nil
}

func timeZoneOffset(dst **float64) configschema.Setter {
	inner := configschema.OptionalFloat(dst)
	return func(value interface{}) error {
		if err := inner(value); err != nil {
			return err
		}
		if h := **dst; h < -14 || h > 14 {
			*dst = nil
			return fmt.Errorf("offset must be between -14 and 14 hours")
		}
		return nil
	}
}

// Type implements datatable.Formatter
func (f *DateFormat) Type() string { return DateFormatType }

// Options implements datatable.Formatter
func (f *DateFormat) Options() map[string]interface{} { return optionsOf(f.opts) }

// Format implements datatable.Formatter
func (f *DateFormat) Format(raw interface{}) (string, bool) {
	t, ok := raw.(time.Time)
	if !ok {
		return "", false
	}

	if f.TimeZone != nil {
		offset := int(*f.TimeZone * 3600)
		t = t.In(time.FixedZone(fmt.Sprintf("UTC%+g", *f.TimeZone), offset))
	}

	var b strings.Builder
	for _, tk := range f.tokens {
		b.WriteString(tk.render(t))
	}
	return b.String(), true
}

type dateToken struct {
	field   rune
	width   int
	literal string
}

func (tk dateToken) render(t time.Time) string {
	switch tk.field {
	case 0:
		return tk.literal
	case 'y':
		if tk.width == 2 {
			return fmt.Sprintf("%02d", t.Year()%100)
		}
		return pad(t.Year(), tk.width)
	case 'M', 'L':
		switch {
		case tk.width >= 4:
			return t.Month().String()
		case tk.width == 3:
			return t.Month().String()[:3]
		default:
			return pad(int(t.Month()), tk.width)
		}
	case 'd':
		return pad(t.Day(), tk.width)
	case 'E':
		if tk.width >= 4 {
			return t.Weekday().String()
		}
		return t.Weekday().String()[:3]
	case 'H':
		return pad(t.Hour(), tk.width)
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return pad(h, tk.width)
	case 'm':
		return pad(t.Minute(), tk.width)
	case 's':
		return pad(t.Second(), tk.width)
	case 'S':
		frac := fmt.Sprintf("%09d", t.Nanosecond())
		if tk.width < len(frac) {
			return frac[:tk.width]
		}
		return frac
	case 'a':
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case 'z':
		name, _ := t.Zone()
		return name
	}
	return ""
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

const dateFields = "yMLdEHhmsSaz"

// compileDatePattern splits an ICU date pattern into field runs and literals.
// Quoted text is literal and '' is a single quote.
func compileDatePattern(pattern string) ([]dateToken, error) {
	var tokens []dateToken
	var lit strings.Builder
	runes := []rune(pattern)

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, dateToken{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				i++
				continue
			}
			start := i
			closed := false
			for i++; i < len(runes); i++ {
				if runes[i] != '\'' {
					lit.WriteRune(runes[i])
					continue
				}
				if i+1 < len(runes) && runes[i+1] == '\'' {
					lit.WriteRune('\'')
					i++
					continue
				}
				closed = true
				break
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quote at position %d", start)
			}
			continue
		}

		if !isASCIILetter(r) {
			lit.WriteRune(r)
			continue
		}
		if !strings.ContainsRune(dateFields, r) {
			return nil, fmt.Errorf("unsupported pattern letter %q", r)
		}

		width := 1
		for i+width < len(runes) && runes[i+width] == r {
			width++
		}
		flush()
		tokens = append(tokens, dateToken{field: r, width: width})
		i += width - 1
	}

	flush()
	return tokens, nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
