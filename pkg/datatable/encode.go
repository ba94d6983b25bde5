package datatable

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/conduit-lang/chartdata/internal/configschema"
	"github.com/spf13/cast"
)

// DateLike is satisfied by time.Time and by calendar types that can report
// the date they represent. Values that also have a Clock method contribute
// their time of day to datetime columns.
type DateLike interface {
	Date() (year int, month time.Month, day int)
}

type clock interface {
	Clock() (hour, min, sec int)
}

type timer interface {
	Time() time.Time
}

func encodeBoolean(value interface{}, _ *time.Location) (interface{}, interface{}, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, nil, fmt.Errorf("%w: boolean column expects bool, got %T", ErrInvalidCellValue, value)
	}
	return b, b, nil
}

func encodeNumber(value interface{}, _ *time.Location) (interface{}, interface{}, error) {
	f, ok := configschema.ToFloat(value)
	if !ok {
		return nil, nil, fmt.Errorf("%w: number column expects a number, got %T", ErrInvalidCellValue, value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, nil, fmt.Errorf("%w: number must be finite, got %v", ErrInvalidCellValue, f)
	}
	return value, value, nil
}

func encodeString(value interface{}, _ *time.Location) (interface{}, interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, v, nil
	case DateLike, timer, TimeOfDay, *TimeOfDay:
		return nil, nil, fmt.Errorf("%w: string column does not accept date value %T", ErrInvalidCellValue, value)
	case fmt.Stringer:
		s := v.String()
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("%w: string column expects string, got %T", ErrInvalidCellValue, value)
	}
}

func encodeDate(value interface{}, loc *time.Location) (interface{}, interface{}, error) {
	t, err := toTime(value, loc)
	if err != nil {
		return nil, nil, err
	}

	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), dateLiteral(y, m, d, 0, 0, 0), nil
}

func encodeDateTime(value interface{}, loc *time.Location) (interface{}, interface{}, error) {
	t, err := toTime(value, loc)
	if err != nil {
		return nil, nil, err
	}

	t = t.In(loc)
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return t, dateLiteral(y, m, d, h, mi, s), nil
}

func encodeTimeOfDay(value interface{}, loc *time.Location) (interface{}, interface{}, error) {
	tod, err := toTimeOfDay(value, loc)
	if err != nil {
		return nil, nil, err
	}
	return tod, tod.Literal(), nil
}

// DateLiteral returns the renderer's date constructor literal for t, with a
// zero-indexed month
func DateLiteral(t time.Time) string {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return dateLiteral(y, m, d, h, mi, s)
}

func dateLiteral(y int, m time.Month, d, h, mi, s int) string {
	return fmt.Sprintf("Date(%d,%d,%d,%d,%d,%d)", y, int(m)-1, d, h, mi, s)
}

// toTime normalizes date-like inputs. Strings are parsed in loc.
func toTime(value interface{}, loc *time.Location) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	case string:
		return parseDateTime(v, loc)
	case timer:
		return v.Time(), nil
	case DateLike:
		y, m, d := v.Date()
		var h, mi, s int
		if c, ok := value.(clock); ok {
			h, mi, s = c.Clock()
		}
		return time.Date(y, m, d, h, mi, s, 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("%w: %T is neither a date nor a date string", ErrInvalidDateTimeString, value)
}

func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidDateTimeString)
	}

	t, err := cast.ToTimeInDefaultLocationE(trimmed, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTimeString, s)
	}
	return t, nil
}

// isEmptyPlaceholder reports whether value is an empty slice, array or map
func isEmptyPlaceholder(value interface{}) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}
