package datatable

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/conduit-lang/chartdata/internal/configschema"
)

// TimeOfDay is a wall-clock time without a date, used by timeofday columns
type TimeOfDay struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// NewTimeOfDay creates a TimeOfDay, validating each component
func NewTimeOfDay(hour, minute, second, millisecond int) (TimeOfDay, error) {
	tod := TimeOfDay{Hour: hour, Minute: minute, Second: second, Millisecond: millisecond}
	if err := tod.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return tod, nil
}

// Validate checks every component is within its clock range
func (t TimeOfDay) Validate() error {
	switch {
	case t.Hour < 0 || t.Hour > 23:
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidDateTimeString, t.Hour)
	case t.Minute < 0 || t.Minute > 59:
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidDateTimeString, t.Minute)
	case t.Second < 0 || t.Second > 59:
		return fmt.Errorf("%w: second %d out of range", ErrInvalidDateTimeString, t.Second)
	case t.Millisecond < 0 || t.Millisecond > 999:
		return fmt.Errorf("%w: millisecond %d out of range", ErrInvalidDateTimeString, t.Millisecond)
	}
	return nil
}

// Literal returns the wire form: three elements, or four when milliseconds are set
func (t TimeOfDay) Literal() []int {
	if t.Millisecond != 0 {
		return []int{t.Hour, t.Minute, t.Second, t.Millisecond}
	}
	return []int{t.Hour, t.Minute, t.Second}
}

// String returns HH:MM:SS, with .mmm when milliseconds are set
func (t TimeOfDay) String() string {
	if t.Millisecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millisecond)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

var timeOfDayLayouts = []string{"15:04:05.000", "15:04:05", "15:04"}

// ParseTimeOfDay parses HH:MM, HH:MM:SS or HH:MM:SS.mmm
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return TimeOfDay{
			Hour:        t.Hour(),
			Minute:      t.Minute(),
			Second:      t.Second(),
			Millisecond: t.Nanosecond() / int(time.Millisecond),
		}, nil
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q is not a time of day", ErrInvalidDateTimeString, s)
}

func toTimeOfDay(value interface{}, loc *time.Location) (TimeOfDay, error) {
	switch v := value.(type) {
	case TimeOfDay:
		return v, v.Validate()
	case *TimeOfDay:
		if v == nil {
			break
		}
		return *v, v.Validate()
	case string:
		return ParseTimeOfDay(v)
	case time.Time:
		t := v.In(loc)
		return TimeOfDay{
			Hour:        t.Hour(),
			Minute:      t.Minute(),
			Second:      t.Second(),
			Millisecond: t.Nanosecond() / int(time.Millisecond),
		}, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return timeOfDayFromSequence(rv)
	}

	return TimeOfDay{}, fmt.Errorf("%w: %T is not a time of day", ErrInvalidDateTimeString, value)
}

func timeOfDayFromSequence(rv reflect.Value) (TimeOfDay, error) {
	n := rv.Len()
	if n != 3 && n != 4 {
		return TimeOfDay{}, fmt.Errorf("%w: time of day needs 3 or 4 parts, got %d", ErrInvalidDateTimeString, n)
	}

	parts := make([]int, 4)
	for i := 0; i < n; i++ {
		p, ok := configschema.ToInt(rv.Index(i).Interface())
		if !ok {
			return TimeOfDay{}, fmt.Errorf("%w: time of day part %d is not an integer", ErrInvalidDateTimeString, i)
		}
		parts[i] = p
	}

	tod := TimeOfDay{Hour: parts[0], Minute: parts[1], Second: parts[2], Millisecond: parts[3]}
	return tod, tod.Validate()
}
