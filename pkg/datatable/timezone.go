package datatable

import (
	"sync"
	"time"
)

// Timezone handling is lenient: a value that cannot be resolved to a location
// is ignored and the previous zone stays in effect. This applies to the process
// default, the constructor and SetTimezone. Every other field in this package
// is strict and returns an error.

var (
	defaultMu  sync.RWMutex
	defaultLoc = time.UTC
)

// DefaultTimezone returns the name of the process-wide default timezone
func DefaultTimezone() string {
	return defaultLocation().String()
}

// SetDefaultTimezone changes the process-wide default used by New.
// It reports whether tz was applied; invalid values leave the default unchanged.
func SetDefaultTimezone(tz interface{}) bool {
	loc, ok := resolveLocation(tz)
	if !ok {
		return false
	}

	defaultMu.Lock()
	defaultLoc = loc
	defaultMu.Unlock()
	return true
}

func defaultLocation() *time.Location {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLoc
}

// resolveLocation accepts IANA zone names and *time.Location values
func resolveLocation(tz interface{}) (*time.Location, bool) {
	switch v := tz.(type) {
	case *time.Location:
		if v == nil {
			return nil, false
		}
		return v, true
	case string:
		if v == "" {
			return nil, false
		}
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, false
		}
		return loc, true
	default:
		return nil, false
	}
}
