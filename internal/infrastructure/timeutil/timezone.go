package timeutil

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

// locationCache stores cached timezone locations.
var locationCache sync.Map

// Common timezone names.
const (
	// UTC is the Coordinated Universal Time.
	UTC = "UTC"

	// Dublin is the home-region timezone used to decide what "today" is.
	Dublin = "Europe/Dublin"
)

// DateLayout is the ISO calendar date layout used on the wire and as fare table keys.
const DateLayout = "2006-01-02"

// GetLocation returns a cached timezone location.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation returns a cached timezone location or panics on error.
// Use this for known-good timezone names (e.g., constants).
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// CalendarDate strips the time of day and zone, returning midnight UTC of the
// calendar day t falls on in its own location. Day arithmetic on the result is
// free of DST effects.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of clock's current time observed in loc.
// A nil loc means UTC.
func Today(clock Clock, loc *time.Location) time.Time {
	now := clock.Now()
	if loc != nil {
		now = now.In(loc)
	}
	return CalendarDate(now)
}

// AddDays returns the calendar date n days after d.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)).Hours() / 24)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ClearLocationCache clears the cached timezone locations.
// This is primarily useful for testing.
func ClearLocationCache() {
	locationCache.Range(func(key, _ interface{}) bool {
		locationCache.Delete(key)
		return true
	})
}
