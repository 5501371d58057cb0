package domain

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month, the granularity of bulk fare retrieval.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the month t falls in.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// String formats the month as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// FirstDay returns the first calendar day of the month (midnight UTC).
func (ym YearMonth) FirstDay() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DailyFareTable maps an ISO calendar date (YYYY-MM-DD) to the lowest one-way
// fare for that day. A missing key means the fare is unknown, not zero.
type DailyFareTable map[string]float64

// PriceOn returns the fare for the calendar day of t.
func (t DailyFareTable) PriceOn(day time.Time) (float64, bool) {
	price, ok := t[day.Format("2006-01-02")]
	return price, ok
}

// FareCacheKey identifies one monthly fare table. (A, B, m) and (B, A, m) are
// different keys because fares are asymmetric.
type FareCacheKey struct {
	Origin      string
	Destination string
	Month       YearMonth
}

// String formats the key as ORIGIN-DEST-YYYY-MM.
func (k FareCacheKey) String() string {
	return k.Origin + "-" + k.Destination + "-" + k.Month.String()
}

// LookupStatus distinguishes why a fare table is empty.
type LookupStatus string

// Lookup statuses.
const (
	// LookupFound means the upstream answered with at least one priced day.
	LookupFound LookupStatus = "found"

	// LookupEmpty means the upstream answered but had no priced day.
	LookupEmpty LookupStatus = "empty"

	// LookupUnavailable means the lookup failed (timeout, bad status, bad payload).
	LookupUnavailable LookupStatus = "unavailable"
)

// FareLookup is the outcome of fetching one monthly fare table. Unavailable
// lookups carry an empty table, so callers can treat every status uniformly
// while observability code still sees the difference.
type FareLookup struct {
	Key    FareCacheKey
	Fares  DailyFareTable
	Status LookupStatus
	Err    error
}

// NewFareLookup classifies a provider result into a FareLookup.
func NewFareLookup(key FareCacheKey, fares DailyFareTable, err error) FareLookup {
	switch {
	case err != nil:
		return FareLookup{Key: key, Fares: DailyFareTable{}, Status: LookupUnavailable, Err: err}
	case len(fares) == 0:
		return FareLookup{Key: key, Fares: DailyFareTable{}, Status: LookupEmpty}
	default:
		return FareLookup{Key: key, Fares: fares, Status: LookupFound}
	}
}

// PriceOn returns the fare for the given day, if known.
func (l FareLookup) PriceOn(day time.Time) (float64, bool) {
	return l.Fares.PriceOn(day)
}

// Failed reports whether the lookup itself failed.
func (l FareLookup) Failed() bool {
	return l.Status == LookupUnavailable
}
