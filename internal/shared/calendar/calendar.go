// Package calendar holds the date arithmetic shared by leave and attendance:
// inclusive range overlap, inclusive day counts and weekday counting.
package calendar

import (
	"errors"
	"math"
	"time"
)

const DayLayout = "2006-01-02"

var ErrInvalidRange = errors.New("end date is before start date")

// Range is a closed interval; both endpoints belong to it.
type Range struct {
	Start time.Time
	End   time.Time
}

type StatusRange struct {
	Range
	Status string
}

func NewRange(start, end time.Time) (Range, error) {
	if end.Before(start) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// Overlaps reports whether a and b share at least one instant.
func Overlaps(a, b Range) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

// OverlapsAny checks candidate against the entries whose status is one of
// activeStatuses. With no active statuses given nothing participates.
func OverlapsAny(candidate Range, existing []StatusRange, activeStatuses ...string) bool {
	for _, e := range existing {
		if !contains(activeStatuses, e.Status) {
			continue
		}
		if Overlaps(candidate, e.Range) {
			return true
		}
	}
	return false
}

// InclusiveDays counts calendar days covered by [start, end], so a single
// day yields 1. Partial days round up.
func InclusiveDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	days := math.Ceil(end.Sub(start).Hours() / 24)
	return int(days) + 1, nil
}

// WorkingDays counts the days in [start, end] that fall Monday to Friday.
func WorkingDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}

	count := 0
	last := DayOf(end)
	for d := DayOf(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		count++
	}
	return count, nil
}

// DayOf truncates t to midnight UTC of its UTC calendar day.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
