package service

import (
	"time"

	"taskflow/internal/model"
)

// Calendar arithmetic for recurrence and due-date extension. Month and
// year addition clamp to the last day of the target month: Jan 31 plus
// one month is Feb 29 in a leap year and Feb 28 otherwise, never a
// March overflow. Days and weeks shift the calendar date exactly.

// DateOnly reduces t to its calendar date, anchored at UTC midnight.
// The date is taken as named in t's own location, so a zoned payload
// keeps its nominal day. Anchoring everything at UTC keeps stored due
// dates comparable no matter what zone the payload or the server clock
// carried.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// AddMonths returns d shifted by n months, day-of-month clamped to the
// length of the target month.
func AddMonths(d time.Time, n int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
	first = first.AddDate(0, n, 0)
	day := d.Day()
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// AddYears returns d shifted by n years with the same clamping rule
// (Feb 29 in a non-leap target year becomes Feb 28).
func AddYears(d time.Time, n int) time.Time {
	return AddMonths(d, 12*n)
}

// NextOccurrence computes the occurrence following due for the given
// recurrence type and interval. An interval below 1 is treated as 1.
// ok is false when recurrenceType is not one of the known units.
func NextOccurrence(due time.Time, recurrenceType string, interval int) (next time.Time, ok bool) {
	if interval < 1 {
		interval = 1
	}
	switch recurrenceType {
	case model.RecurrenceDaily:
		return AddDays(due, interval), true
	case model.RecurrenceWeekly:
		return AddDays(due, 7*interval), true
	case model.RecurrenceMonthly:
		return AddMonths(due, interval), true
	case model.RecurrenceYearly:
		return AddYears(due, interval), true
	}
	return time.Time{}, false
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
