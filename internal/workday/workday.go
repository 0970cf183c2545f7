// Package workday counts working days for leave requests and capacity
// views. The company operates on an Egyptian calendar: the weekend is
// Friday and Saturday, and registered public holidays never count as
// working days.
package workday

import "time"

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
// Normalizing to midnight keeps day-granularity comparisons free of
// timezone and sub-day off-by-one errors.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Truncate normalizes any time to UTC midnight of its calendar day.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the day is part of the Friday/Saturday weekend.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// HolidaySet is a lookup of holiday dates keyed by YYYY-MM-DD.
type HolidaySet map[string]bool

// NewHolidaySet builds a HolidaySet from date strings.
func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}

// Count returns the number of calendar days in [start, end] inclusive
// that are working days: not Friday, not Saturday, and not present in
// the holiday set. An inverted range (end before start) yields 0.
func Count(start, end time.Time, holidays HolidaySet) int {
	start = Truncate(start)
	end = Truncate(end)
	if end.Before(start) {
		return 0
	}

	count := 0
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		if IsWorkingDay(cur, holidays) {
			count++
		}
	}
	return count
}

// CountRange is Count over YYYY-MM-DD strings.
func CountRange(startDate, endDate string, holidays HolidaySet) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	return Count(start, end, holidays), nil
}

// IsWorkingDay reports whether a single day counts toward leave.
func IsWorkingDay(t time.Time, holidays HolidaySet) bool {
	if IsWeekend(t) {
		return false
	}
	return !holidays[Truncate(t).Format(DateLayout)]
}
