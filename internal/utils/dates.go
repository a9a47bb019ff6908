package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a day-granular time.Time (UTC midnight)
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %v", err)
	}
	return t, nil
}

// FormatDate renders a time as yyyy-mm-dd
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DateOnly truncates a time to its calendar date at UTC midnight.
// All engine arithmetic works at day granularity; no fractional days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference end - start.
// Negative when end is before start.
func DaysBetween(start, end time.Time) int32 {
	s := DateOnly(start)
	e := DateOnly(end)
	return int32(e.Sub(s).Hours() / 24)
}

// InclusiveDayCount counts rental days between two dates including both
// ends, with a minimum of 1: a same-day rental still accrues one day.
func InclusiveDayCount(start, end time.Time) int32 {
	days := DaysBetween(start, end) + 1
	if days < 1 {
		return 1
	}
	return days
}
