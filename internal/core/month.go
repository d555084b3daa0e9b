package core

import (
	"fmt"
	"time"
)

const (
	// MonthOfYear matches on the month field alone, so the same month of
	// an earlier year is included. This is the historical behavior.
	MonthOfYear MonthWindow = "month"
	// CalendarMonth requires both month and year to match.
	CalendarMonth MonthWindow = "calendar"
)

// MonthWindow decides which transaction dates count as "this month".
type MonthWindow string

func ParseMonthWindow(s string) (MonthWindow, error) {
	switch MonthWindow(s) {
	case MonthOfYear, CalendarMonth:
		return MonthWindow(s), nil
	default:
		return "", fmt.Errorf("invalid month window %q: must be %q or %q", s, MonthOfYear, CalendarMonth)
	}
}

// Contains reports whether date falls in the month of now. The date is
// viewed in now's location.
func (w MonthWindow) Contains(now, date time.Time) bool {
	d := date.In(now.Location())
	if d.Month() != now.Month() {
		return false
	}
	if w == CalendarMonth {
		return d.Year() == now.Year()
	}
	return true
}
