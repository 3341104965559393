// Package civil holds calendar dates and wall-clock times that carry no
// time zone. Appointments are stored and compared in these units.
package civil

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ======================================================
// DATE
// ======================================================

// Date is a calendar day such as 2026-10-19.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts exactly YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("civil: invalid date %q", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("civil: invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthKey returns the YYYY-MM prefix used for monthly grouping.
func (d Date) MonthKey() string {
	return d.String()[:7]
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// AddDays moves the date by n days, normalising month and year overflow.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

func (d Date) IsZero() bool { return d == Date{} }

// ======================================================
// TIME OF DAY
// ======================================================

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	minutes int
}

// ParseTimeOfDay accepts exactly HH:MM on a 24h clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(TimeLayout) {
		return TimeOfDay{}, fmt.Errorf("civil: invalid time %q", s)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("civil: invalid time %q: %w", s, err)
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

// TimeOf truncates t to its wall-clock minute.
func TimeOf(t time.Time) TimeOfDay {
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}
}

func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

func (t TimeOfDay) Compare(o TimeOfDay) int { return cmpInt(t.minutes, o.minutes) }

// ======================================================
// TEMPORAL RULES
// ======================================================

// IsPastDate reports whether d is strictly before the calendar day of now.
func IsPastDate(d Date, now time.Time) bool {
	return d.Before(DateOf(now))
}

// IsElapsed reports whether the slot (d, at) is today and its start is at
// or before the current minute. Earlier days are handled by IsPastDate.
func IsElapsed(d Date, at TimeOfDay, now time.Time) bool {
	if !d.Equal(DateOf(now)) {
		return false
	}
	return at.Compare(TimeOf(now)) <= 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
