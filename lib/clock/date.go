package clock

import (
	"fmt"
	"time"
)

// Date represents a calendar date combined with a time of day.
type Date struct {
	Time
	Year  int
	Month int
	Day   int
}

// NewDate creates a date value. Out-of-range fields (e.g. month 13 or
// hour 26) are normalized the way the standard calendar does.
func NewDate(year, month, day, hours, minutes, seconds int) Date {
	norm := time.Date(year, time.Month(month), day, hours, minutes, seconds, 0, time.UTC)
	return Date{
		Time:  Time{Hours: norm.Hour(), Minutes: norm.Minute(), Seconds: norm.Second()},
		Year:  norm.Year(),
		Month: int(norm.Month()),
		Day:   norm.Day(),
	}
}

// FormatDate returns the date as "YYYY/MM/DD".
func (d Date) FormatDate() string {
	return fmt.Sprintf("%d/%02d/%02d", d.Year, d.Month, d.Day)
}

// FormatDateTime returns the date as "YYYY/MM/DD HH:MM:SS".
func (d Date) FormatDateTime() string {
	return d.FormatDate() + " " + d.Format()
}

// Timestamp returns the date as seconds since the unix epoch.
func (d Date) Timestamp() int64 {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hours, d.Minutes, d.Seconds, 0, time.UTC).Unix()
}

// Advance returns a new date moved forward by the given amount of
// days, hours, minutes and seconds. Calendar overflow is normalized.
func (d Date) Advance(days, hours, minutes, seconds int) Date {
	return NewDate(d.Year, d.Month, d.Day+days, d.Hours+hours, d.Minutes+minutes, d.Seconds+seconds)
}

// At returns the same calendar day with a different time of day.
func (d Date) At(t Time) Date {
	return NewDate(d.Year, d.Month, d.Day, t.Hours, t.Minutes, t.Seconds)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Timestamp() > other.Timestamp()
}

// SameDay reports whether both dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// SecondsSince returns the number of seconds elapsed since earlier.
func (d Date) SecondsSince(earlier Date) int {
	return int(d.Timestamp() - earlier.Timestamp())
}

// DaysSince returns the number of whole days elapsed since earlier.
func (d Date) DaysSince(earlier Date) int {
	return d.SecondsSince(earlier) / (60 * 60 * 24)
}
