package clock

import "fmt"

// Time represents a time of day as hours, minutes and seconds.
type Time struct {
	Hours   int
	Minutes int
	Seconds int
}

// NewTime creates a time of day value.
func NewTime(hours, minutes, seconds int) Time {
	return Time{Hours: hours, Minutes: minutes, Seconds: seconds}
}

// TimeFromSeconds converts a duration in seconds into a Time value.
// It is used to format visit durations as "HH:MM:SS".
func TimeFromSeconds(totalSeconds int) Time {
	return Time{
		Hours:   totalSeconds / 3600,
		Minutes: (totalSeconds / 60) % 60,
		Seconds: totalSeconds % 60,
	}
}

// TotalSeconds returns the time of day as seconds since midnight.
func (t Time) TotalSeconds() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// Format returns the time as "HH:MM:SS".
func (t Time) Format() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}
