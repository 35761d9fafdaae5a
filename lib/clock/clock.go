package clock

// Default simulated start of time for a freshly created system.
const (
	startYear  = 2019
	startMonth = 1
	startDay   = 1
	startHour  = 8
)

// Clock is the process-wide simulated date-time. It is owned by the
// library aggregate and advanced only in response to an explicit
// advance request; it never moves backward.
//
// Thread-safety: the Clock is not synchronized on its own. All access
// happens inside the dispatcher's critical section.
type Clock struct {
	now Date
}

// New creates a clock set to the simulated start of time
// (2019/01/01 08:00:00).
func New() *Clock {
	return &Clock{now: NewDate(startYear, startMonth, startDay, startHour, 0, 0)}
}

// Now returns the current simulated date-time.
func (c *Clock) Now() Date {
	return c.now
}

// Advance moves the clock forward by the given number of days and hours.
func (c *Clock) Advance(days, hours int) {
	c.now = c.now.Advance(days, hours, 0, 0)
}
