package library

import (
	"fmt"
	"strings"

	"github.com/JoeyZhen/Library-BMS/lib/clock"
)

// Report is a statistics snapshot. Values are computed fresh from the
// live registries on every request, never cached.
type Report struct {
	Date             clock.Date
	Books            int        // copies currently owned
	Visitors         int        // registered visitors
	AverageVisit     clock.Time // mean completed visit length
	BooksPurchased   int        // copies bought, within the window
	FinesCollected   int
	FinesOutstanding int
}

// GenerateReport builds a report as of the current clock. A positive
// windowDays restricts completed visits and purchases to the last that
// many days; zero or negative means all time. Fine totals and head
// counts are always all time.
func (l *Library) GenerateReport(windowDays int) Report {
	now := l.clock.Now()

	var cutoff *clock.Date
	if windowDays > 0 {
		c := now.Advance(-windowDays, 0, 0, 0)
		cutoff = &c
	}

	visitCount, totalSeconds := l.visits.CompletedStats(cutoff)
	average := clock.Time{}
	if visitCount > 0 {
		average = clock.TimeFromSeconds(totalSeconds / visitCount)
	}

	return Report{
		Date:             now,
		Books:            l.shelf.TotalOwned(),
		Visitors:         l.visitors.Count(),
		AverageVisit:     average,
		BooksPurchased:   l.shelf.TotalPurchased(cutoff),
		FinesCollected:   l.lending.Collected(),
		FinesOutstanding: l.lending.Outstanding(),
	}
}

// Format renders the report body used by the wire protocol.
func (r Report) Format() string {
	var b strings.Builder
	b.WriteString(r.Date.FormatDate())
	b.WriteString(",\n")
	fmt.Fprintf(&b, " Number of Books: %d\n", r.Books)
	fmt.Fprintf(&b, " Number of Visitors: %d\n", r.Visitors)
	fmt.Fprintf(&b, " Average Length of Visit: %s\n", r.AverageVisit.Format())
	fmt.Fprintf(&b, " Number of Books Purchased: %d\n", r.BooksPurchased)
	fmt.Fprintf(&b, " Fines Collected: %d\n", r.FinesCollected)
	fmt.Fprintf(&b, " Fines Outstanding: %d\n", r.FinesOutstanding)
	return b.String()
}
