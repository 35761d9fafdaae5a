package library

import (
	"github.com/google/uuid"

	"github.com/JoeyZhen/Library-BMS/lib/clock"
	"github.com/JoeyZhen/Library-BMS/lib/history"
)

// Visit records one arrival at the library and, once ended, the departure.
type Visit struct {
	ID        uuid.UUID
	VisitorID string
	Arrived   clock.Date
	Departed  clock.Date // zero until Ended
	Ended     bool
}

// Duration returns the length of an ended visit in seconds.
func (v *Visit) Duration() int {
	return v.Departed.SecondsSince(v.Arrived)
}

// Visits is the chronological ledger of all visits, open and ended.
type Visits struct {
	visits []*Visit
}

func newVisits() *Visits {
	return &Visits{}
}

// open returns the visitor's open visit, if any. At most one exists.
func (vs *Visits) open(visitorID string) (*Visit, bool) {
	for _, v := range vs.visits {
		if v.VisitorID == visitorID && !v.Ended {
			return v, true
		}
	}
	return nil, false
}

// begin appends a new open visit.
func (vs *Visits) begin(visitorID string, at clock.Date) (*Visit, error) {
	if _, ok := vs.open(visitorID); ok {
		return nil, ErrOpenVisit
	}
	v := &Visit{ID: uuid.New(), VisitorID: visitorID, Arrived: at}
	vs.visits = append(vs.visits, v)
	return v, nil
}

// remove drops a visit from the ledger (undo of an arrival).
func (vs *Visits) remove(visit *Visit) {
	for i, v := range vs.visits {
		if v == visit {
			vs.visits = append(vs.visits[:i], vs.visits[i+1:]...)
			return
		}
	}
}

// ForceClose ends every visit still open at or after the closing time, or
// left open across a day boundary. The departure is pinned to the closing
// boundary of the arrival day, not to the current clock value.
func (vs *Visits) ForceClose(now clock.Date, closing clock.Time) {
	for _, v := range vs.visits {
		if v.Ended {
			continue
		}
		pastClosing := now.SameDay(v.Arrived) && now.Time.TotalSeconds() >= closing.TotalSeconds()
		newDay := !now.SameDay(v.Arrived) && now.After(v.Arrived)
		if pastClosing || newDay {
			v.Departed = v.Arrived.At(closing)
			v.Ended = true
		}
	}
}

// CompletedStats returns the count and total seconds of ended visits. A
// non-zero cutoff restricts the aggregate to visits that ended after it.
func (vs *Visits) CompletedStats(cutoff *clock.Date) (count, totalSeconds int) {
	for _, v := range vs.visits {
		if !v.Ended {
			continue
		}
		if cutoff != nil && !v.Departed.After(*cutoff) {
			continue
		}
		count++
		totalSeconds += v.Duration()
	}
	return count, totalSeconds
}

// --------------------------------------------------------------------------
// Library Operations
// --------------------------------------------------------------------------

// BeginVisit opens a visit for the visitor at the current clock value.
// An empty visitor id records an anonymous walk-in under the sentinel id.
// Arriving outside open hours fails with ErrLibraryClosed.
func (l *Library) BeginVisit(visitorID string) (*Visit, history.Entry, error) {
	if visitorID == "" {
		visitorID = WalkInVisitorID
	} else if _, ok := l.visitors.Get(visitorID); !ok {
		return nil, nil, ErrUnknownVisitor
	}

	now := l.clock.Now()
	hour := now.Time.TotalSeconds() / 3600
	if hour < l.policy.OpenHour || hour >= l.policy.CloseHour {
		return nil, nil, ErrLibraryClosed
	}

	visit, err := l.visits.begin(visitorID, now)
	if err != nil {
		return nil, nil, err
	}

	entry := history.Funcs{
		Do:   func() { l.visits.visits = append(l.visits.visits, visit) },
		Undo: func() { l.visits.remove(visit) },
	}
	return visit, entry, nil
}

// EndVisit closes the visitor's open visit at the current clock value and
// returns it. Fails with ErrNoOpenVisit when nothing is open (the wire
// reports this as invalid-id, matching an unknown visitor).
func (l *Library) EndVisit(visitorID string) (*Visit, history.Entry, error) {
	visit, ok := l.visits.open(visitorID)
	if !ok {
		return nil, nil, ErrNoOpenVisit
	}

	departed := l.clock.Now()
	visit.Departed = departed
	visit.Ended = true

	entry := history.Funcs{
		Do: func() {
			visit.Departed = departed
			visit.Ended = true
		},
		Undo: func() {
			visit.Departed = clock.Date{}
			visit.Ended = false
		},
	}
	return visit, entry, nil
}
