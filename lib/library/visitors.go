package library

import (
	"fmt"

	"github.com/JoeyZhen/Library-BMS/lib/clock"
	"github.com/JoeyZhen/Library-BMS/lib/history"
)

// WalkInVisitorID is the sentinel id recorded for unregistered walk-ins.
const WalkInVisitorID = "0000000000"

// Visitor is one registered library visitor. Visitors are never deleted
// (except by undoing their registration).
type Visitor struct {
	ID         string // zero-padded sequential id, e.g. "0000000001"
	FirstName  string
	LastName   string
	Address    string
	Phone      string
	Registered clock.Date
}

// Name returns the visitor's full name.
func (v *Visitor) Name() string {
	return v.FirstName + " " + v.LastName
}

// identity is the uniqueness rule for duplicate registration detection.
func (v *Visitor) identity() string {
	return v.FirstName + "\x00" + v.LastName + "\x00" + v.Address + "\x00" + v.Phone
}

// Visitors is the registry of registered visitors.
type Visitors struct {
	byID       map[string]*Visitor
	identities map[string]bool
	issued     uint64 // last issued sequential id
}

func newVisitors() *Visitors {
	return &Visitors{
		byID:       make(map[string]*Visitor),
		identities: make(map[string]bool),
	}
}

// Get resolves a visitor id.
func (r *Visitors) Get(id string) (*Visitor, bool) {
	v, ok := r.byID[id]
	return v, ok
}

// Count returns the number of registered visitors.
func (r *Visitors) Count() int {
	return len(r.byID)
}

// register stores a new visitor under the next sequential id.
func (r *Visitors) register(first, last, address, phone string, at clock.Date) (*Visitor, error) {
	v := &Visitor{
		FirstName:  first,
		LastName:   last,
		Address:    address,
		Phone:      phone,
		Registered: at,
	}
	if r.identities[v.identity()] {
		return nil, ErrDuplicateVisitor
	}

	r.issued++
	v.ID = fmt.Sprintf("%010d", r.issued)
	r.byID[v.ID] = v
	r.identities[v.identity()] = true
	return v, nil
}

// remove deletes a visitor again. The id-allocation counter is rolled
// back only if this was the most recently issued id, so ids issued in
// between stay unique.
func (r *Visitors) remove(v *Visitor) {
	delete(r.byID, v.ID)
	delete(r.identities, v.identity())

	var num uint64
	fmt.Sscanf(v.ID, "%d", &num)
	if num == r.issued {
		r.issued--
	}
}

// restore re-adds a previously removed visitor under its original id.
func (r *Visitors) restore(v *Visitor) {
	r.byID[v.ID] = v
	r.identities[v.identity()] = true

	var num uint64
	fmt.Sscanf(v.ID, "%d", &num)
	if num > r.issued {
		r.issued = num
	}
}

// --------------------------------------------------------------------------
// Library Operations
// --------------------------------------------------------------------------

// RegisterVisitor registers a new visitor, timestamped with the current
// clock value. Registering the same identity twice fails with
// ErrDuplicateVisitor.
func (l *Library) RegisterVisitor(first, last, address, phone string) (*Visitor, history.Entry, error) {
	v, err := l.visitors.register(first, last, address, phone, l.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	entry := history.Funcs{
		Do:   func() { l.visitors.restore(v) },
		Undo: func() { l.visitors.remove(v) },
	}
	return v, entry, nil
}

// Visitor resolves a visitor id.
func (l *Library) Visitor(id string) (*Visitor, bool) {
	return l.visitors.Get(id)
}
