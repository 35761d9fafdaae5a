package library

import (
	"github.com/JoeyZhen/Library-BMS/lib/books"
	"github.com/JoeyZhen/Library-BMS/lib/clock"
	"github.com/JoeyZhen/Library-BMS/lib/history"
)

// Owned is one inventory entry: a catalog record together with how many
// copies the library owns and how many are currently out on loan.
type Owned struct {
	books.Record
	Owned    int
	Borrowed int
}

// Available returns the number of copies on the shelf right now.
func (o *Owned) Available() int {
	return o.Owned - o.Borrowed
}

// Purchase is one entry of the purchase log, kept for windowed reports.
type Purchase struct {
	Date   clock.Date
	Copies int
}

// Shelf is the library's owned inventory, keyed by the display id the
// record had in the info service it was purchased from. Insertion order is
// preserved: it is the tie-break order for book-status searches.
type Shelf struct {
	byID      map[uint64]*Owned
	order     []*Owned
	purchases []Purchase
}

func newShelf() *Shelf {
	return &Shelf{byID: make(map[uint64]*Owned)}
}

// Get resolves an inventory entry by display id.
func (s *Shelf) Get(id uint64) (*Owned, bool) {
	o, ok := s.byID[id]
	return o, ok
}

// TotalOwned returns the total number of copies the library owns.
func (s *Shelf) TotalOwned() int {
	total := 0
	for _, o := range s.order {
		total += o.Owned
	}
	return total
}

// TotalPurchased returns the number of copies ever purchased. A non-zero
// cutoff restricts the sum to purchases made after it.
func (s *Shelf) TotalPurchased(cutoff *clock.Date) int {
	total := 0
	for _, p := range s.purchases {
		if cutoff != nil && !p.Date.After(*cutoff) {
			continue
		}
		total += p.Copies
	}
	return total
}

// add credits copies to the entry for a record, creating it on first
// purchase. Returns the entry and whether it was created.
func (s *Shelf) add(record books.Record, copies int) (*Owned, bool) {
	if o, ok := s.byID[record.ID]; ok {
		o.Owned += copies
		return o, false
	}
	o := &Owned{Record: record, Owned: copies}
	s.byID[record.ID] = o
	s.order = append(s.order, o)
	return o, true
}

// drop removes an entry created by an undone purchase.
func (s *Shelf) drop(o *Owned) {
	delete(s.byID, o.ID)
	for i, e := range s.order {
		if e == o {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// --------------------------------------------------------------------------
// Library Operations
// --------------------------------------------------------------------------

// PurchaseLine is one line of a purchase result: the record bought and the
// number of copies this purchase added for it.
type PurchaseLine struct {
	books.Record
	Added int
}

// Buy purchases copies of store titles: each occurrence of an id in the
// request adds quantity copies, so a duplicated id buys twice. Ids resolve
// against the currently selected info service; an unknown id fails with
// ErrUnknownBook and nothing is applied. Result lines list distinct ids in
// first-occurrence order.
func (l *Library) Buy(quantity int, ids []uint64) ([]PurchaseLine, history.Entry, error) {
	// Collapse duplicates first so the whole batch validates before any
	// state changes.
	copiesByID := make(map[uint64]int)
	var distinct []uint64
	for _, id := range ids {
		if _, seen := copiesByID[id]; !seen {
			distinct = append(distinct, id)
		}
		copiesByID[id] += quantity
	}

	records := make(map[uint64]books.Record, len(distinct))
	for _, id := range distinct {
		record, ok := l.service.Lookup(id)
		if !ok {
			return nil, nil, ErrUnknownBook
		}
		records[id] = record
	}

	// Apply and capture the inverse per entry.
	type applied struct {
		entry   *Owned
		copies  int
		created bool
	}
	var lines []PurchaseLine
	var changes []applied
	for _, id := range distinct {
		copies := copiesByID[id]
		entry, created := l.shelf.add(records[id], copies)
		changes = append(changes, applied{entry: entry, copies: copies, created: created})
		lines = append(lines, PurchaseLine{Record: entry.Record, Added: copies})
	}

	purchase := Purchase{Date: l.clock.Now(), Copies: quantity * len(ids)}
	l.shelf.purchases = append(l.shelf.purchases, purchase)

	entry := history.Funcs{
		Do: func() {
			for _, c := range changes {
				if c.created {
					l.shelf.byID[c.entry.ID] = c.entry
					l.shelf.order = append(l.shelf.order, c.entry)
				}
				c.entry.Owned += c.copies
			}
			l.shelf.purchases = append(l.shelf.purchases, purchase)
		},
		Undo: func() {
			for _, c := range changes {
				c.entry.Owned -= c.copies
				if c.created {
					l.shelf.drop(c.entry)
				}
			}
			l.shelf.purchases = l.shelf.purchases[:len(l.shelf.purchases)-1]
		},
	}
	return lines, entry, nil
}

// SearchShelf queries the owned inventory with the same filter semantics
// as the store search. Only entries the library owns are considered, and
// book-status ordering uses live availability.
func (l *Library) SearchShelf(q books.Query) ([]*Owned, error) {
	var records []books.Record
	for _, o := range l.shelf.order {
		if q.Matches(o.Book) {
			records = append(records, o.Record)
		}
	}

	err := books.SortRecords(records, q.Sort, func(r books.Record) int {
		if o, ok := l.shelf.Get(r.ID); ok {
			return o.Available()
		}
		return 0
	})
	if err != nil {
		return nil, err
	}

	results := make([]*Owned, len(records))
	for i, r := range records {
		results[i] = l.shelf.byID[r.ID]
	}
	return results, nil
}
