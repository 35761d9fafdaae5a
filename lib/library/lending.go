package library

import (
	"github.com/google/uuid"

	"github.com/JoeyZhen/Library-BMS/lib/clock"
	"github.com/JoeyZhen/Library-BMS/lib/history"
)

// Loan links a visitor, one copy of a book, and a due date.
type Loan struct {
	ID          uuid.UUID
	VisitorID   string
	BookID      uint64
	ISBN        string
	Title       string
	Borrowed    clock.Date
	Due         clock.Date
	Returned    clock.Date // zero until closed
	Closed      bool
	FineCharged bool // the one-time late fee for this copy has been charged
}

// Lending tracks loans, per-visitor fine balances, and the process-wide
// collected total. Outstanding totals are always computed from the
// balances, never cached.
type Lending struct {
	loans     []*Loan // chronological; FIFO matching depends on this order
	balances  map[string]int
	collected int
}

func newLending() *Lending {
	return &Lending{balances: make(map[string]int)}
}

// OpenLoans returns the visitor's open loans in borrow order.
func (ln *Lending) OpenLoans(visitorID string) []*Loan {
	var open []*Loan
	for _, loan := range ln.loans {
		if loan.VisitorID == visitorID && !loan.Closed {
			open = append(open, loan)
		}
	}
	return open
}

// Balance returns the visitor's outstanding fine balance.
func (ln *Lending) Balance(visitorID string) int {
	return ln.balances[visitorID]
}

// Collected returns the total fines collected so far.
func (ln *Lending) Collected() int {
	return ln.collected
}

// Outstanding returns the sum of all visitors' outstanding balances.
func (ln *Lending) Outstanding() int {
	total := 0
	for _, b := range ln.balances {
		total += b
	}
	return total
}

// ChargeOverdue charges the flat late fee for every open loan whose due
// date the clock has passed and that has not been charged yet. Called
// after every clock advance, so a copy is charged exactly once.
func (ln *Lending) ChargeOverdue(now clock.Date, fee int) {
	for _, loan := range ln.loans {
		if loan.Closed || loan.FineCharged || !now.After(loan.Due) {
			continue
		}
		loan.FineCharged = true
		ln.balances[loan.VisitorID] += fee
	}
}

// oldestOpen returns the visitor's oldest open loan of the given book.
func (ln *Lending) oldestOpen(visitorID string, bookID uint64) (*Loan, bool) {
	for _, loan := range ln.loans {
		if loan.VisitorID == visitorID && loan.BookID == bookID && !loan.Closed {
			return loan, true
		}
	}
	return nil, false
}

// remove drops a loan record entirely (undo of a borrow).
func (ln *Lending) remove(loan *Loan) {
	for i, l := range ln.loans {
		if l == loan {
			ln.loans = append(ln.loans[:i], ln.loans[i+1:]...)
			return
		}
	}
}

// --------------------------------------------------------------------------
// Library Operations
// --------------------------------------------------------------------------

// Borrow checks a whole batch of book ids out to a visitor. A duplicated
// id requests two independent copies. The batch is all-or-nothing: an
// unknown id fails ErrUnknownBook; exceeding the loan limit or requesting
// an unavailable copy fails ErrBookLimit; a fine balance at or above the
// policy limit fails with OutstandingFineError. On success every copy
// shares one due date, which is returned.
func (l *Library) Borrow(visitorID string, ids []uint64) (clock.Date, history.Entry, error) {
	var due clock.Date

	if _, ok := l.visitors.Get(visitorID); !ok {
		return due, nil, ErrUnknownVisitor
	}

	requested := make(map[uint64]int)
	for _, id := range ids {
		if _, ok := l.shelf.Get(id); !ok {
			return due, nil, ErrUnknownBook
		}
		requested[id]++
	}

	if len(l.lending.OpenLoans(visitorID))+len(ids) > l.policy.LoanLimit {
		return due, nil, ErrBookLimit
	}
	for id, copies := range requested {
		if entry, _ := l.shelf.Get(id); entry.Available() < copies {
			return due, nil, ErrBookLimit
		}
	}

	if balance := l.lending.Balance(visitorID); balance >= l.policy.FineLimit {
		return due, nil, &OutstandingFineError{Balance: balance}
	}

	now := l.clock.Now()
	due = now.Advance(l.policy.LoanPeriodDays, 0, 0, 0)

	var loans []*Loan
	for _, id := range ids {
		entry, _ := l.shelf.Get(id)
		entry.Borrowed++
		loans = append(loans, &Loan{
			ID:        uuid.New(),
			VisitorID: visitorID,
			BookID:    id,
			ISBN:      entry.ISBN,
			Title:     entry.Title,
			Borrowed:  now,
			Due:       due,
		})
	}
	l.lending.loans = append(l.lending.loans, loans...)

	entry := history.Funcs{
		Do: func() {
			for _, loan := range loans {
				shelfEntry, _ := l.shelf.Get(loan.BookID)
				shelfEntry.Borrowed++
			}
			l.lending.loans = append(l.lending.loans, loans...)
		},
		Undo: func() {
			for _, loan := range loans {
				shelfEntry, _ := l.shelf.Get(loan.BookID)
				shelfEntry.Borrowed--
				l.lending.remove(loan)
			}
		},
	}
	return due, entry, nil
}

// ReturnResult describes the outcome of a return request. Matching is
// partial by design: loans matched before the first invalid id stay
// returned, and InvalidID reports that id.
type ReturnResult struct {
	OverdueFee  int      // total late fee over the returned overdue copies
	OverdueIDs  []uint64 // requested ids of the overdue copies, in request order
	Applied     int      // copies actually returned
	InvalidID   uint64   // set when Invalid is true
	Invalid     bool
}

// Return closes the visitor's open loans matching the requested ids, FIFO
// per distinct book id. Each id matches the oldest open loan of that
// book; an id with no match stops processing and is reported, but prior
// matches remain applied.
func (l *Library) Return(visitorID string, ids []uint64) (ReturnResult, history.Entry, error) {
	if _, ok := l.visitors.Get(visitorID); !ok {
		return ReturnResult{}, nil, ErrUnknownVisitor
	}

	now := l.clock.Now()
	var result ReturnResult
	var closed []*Loan

	for _, id := range ids {
		loan, ok := l.lending.oldestOpen(visitorID, id)
		if !ok {
			result.Invalid = true
			result.InvalidID = id
			break
		}

		loan.Returned = now
		loan.Closed = true
		shelfEntry, _ := l.shelf.Get(loan.BookID)
		shelfEntry.Borrowed--
		closed = append(closed, loan)
		result.Applied++

		if loan.FineCharged || now.After(loan.Due) {
			result.OverdueFee += l.policy.LateFee
			result.OverdueIDs = append(result.OverdueIDs, id)
		}
	}

	if len(closed) == 0 {
		return result, nil, nil
	}

	entry := history.Funcs{
		Do: func() {
			for _, loan := range closed {
				loan.Returned = now
				loan.Closed = true
				shelfEntry, _ := l.shelf.Get(loan.BookID)
				shelfEntry.Borrowed--
			}
		},
		Undo: func() {
			for _, loan := range closed {
				loan.Returned = clock.Date{}
				loan.Closed = false
				shelfEntry, _ := l.shelf.Get(loan.BookID)
				shelfEntry.Borrowed++
			}
		},
	}
	return result, entry, nil
}

// Pay settles part of a visitor's outstanding balance. The amount must be
// positive and no greater than the balance; otherwise nothing changes and
// an InvalidAmountError reports both numbers. Returns the new balance.
func (l *Library) Pay(visitorID string, amount int) (int, history.Entry, error) {
	if _, ok := l.visitors.Get(visitorID); !ok {
		return 0, nil, ErrUnknownVisitor
	}

	balance := l.lending.Balance(visitorID)
	if amount < 0 || amount > balance {
		return 0, nil, &InvalidAmountError{Attempted: amount, Balance: balance}
	}

	l.lending.balances[visitorID] = balance - amount
	l.lending.collected += amount

	entry := history.Funcs{
		Do: func() {
			l.lending.balances[visitorID] -= amount
			l.lending.collected += amount
		},
		Undo: func() {
			l.lending.balances[visitorID] += amount
			l.lending.collected -= amount
		},
	}
	return balance - amount, entry, nil
}

// Loans returns the visitor's open loans in borrow order.
func (l *Library) Loans(visitorID string) []*Loan {
	return l.lending.OpenLoans(visitorID)
}
