package library

import (
	"errors"
	"fmt"

	"github.com/JoeyZhen/Library-BMS/lib/books"
	"github.com/JoeyZhen/Library-BMS/lib/clock"
	"github.com/JoeyZhen/Library-BMS/lib/history"
)

// Policy holds the business-rule constants. The reference values are the
// defaults; deployments may override them through the serve configuration.
type Policy struct {
	OpenHour       int // visitors may arrive from this hour (inclusive)
	CloseHour      int // and until this hour (exclusive); open visits are force-closed here
	LoanLimit      int // maximum concurrently open loans per visitor
	LoanPeriodDays int // loans fall due this many days after borrowing
	LateFee        int // flat fee charged once per overdue copy
	FineLimit      int // borrowing is blocked at this outstanding balance
}

// DefaultPolicy returns the reference configuration: open 08:00-20:00,
// 5 loans per visitor, 7 day loan period, fee 10 per overdue copy,
// borrowing blocked at a balance of 20.
func DefaultPolicy() Policy {
	return Policy{
		OpenHour:       8,
		CloseHour:      20,
		LoanLimit:      5,
		LoanPeriodDays: 7,
		LateFee:        10,
		FineLimit:      20,
	}
}

// Domain errors. Commands map these onto wire response codes.
var (
	ErrDuplicateVisitor  = errors.New("duplicate visitor")
	ErrUnknownVisitor    = errors.New("unknown visitor")
	ErrLibraryClosed     = errors.New("library closed")
	ErrOpenVisit         = errors.New("visitor already has an open visit")
	ErrNoOpenVisit       = errors.New("visitor has no open visit")
	ErrUnknownBook       = errors.New("unknown book id")
	ErrBookLimit         = errors.New("book limit exceeded")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateAccount  = errors.New("visitor already has an account")
	ErrInvalidRole       = errors.New("invalid role")
	ErrUnknownService    = errors.New("unknown info service")
)

// OutstandingFineError blocks borrowing while a visitor owes too much.
type OutstandingFineError struct {
	Balance int
}

func (e *OutstandingFineError) Error() string {
	return fmt.Sprintf("outstanding fine balance of %d", e.Balance)
}

// InvalidAmountError rejects a payment that is negative or exceeds the
// visitor's outstanding balance.
type InvalidAmountError struct {
	Attempted int
	Balance   int
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid payment of %d against balance of %d", e.Attempted, e.Balance)
}

// Library is the aggregate owning the whole domain state. It is created
// once per server process and passed by reference into the dispatcher's
// serialized command-execution path.
type Library struct {
	policy Policy

	clock    *clock.Clock
	store    *books.Catalog
	services map[string]books.Service
	service  books.Service // currently selected info service

	shelf    *Shelf
	visitors *Visitors
	visits   *Visits
	lending  *Lending
	accounts *Accounts
	history  *history.History
}

// New creates a library with an empty inventory, the embedded store
// catalog, the preset root account, and the clock at the start of
// simulated time.
func New(policy Policy) (*Library, error) {
	store, err := books.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load store catalog: %v", err)
	}
	return newWith(policy, store), nil
}

// newWith wires the aggregate around an explicit store catalog (tests use
// trimmed catalogs).
func newWith(policy Policy, store *books.Catalog) *Library {
	google := books.NewGoogleService(uint64(store.Size()) + 500)

	lib := &Library{
		policy: policy,
		clock:  clock.New(),
		store:  store,
		services: map[string]books.Service{
			books.ServiceLocal:  store,
			books.ServiceGoogle: google,
		},
		service:  store,
		shelf:    newShelf(),
		visitors: newVisitors(),
		visits:   newVisits(),
		lending:  newLending(),
		accounts: newAccounts(),
		history:  history.New(),
	}
	return lib
}

// Clock returns the simulated clock (read-only use outside this package).
func (l *Library) Clock() *clock.Clock {
	return l.clock
}

// History returns the global undo/redo history.
func (l *Library) History() *history.History {
	return l.history
}

// Policy returns the active business-rule constants.
func (l *Library) Policy() Policy {
	return l.policy
}

// --------------------------------------------------------------------------
// Info Service Selection
// --------------------------------------------------------------------------

// SelectService switches the info service used by store searches.
func (l *Library) SelectService(name string) error {
	service, ok := l.services[name]
	if !ok {
		return ErrUnknownService
	}
	l.service = service
	return nil
}

// SearchStore queries the currently selected info service.
func (l *Library) SearchStore(q books.Query) ([]books.Record, error) {
	return l.service.Search(q)
}

// --------------------------------------------------------------------------
// Simulated Time
// --------------------------------------------------------------------------

// AdvanceClock moves the simulated clock forward, then settles the
// consequences: open visits at or past the closing boundary are
// force-closed (duration measured to the boundary, no responses emitted)
// and newly overdue loans are charged their late fee.
//
// The clock never moves backward, so advancing is deliberately not
// recorded in the undo history.
func (l *Library) AdvanceClock(days, hours int) {
	l.clock.Advance(days, hours)
	now := l.clock.Now()

	closing := clock.NewTime(l.policy.CloseHour, 0, 0)
	l.visits.ForceClose(now, closing)

	l.lending.ChargeOverdue(now, l.policy.LateFee)
}
