package library

import (
	"errors"
	"testing"

	"github.com/JoeyZhen/Library-BMS/lib/books"
)

// newTestLibrary creates a library on the embedded store catalog and
// fails the test if loading it does not work.
func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := New(DefaultPolicy())
	if err != nil {
		t.Fatalf("failed to create library: %v", err)
	}
	return lib
}

// registerTestVisitor registers a visitor and returns the issued id.
func registerTestVisitor(t *testing.T, lib *Library, first string) string {
	t.Helper()
	v, _, err := lib.RegisterVisitor(first, "Tester", "10 Test Street", "5550100")
	if err != nil {
		t.Fatalf("failed to register visitor: %v", err)
	}
	return v.ID
}

// stockShelf buys the given quantity of store ids so borrow tests have
// something on the shelf.
func stockShelf(t *testing.T, lib *Library, quantity int, ids ...uint64) {
	t.Helper()
	if _, _, err := lib.Buy(quantity, ids); err != nil {
		t.Fatalf("failed to stock shelf: %v", err)
	}
}

func TestRegisterVisitor(t *testing.T) {
	lib := newTestLibrary(t)

	t.Run("sequential ids", func(t *testing.T) {
		a := registerTestVisitor(t, lib, "Alice")
		b := registerTestVisitor(t, lib, "Bob")
		if a != "0000000001" || b != "0000000002" {
			t.Errorf("expected ids 0000000001 and 0000000002, got %s and %s", a, b)
		}
	})

	t.Run("duplicate identity", func(t *testing.T) {
		if _, _, err := lib.RegisterVisitor("Alice", "Tester", "10 Test Street", "5550100"); !errors.Is(err, ErrDuplicateVisitor) {
			t.Errorf("expected ErrDuplicateVisitor, got %v", err)
		}
	})

	t.Run("undo frees the id", func(t *testing.T) {
		v, entry, err := lib.RegisterVisitor("Carol", "Tester", "10 Test Street", "5550100")
		if err != nil {
			t.Fatalf("failed to register visitor: %v", err)
		}
		entry.Revert()
		if _, ok := lib.Visitor(v.ID); ok {
			t.Errorf("visitor %s still registered after undo", v.ID)
		}
		if id := registerTestVisitor(t, lib, "Dave"); id != v.ID {
			t.Errorf("expected reissued id %s, got %s", v.ID, id)
		}
	})
}

func TestVisits(t *testing.T) {
	lib := newTestLibrary(t)
	id := registerTestVisitor(t, lib, "Alice")

	t.Run("arrive and depart", func(t *testing.T) {
		if _, _, err := lib.BeginVisit(id); err != nil {
			t.Fatalf("failed to begin visit: %v", err)
		}
		if _, _, err := lib.BeginVisit(id); !errors.Is(err, ErrOpenVisit) {
			t.Errorf("expected ErrOpenVisit on second arrival, got %v", err)
		}
		lib.AdvanceClock(0, 2)
		visit, _, err := lib.EndVisit(id)
		if err != nil {
			t.Fatalf("failed to end visit: %v", err)
		}
		if got := visit.Duration(); got != 2*3600 {
			t.Errorf("expected a 2 hour visit, got %d seconds", got)
		}
	})

	t.Run("unknown visitor", func(t *testing.T) {
		if _, _, err := lib.BeginVisit("0000009999"); !errors.Is(err, ErrUnknownVisitor) {
			t.Errorf("expected ErrUnknownVisitor, got %v", err)
		}
	})

	t.Run("no open visit", func(t *testing.T) {
		if _, _, err := lib.EndVisit(id); !errors.Is(err, ErrNoOpenVisit) {
			t.Errorf("expected ErrNoOpenVisit, got %v", err)
		}
	})

	t.Run("closed outside opening hours", func(t *testing.T) {
		lib.AdvanceClock(0, 10) // clock is now at 20:00
		if _, _, err := lib.BeginVisit(id); !errors.Is(err, ErrLibraryClosed) {
			t.Errorf("expected ErrLibraryClosed at closing time, got %v", err)
		}
	})

	t.Run("force close at closing time", func(t *testing.T) {
		lib.AdvanceClock(1, -10) // now 10:00 the next day
		if _, _, err := lib.BeginVisit(id); err != nil {
			t.Fatalf("failed to begin visit: %v", err)
		}
		lib.AdvanceClock(1, 0)
		if _, _, err := lib.EndVisit(id); !errors.Is(err, ErrNoOpenVisit) {
			t.Errorf("expected the visit force-closed by the day rollover, got %v", err)
		}
		count, seconds := lib.visits.CompletedStats(nil)
		if count != 2 {
			t.Fatalf("expected 2 completed visits, got %d", count)
		}
		// 2 hours from the first visit plus 10:00 to closing time.
		if want := 2*3600 + 10*3600; seconds != want {
			t.Errorf("expected %d total visit seconds, got %d", want, seconds)
		}
	})
}

func TestBuy(t *testing.T) {
	lib := newTestLibrary(t)

	t.Run("first occurrence order with duplicates", func(t *testing.T) {
		lines, _, err := lib.Buy(2, []uint64{9, 2, 9})
		if err != nil {
			t.Fatalf("failed to buy: %v", err)
		}
		if len(lines) != 2 {
			t.Fatalf("expected 2 purchase lines, got %d", len(lines))
		}
		if lines[0].ID != 9 || lines[1].ID != 2 {
			t.Errorf("expected line order 9,2, got %d,%d", lines[0].ID, lines[1].ID)
		}
		if lines[0].Added != 4 || lines[1].Added != 2 {
			t.Errorf("expected 4 and 2 copies added, got %d and %d", lines[0].Added, lines[1].Added)
		}
		if got := lib.shelf.TotalOwned(); got != 6 {
			t.Errorf("expected 6 copies owned, got %d", got)
		}
	})

	t.Run("nothing changes on an unknown id", func(t *testing.T) {
		if _, _, err := lib.Buy(1, []uint64{2, 9999}); !errors.Is(err, ErrUnknownBook) {
			t.Fatalf("expected ErrUnknownBook, got %v", err)
		}
		if got := lib.shelf.TotalOwned(); got != 6 {
			t.Errorf("expected shelf untouched at 6 copies, got %d", got)
		}
	})

	t.Run("undo removes books added by the purchase", func(t *testing.T) {
		_, entry, err := lib.Buy(1, []uint64{3})
		if err != nil {
			t.Fatalf("failed to buy: %v", err)
		}
		entry.Revert()
		if _, ok := lib.shelf.Get(3); ok {
			t.Errorf("book 3 still on the shelf after undo")
		}
		if got := lib.shelf.TotalOwned(); got != 6 {
			t.Errorf("expected 6 copies owned after undo, got %d", got)
		}
	})
}

func TestBorrow(t *testing.T) {
	lib := newTestLibrary(t)
	id := registerTestVisitor(t, lib, "Alice")
	stockShelf(t, lib, 2, 9, 10)

	t.Run("due date is a loan period out", func(t *testing.T) {
		due, _, err := lib.Borrow(id, []uint64{9})
		if err != nil {
			t.Fatalf("failed to borrow: %v", err)
		}
		if got := due.FormatDate(); got != "2019/01/08" {
			t.Errorf("expected due date 2019/01/08, got %s", got)
		}
	})

	t.Run("loan limit", func(t *testing.T) {
		if _, _, err := lib.Borrow(id, []uint64{9, 10, 10, 9, 10}); !errors.Is(err, ErrBookLimit) {
			t.Errorf("expected ErrBookLimit over 5 open loans, got %v", err)
		}
	})

	t.Run("insufficient availability", func(t *testing.T) {
		if _, _, err := lib.Borrow(id, []uint64{9, 9}); !errors.Is(err, ErrBookLimit) {
			t.Errorf("expected ErrBookLimit for more copies than available, got %v", err)
		}
	})

	t.Run("all or nothing", func(t *testing.T) {
		if _, _, err := lib.Borrow(id, []uint64{10, 9999}); !errors.Is(err, ErrUnknownBook) {
			t.Fatalf("expected ErrUnknownBook, got %v", err)
		}
		if got := len(lib.Loans(id)); got != 1 {
			t.Errorf("expected the failed batch to leave 1 open loan, got %d", got)
		}
	})

	t.Run("undo frees the copies", func(t *testing.T) {
		_, entry, err := lib.Borrow(id, []uint64{10})
		if err != nil {
			t.Fatalf("failed to borrow: %v", err)
		}
		entry.Revert()
		owned, _ := lib.shelf.Get(10)
		if owned.Borrowed != 0 {
			t.Errorf("expected no copies of 10 out after undo, got %d", owned.Borrowed)
		}
	})
}

func TestReturnAndFines(t *testing.T) {
	lib := newTestLibrary(t)
	id := registerTestVisitor(t, lib, "Alice")
	stockShelf(t, lib, 3, 9, 10)
	if _, _, err := lib.Borrow(id, []uint64{9, 9, 10}); err != nil {
		t.Fatalf("failed to borrow: %v", err)
	}

	t.Run("partial match reports the invalid id", func(t *testing.T) {
		result, _, err := lib.Return(id, []uint64{9, 11})
		if err != nil {
			t.Fatalf("failed to return: %v", err)
		}
		if !result.Invalid || result.InvalidID != 11 {
			t.Fatalf("expected invalid id 11, got %+v", result)
		}
		if result.Applied != 1 {
			t.Errorf("expected 1 copy returned before the invalid id, got %d", result.Applied)
		}
		if got := len(lib.Loans(id)); got != 2 {
			t.Errorf("expected 2 open loans left, got %d", got)
		}
	})

	t.Run("advancing past the due date charges the fee", func(t *testing.T) {
		lib.AdvanceClock(7, 1)
		if got := lib.lending.Balance(id); got != 20 {
			t.Errorf("expected a balance of 20 for 2 overdue copies, got %d", got)
		}
		lib.AdvanceClock(1, 0)
		if got := lib.lending.Balance(id); got != 20 {
			t.Errorf("expected the fee charged only once, got balance %d", got)
		}
	})

	t.Run("fine limit blocks borrowing", func(t *testing.T) {
		var fineErr *OutstandingFineError
		_, _, err := lib.Borrow(id, []uint64{10})
		if !errors.As(err, &fineErr) {
			t.Fatalf("expected OutstandingFineError, got %v", err)
		}
		if fineErr.Balance != 20 {
			t.Errorf("expected reported balance 20, got %d", fineErr.Balance)
		}
	})

	t.Run("overdue copies are reported on return", func(t *testing.T) {
		result, _, err := lib.Return(id, []uint64{9, 10})
		if err != nil {
			t.Fatalf("failed to return: %v", err)
		}
		if result.OverdueFee != 20 {
			t.Errorf("expected an overdue fee of 20, got %d", result.OverdueFee)
		}
		if len(result.OverdueIDs) != 2 {
			t.Errorf("expected 2 overdue ids, got %v", result.OverdueIDs)
		}
	})

	t.Run("pay and undo", func(t *testing.T) {
		balance, entry, err := lib.Pay(id, 15)
		if err != nil {
			t.Fatalf("failed to pay: %v", err)
		}
		if balance != 5 {
			t.Errorf("expected a balance of 5 after paying 15, got %d", balance)
		}
		if got := lib.lending.Collected(); got != 15 {
			t.Errorf("expected 15 collected, got %d", got)
		}
		entry.Revert()
		if got := lib.lending.Balance(id); got != 20 {
			t.Errorf("expected the balance restored to 20, got %d", got)
		}
		if got := lib.lending.Collected(); got != 0 {
			t.Errorf("expected nothing collected after undo, got %d", got)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		var amountErr *InvalidAmountError
		if _, _, err := lib.Pay(id, 100); !errors.As(err, &amountErr) {
			t.Fatalf("expected InvalidAmountError, got %v", err)
		}
		if amountErr.Attempted != 100 || amountErr.Balance != 20 {
			t.Errorf("expected attempted 100 against balance 20, got %+v", amountErr)
		}
	})
}

func TestCreateAccount(t *testing.T) {
	lib := newTestLibrary(t)
	id := registerTestVisitor(t, lib, "Alice")

	t.Run("preset root account", func(t *testing.T) {
		acct, ok := lib.Authenticate("root", "password")
		if !ok {
			t.Fatal("expected the preset root login to authenticate")
		}
		if !acct.IsEmployee() {
			t.Error("expected root to be an employee")
		}
	})

	t.Run("create and authenticate", func(t *testing.T) {
		if _, err := lib.CreateAccount("alice", "secret", RoleVisitor, id); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		if _, ok := lib.Authenticate("alice", "secret"); !ok {
			t.Error("expected the new account to authenticate")
		}
		if _, ok := lib.Authenticate("alice", "wrong"); ok {
			t.Error("expected a wrong password to fail")
		}
	})

	t.Run("validation", func(t *testing.T) {
		if _, err := lib.CreateAccount("alice", "x", RoleVisitor, id); !errors.Is(err, ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername, got %v", err)
		}
		if _, err := lib.CreateAccount("alice2", "x", RoleVisitor, id); !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("expected ErrDuplicateAccount, got %v", err)
		}
		if _, err := lib.CreateAccount("bob", "x", "admin", id); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("expected ErrInvalidRole, got %v", err)
		}
		if _, err := lib.CreateAccount("bob", "x", RoleVisitor, "0000009999"); !errors.Is(err, ErrUnknownVisitor) {
			t.Errorf("expected ErrUnknownVisitor, got %v", err)
		}
	})

	t.Run("undo removes the account", func(t *testing.T) {
		id2 := registerTestVisitor(t, lib, "Bob")
		entry, err := lib.CreateAccount("bob", "secret", RoleEmployee, id2)
		if err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		entry.Revert()
		if _, ok := lib.Authenticate("bob", "secret"); ok {
			t.Error("expected the account gone after undo")
		}
	})
}

func TestReport(t *testing.T) {
	lib := newTestLibrary(t)
	id := registerTestVisitor(t, lib, "Alice")
	stockShelf(t, lib, 2, 9)

	if _, _, err := lib.BeginVisit(id); err != nil {
		t.Fatalf("failed to begin visit: %v", err)
	}
	lib.AdvanceClock(0, 1)
	if _, _, err := lib.EndVisit(id); err != nil {
		t.Fatalf("failed to end visit: %v", err)
	}
	if _, _, err := lib.Borrow(id, []uint64{9}); err != nil {
		t.Fatalf("failed to borrow: %v", err)
	}
	lib.AdvanceClock(8, 0)
	if _, _, err := lib.Pay(id, 5); err != nil {
		t.Fatalf("failed to pay: %v", err)
	}

	t.Run("all time", func(t *testing.T) {
		report := lib.GenerateReport(0)
		if report.Books != 2 {
			t.Errorf("expected 2 books, got %d", report.Books)
		}
		if report.Visitors != 1 {
			t.Errorf("expected 1 visitor, got %d", report.Visitors)
		}
		if got := report.AverageVisit.Format(); got != "01:00:00" {
			t.Errorf("expected an average visit of 01:00:00, got %s", got)
		}
		if report.BooksPurchased != 2 {
			t.Errorf("expected 2 books purchased, got %d", report.BooksPurchased)
		}
		if report.FinesCollected != 5 || report.FinesOutstanding != 5 {
			t.Errorf("expected fines 5 collected and 5 outstanding, got %d and %d",
				report.FinesCollected, report.FinesOutstanding)
		}
	})

	t.Run("windowed", func(t *testing.T) {
		report := lib.GenerateReport(7)
		if report.BooksPurchased != 0 {
			t.Errorf("expected no purchases inside the window, got %d", report.BooksPurchased)
		}
		if got := report.AverageVisit.Format(); got != "00:00:00" {
			t.Errorf("expected no visits inside the window, got average %s", got)
		}
		// Head counts and fines are always all time.
		if report.Books != 2 || report.Visitors != 1 {
			t.Errorf("expected global counts unchanged, got %d books and %d visitors",
				report.Books, report.Visitors)
		}
	})

	t.Run("format", func(t *testing.T) {
		report := Report{
			Date:             lib.Clock().Now(),
			Books:            2,
			Visitors:         1,
			BooksPurchased:   2,
			FinesCollected:   5,
			FinesOutstanding: 5,
		}
		want := "2019/01/09,\n" +
			" Number of Books: 2\n" +
			" Number of Visitors: 1\n" +
			" Average Length of Visit: 00:00:00\n" +
			" Number of Books Purchased: 2\n" +
			" Fines Collected: 5\n" +
			" Fines Outstanding: 5\n"
		if got := report.Format(); got != want {
			t.Errorf("unexpected report body:\n%q\nwant:\n%q", got, want)
		}
	})
}

func TestSearchShelf(t *testing.T) {
	lib := newTestLibrary(t)
	stockShelf(t, lib, 1, 9, 10, 11)
	id := registerTestVisitor(t, lib, "Alice")
	if _, _, err := lib.Borrow(id, []uint64{10}); err != nil {
		t.Fatalf("failed to borrow: %v", err)
	}

	t.Run("wildcard title", func(t *testing.T) {
		results, err := lib.SearchShelf(books.Query{Title: books.Wildcard})
		if err != nil {
			t.Fatalf("failed to search shelf: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected 3 shelf entries, got %d", len(results))
		}
	})

	t.Run("book status sorts available copies first", func(t *testing.T) {
		results, err := lib.SearchShelf(books.Query{Title: books.Wildcard, Sort: books.SortBookStatus})
		if err != nil {
			t.Fatalf("failed to search shelf: %v", err)
		}
		if last := results[len(results)-1]; last.ID != 10 {
			t.Errorf("expected the borrowed book 10 last, got %d", last.ID)
		}
	})
}
