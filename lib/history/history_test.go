package history

import "testing"

// counterEntry increments a counter forward and decrements it backward.
func counterEntry(c *int, delta int) Entry {
	return Funcs{
		Do:   func() { *c += delta },
		Undo: func() { *c -= delta },
	}
}

func TestEmptyHistory(t *testing.T) {
	h := New()

	if err := h.Undo(); err != ErrCannotUndo {
		t.Errorf("Undo() on empty history = %v, want ErrCannotUndo", err)
	}
	if err := h.Redo(); err != ErrCannotRedo {
		t.Errorf("Redo() on empty history = %v, want ErrCannotRedo", err)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New()
	counter := 0

	// Three mutations, applied directly and committed.
	for _, delta := range []int{1, 10, 100} {
		counter += delta
		h.Commit(counterEntry(&counter, delta))
	}
	if counter != 111 {
		t.Fatalf("counter = %d after commits", counter)
	}

	// Undo until empty, then redo until empty: exact round trip.
	for i := 0; i < 3; i++ {
		if err := h.Undo(); err != nil {
			t.Fatalf("Undo() #%d failed: %v", i, err)
		}
	}
	if counter != 0 {
		t.Errorf("counter = %d after full undo, want 0", counter)
	}
	if err := h.Undo(); err != ErrCannotUndo {
		t.Errorf("Undo() past the bottom = %v, want ErrCannotUndo", err)
	}

	for i := 0; i < 3; i++ {
		if err := h.Redo(); err != nil {
			t.Fatalf("Redo() #%d failed: %v", i, err)
		}
	}
	if counter != 111 {
		t.Errorf("counter = %d after full redo, want 111", counter)
	}
	if err := h.Redo(); err != ErrCannotRedo {
		t.Errorf("Redo() past the top = %v, want ErrCannotRedo", err)
	}
}

func TestCommitClearsRedoStack(t *testing.T) {
	h := New()
	counter := 0

	counter += 1
	h.Commit(counterEntry(&counter, 1))
	counter += 10
	h.Commit(counterEntry(&counter, 10))

	if err := h.Undo(); err != nil {
		t.Fatalf("Undo() failed: %v", err)
	}
	if counter != 1 {
		t.Fatalf("counter = %d after undo", counter)
	}

	// A new mutation makes the undone entry unreachable.
	counter += 100
	h.Commit(counterEntry(&counter, 100))

	if err := h.Redo(); err != ErrCannotRedo {
		t.Errorf("Redo() after a new commit = %v, want ErrCannotRedo", err)
	}
	if counter != 101 {
		t.Errorf("counter = %d, want 101", counter)
	}
}

func TestUndoOrderIsLIFO(t *testing.T) {
	h := New()
	var order []string

	for _, name := range []string{"a", "b", "c"} {
		name := name
		h.Commit(Funcs{
			Do:   func() {},
			Undo: func() { order = append(order, name) },
		})
	}

	for h.Len() > 0 {
		if err := h.Undo(); err != nil {
			t.Fatalf("Undo() failed: %v", err)
		}
	}

	if got := order[0] + order[1] + order[2]; got != "cba" {
		t.Errorf("undo order = %q, want cba", got)
	}
}
