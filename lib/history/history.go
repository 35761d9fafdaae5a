package history

import "errors"

// Sentinel errors reported to clients as cannot-undo / cannot-redo.
var (
	ErrCannotUndo = errors.New("cannot-undo")
	ErrCannotRedo = errors.New("cannot-redo")
)

// Entry is one recorded mutation. Apply replays the forward effect (used
// by redo), Revert replays the precomputed inverse (used by undo). Both
// must be exact: applying then reverting leaves the domain state
// observably unchanged.
type Entry interface {
	Apply()
	Revert()
}

// Funcs adapts a pair of closures to the Entry interface. Commands capture
// the data needed for both directions before mutating, so the closures are
// self-contained.
type Funcs struct {
	Do   func()
	Undo func()
}

func (f Funcs) Apply()  { f.Do() }
func (f Funcs) Revert() { f.Undo() }

// History is the single global, time-ordered record of mutating commands:
// a done stack and a redo stack.
//
// Thread-safety: History is not synchronized on its own. All access
// happens inside the dispatcher's critical section, which also guarantees
// the strict chronological order of entries.
type History struct {
	done   []Entry
	undone []Entry
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Commit records a freshly executed mutation. Any pending redo chain
// becomes unreachable once a new mutation occurs, so the redo stack is
// cleared.
func (h *History) Commit(e Entry) {
	h.done = append(h.done, e)
	h.undone = h.undone[:0]
}

// Undo reverts the most recent mutation and moves it to the redo stack.
func (h *History) Undo() error {
	if len(h.done) == 0 {
		return ErrCannotUndo
	}

	e := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	e.Revert()
	h.undone = append(h.undone, e)
	return nil
}

// Redo re-applies the most recently undone mutation and moves it back to
// the done stack.
func (h *History) Redo() error {
	if len(h.undone) == 0 {
		return ErrCannotRedo
	}

	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	e.Apply()
	h.done = append(h.done, e)
	return nil
}

// Len returns the number of undoable entries.
func (h *History) Len() int {
	return len(h.done)
}
