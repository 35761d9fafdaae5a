// Package history implements the global undo/redo engine.
//
// Every mutating command records itself as an Entry: a self-contained
// packet holding exactly the data needed to revert its side effects and to
// apply them again. Entries live in one strictly chronological history
// shared by all connections: undoing is a property of the system, not of
// the connection that issued the original request.
//
// The engine never recomputes state from snapshots: an arbitrarily long
// undo/redo chain only ever replays recorded inverses and forwards.
package history
