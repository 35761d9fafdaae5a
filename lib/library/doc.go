// Package library implements the domain state machine of the book
// management system: the store catalog and owned inventory, the visitor
// registry and visit ledger, the lending and fines engine, accounts, and
// the aggregate report.
//
// All state is owned by one Library value, with no package-level state.
// Every mutating operation returns, alongside its result, a
// history.Entry that can revert and re-apply exactly the side effects the
// operation had. Operations that merely read (searches, the report) return
// results computed fresh from live state.
//
// Invariants maintained by this package:
//   - 0 <= borrowed <= owned for every inventory entry
//   - at most one open visit per visitor
//   - at most Policy.LoanLimit concurrently open loans per visitor,
//     enforced all-or-nothing over a whole borrow batch
//   - fine balances never go negative and payments never exceed them
//
// Thread-safety: a Library is not synchronized on its own. The dispatcher
// serializes all access inside a single critical section.
package library
