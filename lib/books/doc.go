// Package books provides the book record model, the purchasable store
// catalog, and the pluggable info services used to search for books.
//
// The package focuses on:
//   - Book and Record: the catalog-shaped data every info service returns
//   - Catalog: the built-in store inventory loaded from an embedded data
//     file, with stable display ids assigned by file position
//   - Query: filter and sort semantics shared by the store search and the
//     library's own info search ('*' wildcards, substring title matching,
//     author set-membership, exact ISBN)
//
// Info Services:
//
// A Service answers queries with an ordered list of catalog-shaped records.
// The built-in Catalog is the "local" service; the "google" service queries
// the Google Books API over HTTP and caches records so repeated searches
// return stable display ids. The rest of the system depends only on the
// Service interface, so further providers can be added without touching the
// dispatcher.
package books
