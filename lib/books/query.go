package books

import (
	"fmt"
	"sort"
	"strings"
)

// Wildcard matches anything when used as a query field.
const Wildcard = "*"

// SortOrder selects the comparator applied to search results.
type SortOrder string

const (
	SortDefault     SortOrder = ""             // same as SortTitle
	SortTitle       SortOrder = "title"        // case-insensitive lexicographic
	SortPublishDate SortOrder = "publish-date" // most recent first
	SortBookStatus  SortOrder = "book-status"  // most copies available first
)

// ErrInvalidSortOrder is returned when a query names an unknown sort key.
var ErrInvalidSortOrder = fmt.Errorf("invalid sort order")

// Query describes one search over a catalog. Empty or "*" fields match
// anything; trailing fields may simply be omitted by the caller.
type Query struct {
	Title     string
	Authors   []string
	ISBN      string
	Publisher string
	Sort      SortOrder
}

// Matches reports whether a book satisfies every filter of the query:
// substring case-insensitive for title and publisher, set-membership for
// authors, exact match for ISBN.
func (q Query) Matches(b Book) bool {
	if !wild(q.Title) && !containsFold(b.Title, q.Title) {
		return false
	}
	if !wild(q.ISBN) && b.ISBN != q.ISBN {
		return false
	}
	if !wild(q.Publisher) && !containsFold(b.Publisher, q.Publisher) {
		return false
	}
	for _, want := range q.Authors {
		if wild(want) {
			continue
		}
		if !hasAuthor(b.Authors, want) {
			return false
		}
	}
	return true
}

// SortRecords orders search results in place. The available func supplies
// the copies-available count used by the book-status order; catalogs
// without a meaningful count pass a func returning zero. Ties keep the
// incoming (catalog) order, which is insertion order for every service.
func SortRecords(records []Record, order SortOrder, available func(Record) int) error {
	switch order {
	case SortDefault, SortTitle:
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Title) < strings.ToLower(records[j].Title)
		})
	case SortPublishDate:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Published.Timestamp() > records[j].Published.Timestamp()
		})
	case SortBookStatus:
		sort.SliceStable(records, func(i, j int) bool {
			return available(records[i]) > available(records[j])
		})
	default:
		return ErrInvalidSortOrder
	}
	return nil
}

func wild(s string) bool {
	return s == "" || s == Wildcard
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func hasAuthor(authors []string, want string) bool {
	for _, a := range authors {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
