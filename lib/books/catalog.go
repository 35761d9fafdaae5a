package books

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed books.txt
var defaultStoreData string

// Catalog is the built-in book store inventory: the ordered list of titles
// that can be purchased. Display ids are assigned by position in the data
// file, starting at 1, and never change for the lifetime of the process.
//
// Catalog implements the Service interface and acts as the "local" info
// service.
type Catalog struct {
	records []Record
	byID    map[uint64]Record
}

// NewCatalog loads the embedded store data file.
func NewCatalog() (*Catalog, error) {
	return NewCatalogFromData(defaultStoreData)
}

// NewCatalogFromData parses store data and assigns display ids by line
// position. Blank lines and lines starting with '#' are skipped.
func NewCatalogFromData(data string) (*Catalog, error) {
	c := &Catalog{byID: make(map[uint64]Record)}

	for lineNo, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		book, err := parseBookLine(line)
		if err != nil {
			return nil, fmt.Errorf("store data line %d: %v", lineNo+1, err)
		}

		record := Record{ID: uint64(len(c.records) + 1), Book: book}
		c.records = append(c.records, record)
		c.byID[record.ID] = record
	}

	return c, nil
}

// Size returns the number of titles in the store.
func (c *Catalog) Size() int {
	return len(c.records)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see service.go)
// --------------------------------------------------------------------------

func (c *Catalog) Name() string {
	return ServiceLocal
}

func (c *Catalog) Search(q Query) ([]Record, error) {
	var matches []Record
	for _, r := range c.records {
		if q.Matches(r.Book) {
			matches = append(matches, r)
		}
	}

	// The store has unlimited stock, so book-status degrades to catalog order.
	if err := SortRecords(matches, q.Sort, func(Record) int { return 0 }); err != nil {
		return nil, err
	}
	return matches, nil
}

func (c *Catalog) Lookup(id uint64) (Record, bool) {
	r, ok := c.byID[id]
	return r, ok
}
