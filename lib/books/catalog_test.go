package books

import (
	"errors"
	"strings"
	"testing"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return c
}

func TestCatalogParsing(t *testing.T) {
	c := loadTestCatalog(t)

	t.Run("ids are assigned by position", func(t *testing.T) {
		if c.Size() != 20 {
			t.Fatalf("expected 20 titles, got %d", c.Size())
		}
		first, ok := c.Lookup(1)
		if !ok {
			t.Fatal("expected id 1 to resolve")
		}
		if first.Title != "The Complete Book of Running" {
			t.Errorf("unexpected first title %q", first.Title)
		}
		if _, ok := c.Lookup(21); ok {
			t.Error("expected id 21 to be unknown")
		}
	})

	t.Run("quoted titles keep their commas", func(t *testing.T) {
		c, err := NewCatalogFromData(`123,"One, Two",{A},Pub,2000/01/01,10`)
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		r, _ := c.Lookup(1)
		if r.Title != "One, Two" {
			t.Errorf("expected title %q, got %q", "One, Two", r.Title)
		}
	})

	t.Run("comments and blank lines are skipped", func(t *testing.T) {
		c, err := NewCatalogFromData("# header\n\n123,\"T\",{A},Pub,2000/01/01,10\n")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		if c.Size() != 1 {
			t.Errorf("expected 1 title, got %d", c.Size())
		}
	})

	t.Run("malformed line", func(t *testing.T) {
		if _, err := NewCatalogFromData("just,three,fields"); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestCatalogSearch(t *testing.T) {
	c := loadTestCatalog(t)

	t.Run("title substring is case-insensitive", func(t *testing.T) {
		results, err := c.Search(Query{Title: "hunger games"})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("expected 2 hunger games titles, got %d", len(results))
		}
	})

	t.Run("author spelling is exact", func(t *testing.T) {
		spaced, err := c.Search(Query{Title: Wildcard, Authors: []string{"J. K. Rowling"}})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		compact, err := c.Search(Query{Title: Wildcard, Authors: []string{"J.K. Rowling"}})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(spaced) != 2 || len(compact) != 3 {
			t.Errorf("expected 2 spaced and 3 compact matches, got %d and %d",
				len(spaced), len(compact))
		}
	})

	t.Run("every listed author must match", func(t *testing.T) {
		results, err := c.Search(Query{
			Title:   Wildcard,
			Authors: []string{"J.K. Rowling", "John Tiffany"},
		})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(results) != 1 || results[0].ID != 16 {
			t.Errorf("expected only the cursed child (id 16), got %v", results)
		}
	})

	t.Run("isbn is exact", func(t *testing.T) {
		results, err := c.Search(Query{Title: Wildcard, ISBN: "9780439023481"})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(results) != 1 || results[0].Title != "The Hunger Games" {
			t.Errorf("expected exactly the hunger games, got %v", results)
		}
	})

	t.Run("default sort is title ascending", func(t *testing.T) {
		results, err := c.Search(Query{Title: "Running"})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		for i := 1; i < len(results); i++ {
			if strings.ToLower(results[i-1].Title) > strings.ToLower(results[i].Title) {
				t.Errorf("titles out of order: %q before %q", results[i-1].Title, results[i].Title)
			}
		}
	})

	t.Run("publish date sorts most recent first", func(t *testing.T) {
		results, err := c.Search(Query{Title: "Hunger Games", Sort: SortPublishDate})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if results[0].Title != "The Hunger Games Trilogy" {
			t.Errorf("expected the 2011 trilogy first, got %q", results[0].Title)
		}
	})

	t.Run("unknown sort order", func(t *testing.T) {
		if _, err := c.Search(Query{Title: Wildcard, Sort: "page-count"}); !errors.Is(err, ErrInvalidSortOrder) {
			t.Errorf("expected ErrInvalidSortOrder, got %v", err)
		}
	})
}

func TestFormatAuthors(t *testing.T) {
	b := Book{Authors: []string{"A. One", "B. Two"}}
	if got := b.FormatAuthors(); got != "{A. One, B. Two}" {
		t.Errorf("expected {A. One, B. Two}, got %q", got)
	}
}
