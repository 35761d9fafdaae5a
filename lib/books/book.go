package books

import (
	"fmt"
	"strings"

	"github.com/JoeyZhen/Library-BMS/lib/clock"
)

// Book holds the catalog data describing one title.
type Book struct {
	ISBN      string
	Title     string
	Authors   []string
	Publisher string
	Published clock.Date
	PageCount int
}

// Record is a book together with the display id a service assigned to it.
// Display ids are what requests reference when buying or searching.
type Record struct {
	ID uint64
	Book
}

// FormatAuthors renders the author list as "{a, b, c}".
func (b Book) FormatAuthors() string {
	return "{" + strings.Join(b.Authors, ", ") + "}"
}

// --------------------------------------------------------------------------
// Data File Parsing
// --------------------------------------------------------------------------

// parseBookLine parses one line of the store data file. The format is
//
//	isbn,"title",{author, author},publisher,YYYY/MM/DD,pages
//
// Titles are quoted because they may contain commas.
func parseBookLine(line string) (Book, error) {
	fields := splitFields(line)
	if len(fields) != 6 {
		return Book{}, fmt.Errorf("expected 6 fields, got %d: %q", len(fields), line)
	}

	published, err := parseDate(fields[4])
	if err != nil {
		return Book{}, fmt.Errorf("bad publish date %q: %v", fields[4], err)
	}

	pages := 0
	if _, err := fmt.Sscanf(fields[5], "%d", &pages); err != nil {
		return Book{}, fmt.Errorf("bad page count %q", fields[5])
	}

	return Book{
		ISBN:      fields[0],
		Title:     unquote(fields[1]),
		Authors:   splitAuthors(fields[2]),
		Publisher: fields[3],
		Published: published,
		PageCount: pages,
	}, nil
}

// splitFields splits a data line on commas, treating quoted strings and
// brace groups as single fields.
func splitFields(line string) []string {
	var fields []string
	var sb strings.Builder
	inQuotes := false
	depth := 0

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			sb.WriteRune(r)
		case r == '{' && !inQuotes:
			depth++
			sb.WriteRune(r)
		case r == '}' && !inQuotes:
			depth--
			sb.WriteRune(r)
		case r == ',' && !inQuotes && depth == 0:
			fields = append(fields, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	fields = append(fields, sb.String())
	return fields
}

// splitAuthors parses "{a, b}" into its trimmed author names.
func splitAuthors(field string) []string {
	field = strings.TrimPrefix(field, "{")
	field = strings.TrimSuffix(field, "}")

	var authors []string
	for _, a := range strings.Split(field, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

// parseDate parses "YYYY/MM/DD" into a date value.
func parseDate(s string) (clock.Date, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &year, &month, &day); err != nil {
		return clock.Date{}, err
	}
	return clock.NewDate(year, month, day, 0, 0, 0), nil
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "\""), "\"")
}
