package books

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/JoeyZhen/Library-BMS/lib/clock"
)

const defaultGoogleEndpoint = "https://www.googleapis.com/books/v1/volumes"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GoogleService is the remote info service backed by the Google Books API.
// Records are cached by ISBN so the same volume keeps the same display id
// across repeated searches.
//
// Thread-safety: the record cache uses concurrent maps; Search may be
// called from multiple goroutines.
type GoogleService struct {
	client   *http.Client
	endpoint string
	idByISBN *xsync.MapOf[string, uint64]
	byID     *xsync.MapOf[uint64, Record]
	nextID   atomic.Uint64
}

// NewGoogleService creates a google info service whose display ids start
// after firstID. Passing the local catalog size keeps the two id ranges
// disjoint.
func NewGoogleService(firstID uint64) *GoogleService {
	return NewGoogleServiceWith(http.DefaultClient, defaultGoogleEndpoint, firstID)
}

// NewGoogleServiceWith creates a google info service with an explicit HTTP
// client and endpoint. Used by tests to stub out the remote API.
func NewGoogleServiceWith(client *http.Client, endpoint string, firstID uint64) *GoogleService {
	s := &GoogleService{
		client:   client,
		endpoint: endpoint,
		idByISBN: xsync.NewMapOf[string, uint64](),
		byID:     xsync.NewMapOf[uint64, Record](),
	}
	s.nextID.Store(firstID)
	return s
}

// --------------------------------------------------------------------------
// Interface Methods (docu see service.go)
// --------------------------------------------------------------------------

func (s *GoogleService) Name() string {
	return ServiceGoogle
}

func (s *GoogleService) Search(q Query) ([]Record, error) {
	body, err := s.fetch(q)
	if err != nil {
		return nil, err
	}

	volumes, err := parseVolumes(body)
	if err != nil {
		return nil, err
	}

	var matches []Record
	for _, book := range volumes {
		if book.ISBN == "" || !q.Matches(book) {
			continue
		}
		matches = append(matches, s.intern(book))
	}

	if err := SortRecords(matches, q.Sort, func(Record) int { return 0 }); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *GoogleService) Lookup(id uint64) (Record, bool) {
	return s.byID.Load(id)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// intern returns the cached record for the book's ISBN, assigning the next
// display id on first sight.
func (s *GoogleService) intern(book Book) Record {
	id, _ := s.idByISBN.LoadOrCompute(book.ISBN, func() uint64 {
		return s.nextID.Add(1)
	})
	record, _ := s.byID.LoadOrCompute(id, func() Record {
		return Record{ID: id, Book: book}
	})
	return record
}

// fetch performs the API request for the query.
func (s *GoogleService) fetch(q Query) ([]byte, error) {
	var terms []string
	if !wild(q.Title) {
		terms = append(terms, "intitle:"+q.Title)
	}
	for _, a := range q.Authors {
		if !wild(a) {
			terms = append(terms, "inauthor:"+a)
		}
	}
	if !wild(q.ISBN) {
		terms = append(terms, "isbn:"+q.ISBN)
	}
	if !wild(q.Publisher) {
		terms = append(terms, "inpublisher:"+q.Publisher)
	}
	if len(terms) == 0 {
		terms = append(terms, "*")
	}

	reqURL := s.endpoint + "?q=" + url.QueryEscape(strings.Join(terms, "+"))
	resp, err := s.client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("info service request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("info service returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// --------------------------------------------------------------------------
// Response Decoding
// --------------------------------------------------------------------------

// volumesResponse mirrors the slice of the Google Books API response the
// service cares about.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Authors             []string `json:"authors"`
			Publisher           string   `json:"publisher"`
			PublishedDate       string   `json:"publishedDate"`
			PageCount           int      `json:"pageCount"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// parseVolumes decodes an API response into books. Volumes without an
// ISBN-13 identifier get an empty ISBN and are dropped by the caller.
func parseVolumes(body []byte) ([]Book, error) {
	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode info service response: %v", err)
	}

	books := make([]Book, 0, len(resp.Items))
	for _, item := range resp.Items {
		info := item.VolumeInfo

		isbn := ""
		for _, ident := range info.IndustryIdentifiers {
			if ident.Type == "ISBN_13" {
				isbn = ident.Identifier
				break
			}
		}

		books = append(books, Book{
			ISBN:      isbn,
			Title:     info.Title,
			Authors:   info.Authors,
			Publisher: info.Publisher,
			Published: parsePublishedDate(info.PublishedDate),
			PageCount: info.PageCount,
		})
	}
	return books, nil
}

// parsePublishedDate handles the "2006-01-02", "2006-01" and "2006" forms
// the API returns. Missing parts default to January the 1st.
func parsePublishedDate(s string) (d clock.Date) {
	year, month, day := 0, 1, 1
	parts := strings.SplitN(s, "-", 3)

	if len(parts) > 0 {
		fmt.Sscanf(parts[0], "%d", &year)
	}
	if len(parts) > 1 {
		fmt.Sscanf(parts[1], "%d", &month)
	}
	if len(parts) > 2 {
		fmt.Sscanf(parts[2], "%d", &day)
	}
	return clock.NewDate(year, month, day, 0, 0, 0)
}
