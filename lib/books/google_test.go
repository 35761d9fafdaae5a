package books

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const volumesFixture = `{
	"items": [
		{"volumeInfo": {
			"title": "Go in Practice",
			"authors": ["Matt Butcher", "Matt Farina"],
			"publisher": "Manning",
			"publishedDate": "2016-09-01",
			"pageCount": 312,
			"industryIdentifiers": [
				{"type": "ISBN_10", "identifier": "1633430073"},
				{"type": "ISBN_13", "identifier": "9781633430075"}
			]
		}},
		{"volumeInfo": {
			"title": "No Identifier",
			"authors": ["Nobody"],
			"publishedDate": "2016"
		}}
	]
}`

func newStubService(t *testing.T) (*GoogleService, *[]string) {
	t.Helper()
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		w.Write([]byte(volumesFixture))
	}))
	t.Cleanup(server.Close)
	return NewGoogleServiceWith(server.Client(), server.URL, 500), &queries
}

func TestGoogleSearch(t *testing.T) {
	svc, queries := newStubService(t)

	t.Run("builds the query terms", func(t *testing.T) {
		_, err := svc.Search(Query{Title: "Go in Practice", Authors: []string{"Matt Butcher"}})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		want := "intitle:Go in Practice+inauthor:Matt Butcher"
		if got := (*queries)[len(*queries)-1]; got != want {
			t.Errorf("expected query %q, got %q", want, got)
		}
	})

	t.Run("drops volumes without an isbn-13", func(t *testing.T) {
		results, err := svc.Search(Query{Title: Wildcard})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if len(results) != 1 || results[0].ISBN != "9781633430075" {
			t.Fatalf("expected only the identified volume, got %v", results)
		}
		if got := results[0].Published.FormatDate(); got != "2016/09/01" {
			t.Errorf("expected publish date 2016/09/01, got %s", got)
		}
	})

	t.Run("ids are stable across searches", func(t *testing.T) {
		first, err := svc.Search(Query{Title: Wildcard})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		second, err := svc.Search(Query{Title: "Go"})
		if err != nil {
			t.Fatalf("failed to search: %v", err)
		}
		if first[0].ID != second[0].ID {
			t.Errorf("expected a stable id, got %d then %d", first[0].ID, second[0].ID)
		}
		if record, ok := svc.Lookup(first[0].ID); !ok || record.Title != "Go in Practice" {
			t.Errorf("expected Lookup to resolve the cached record, got %v %v", record, ok)
		}
	})
}

func TestGoogleErrorHandling(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		svc := NewGoogleServiceWith(server.Client(), server.URL, 500)
		if _, err := svc.Search(Query{Title: "x"}); err == nil {
			t.Error("expected an error for a rate limited response")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		svc := NewGoogleServiceWith(server.Client(), server.URL, 500)
		if _, err := svc.Search(Query{Title: "x"}); err == nil {
			t.Error("expected an error for a malformed response body")
		}
	})
}
