package books

// Known info service names.
const (
	ServiceLocal  = "local"
	ServiceGoogle = "google"
)

// Service is the uniform search contract every book-information provider
// presents: a query yields an ordered list of catalog-shaped records, and
// previously returned display ids stay resolvable so follow-up requests
// (e.g. a purchase) can reference them.
type Service interface {
	// Name returns the identifier used by the service selection command.
	Name() string
	// Search returns all records matching the query, sorted per the query.
	Search(q Query) ([]Record, error)
	// Lookup resolves a display id previously returned by Search.
	Lookup(id uint64) (Record, bool)
}
