package dispatch

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/JoeyZhen/Library-BMS/lib/library"
)

// Session is one connected client. Account is nil until a successful
// login and reset on logout.
//
// Thread-safety: the session map is concurrent, but sessions themselves
// are only touched inside the dispatcher's critical section.
type Session struct {
	ID      uint64
	Account *library.Account
}

// visitorID resolves the visitor a command should act on: the explicit
// argument when given, otherwise the visitor linked to the logged-in
// account. Commands treat "" as unknown.
func (s *Session) visitorID(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if s.Account != nil {
		return s.Account.VisitorID
	}
	return ""
}

// Sessions is the registry of connected clients.
type Sessions struct {
	byID *xsync.MapOf[uint64, *Session]
}

func newSessions() *Sessions {
	return &Sessions{byID: xsync.NewMapOf[uint64, *Session]()}
}

// Connect registers a new session under the smallest unused client id.
// Ids freed by Disconnect are reused.
func (s *Sessions) Connect() *Session {
	for id := uint64(1); ; id++ {
		session := &Session{ID: id}
		if _, loaded := s.byID.LoadOrStore(id, session); !loaded {
			return session
		}
	}
}

// Get returns the session for a client id.
func (s *Sessions) Get(id uint64) (*Session, bool) {
	return s.byID.Load(id)
}

// Disconnect removes the session and frees its id for reuse.
func (s *Sessions) Disconnect(id uint64) bool {
	_, loaded := s.byID.LoadAndDelete(id)
	return loaded
}
