// Package session keeps short-lived per-session query history for intent
// classification context. Entries expire after a TTL and the store holds a
// bounded number of sessions, evicting the least recently used one when full.
package session

import (
	"sync"
	"time"
)

// historyDepth is how many recent queries a session retains.
const historyDepth = 5

type entry struct {
	queries  []string
	lastSeen time.Time
}

// Store is an in-memory session history store. Safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	ttl         time.Duration
	maxSessions int

	// now is swappable in tests.
	now func() time.Time
}

// NewStore creates a session store.
func NewStore(ttl time.Duration, maxSessions int) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	return &Store{
		sessions:    make(map[string]*entry),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Append records a query for the session, creating it if needed. Only the
// most recent queries are retained.
func (s *Store) Append(sessionID, query string) {
	if sessionID == "" || query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpiredLocked(now)

	e, ok := s.sessions[sessionID]
	if !ok {
		if len(s.sessions) >= s.maxSessions {
			s.evictOldestLocked()
		}
		e = &entry{}
		s.sessions[sessionID] = e
	}

	e.queries = append(e.queries, query)
	if len(e.queries) > historyDepth {
		e.queries = e.queries[len(e.queries)-historyDepth:]
	}
	e.lastSeen = now
}

// History returns the session's recent queries, oldest first. An unknown or
// expired session yields nil. Reading refreshes the TTL.
func (s *Store) History(sessionID string) []string {
	if sessionID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, sessionID)
		return nil
	}

	e.lastSeen = now
	out := make([]string, len(e.queries))
	copy(out, e.queries)
	return out
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) evictExpiredLocked(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID = id
			oldest = e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
