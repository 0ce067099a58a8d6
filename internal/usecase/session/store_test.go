package session

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func newTestStore(ttl time.Duration, maxSessions int) (*Store, *time.Time) {
	s := NewStore(ttl, maxSessions)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestAppendAndHistory(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)

	s.Append("sess-1", "funny movies")
	s.Append("sess-1", "with tom hanks")

	got := s.History("sess-1")
	want := []string{"funny movies", "with tom hanks"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHistory_UnknownSession(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)

	if got := s.History("nope"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestHistoryDepthBounded(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)

	for i := 0; i < historyDepth+3; i++ {
		s.Append("sess-1", fmt.Sprintf("query %d", i))
	}

	got := s.History("sess-1")
	if len(got) != historyDepth {
		t.Fatalf("expected %d entries, got %d", historyDepth, len(got))
	}
	if got[0] != "query 3" || got[len(got)-1] != fmt.Sprintf("query %d", historyDepth+2) {
		t.Fatalf("expected oldest entries dropped, got %v", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	s, now := newTestStore(time.Minute, 10)

	s.Append("sess-1", "old query")

	*now = now.Add(2 * time.Minute)

	if got := s.History("sess-1"); got != nil {
		t.Fatalf("expected expired session, got %v", got)
	}
	if s.Len() != 0 {
		t.Fatalf("expected expired session removed, got %d", s.Len())
	}
}

func TestReadRefreshesTTL(t *testing.T) {
	s, now := newTestStore(time.Minute, 10)

	s.Append("sess-1", "query")

	*now = now.Add(45 * time.Second)
	if got := s.History("sess-1"); got == nil {
		t.Fatal("session must still be alive")
	}

	// Another 45s passes; only alive because the read refreshed lastSeen.
	*now = now.Add(45 * time.Second)
	if got := s.History("sess-1"); got == nil {
		t.Fatal("expected read to refresh TTL")
	}
}

func TestMaxSessionsEvictsOldest(t *testing.T) {
	s, now := newTestStore(time.Hour, 2)

	s.Append("sess-a", "first")
	*now = now.Add(time.Second)
	s.Append("sess-b", "second")
	*now = now.Add(time.Second)
	s.Append("sess-c", "third")

	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}
	if got := s.History("sess-a"); got != nil {
		t.Fatalf("expected oldest session evicted, got %v", got)
	}
	if got := s.History("sess-c"); got == nil {
		t.Fatal("expected newest session retained")
	}
}

func TestAppend_IgnoresEmpty(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)

	s.Append("", "query")
	s.Append("sess-1", "")

	if s.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", s.Len())
	}
}
