package session

import (
	"context"
	"sync"
	"time"

	"promptdeck/internal/nav"
)

type memoryEntry struct {
	state   nav.PageState
	expires time.Time
}

// MemoryStore is the in-process session store used when no Redis URL is
// configured. Expired entries are dropped on access, and Save sweeps the
// whole map at most once per ttl.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	m         map[string]memoryEntry
	nextSweep time.Time
}

// NewMemoryStore returns a store whose sessions live for ttl after the last
// save. A non-positive ttl keeps sessions until the process exits.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, m: map[string]memoryEntry{}}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (nav.PageState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		return nav.PageState{}, false, nil
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.m, id)
		return nav.PageState{}, false, nil
	}
	return e.state, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, st nav.PageState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.ttl > 0 && !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(s.ttl)
	}
	e := memoryEntry{state: st}
	if s.ttl > 0 {
		e.expires = now.Add(s.ttl)
	}
	s.m[id] = e
	return nil
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.m {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(s.m, id)
		}
	}
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

// Len reports the number of stored sessions, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
