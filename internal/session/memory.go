package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	sess      *Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in a mutex-guarded TTL map. It is the default
// store; a restart logs everyone out.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryEntry
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{items: map[string]*memoryEntry{}, ttl: ttl}
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.items[token]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	// Hand out a copy: callers mutate the Flashes map outside this lock, and
	// two requests sharing a cookie must never share the stored map.
	return entry.sess.clone(), nil
}

// Save stores a private copy of the session and refreshes its expiry.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sess.Token] = &memoryEntry{
		sess:      sess.clone(),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
	return nil
}

// PurgeExpired drops expired entries and returns how many were removed.
// Expired sessions are already invisible to Get; this reclaims the memory.
func (s *MemoryStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	purged := 0
	for token, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, token)
			purged++
		}
	}
	return purged
}
