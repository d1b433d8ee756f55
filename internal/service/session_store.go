package service

import (
	"strings"
	"sync"
	"time"
)

// SessionStore guarda las sesiones activas en memoria del proceso.
type SessionStore interface {
	Save(session *Session) error
	Get(id string) (*Session, bool)
	Delete(id string) error
}

type memorySessionItem struct {
	session   *Session
	expiresAt time.Time
}

type memorySessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]memorySessionItem
}

// NewMemorySessionStore keeps sessions until deleted or, when ttl > 0, until
// they go ttl without being saved or read.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
		items: make(map[string]memorySessionItem),
	}
}

func (s *memorySessionStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session == nil || strings.TrimSpace(session.ID) == "" {
		return nil
	}
	item := memorySessionItem{session: session}
	if s.ttl > 0 {
		item.expiresAt = s.now().Add(s.ttl)
	}
	s.items[session.ID] = item
	s.sweepLocked()
	return nil
}

func (s *memorySessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.expired(item) {
		delete(s.items, id)
		return nil, false
	}
	if s.ttl > 0 {
		item.expiresAt = s.now().Add(s.ttl)
		s.items[id] = item
	}
	return item.session, true
}

func (s *memorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *memorySessionStore) expired(item memorySessionItem) bool {
	return !item.expiresAt.IsZero() && s.now().After(item.expiresAt)
}

func (s *memorySessionStore) sweepLocked() {
	for id, item := range s.items {
		if s.expired(item) {
			delete(s.items, id)
		}
	}
}
