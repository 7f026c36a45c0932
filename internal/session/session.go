// Package session owns the admin bearer token. Clients receive a *Manager in
// their constructors and never read cookies or files directly.
package session

import (
	"sync"
	"time"
)

const (
	CookieName = "accessToken"
	DefaultTTL = 7 * 24 * time.Hour
)

// Store persists a single bearer token. Get never fails: a missing, expired
// or unreadable token is simply absent.
type Store interface {
	Get() (string, bool)
	Set(token string, ttl time.Duration) error
	Clear() error
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Token() (string, bool) {
	if m == nil || m.store == nil {
		return "", false
	}
	token, ok := m.store.Get()
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (m *Manager) SetToken(token string) error {
	return m.SetTokenTTL(token, DefaultTTL)
}

func (m *Manager) SetTokenTTL(token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return m.store.Set(token, ttl)
}

func (m *Manager) ClearToken() error {
	return m.store.Clear()
}

// MemoryStore keeps the token in process memory and expires it passively.
type MemoryStore struct {
	mu      sync.RWMutex
	token   string
	expires time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || !s.now().Before(s.expires) {
		return "", false
	}
	return s.token, true
}

func (s *MemoryStore) Set(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expires = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expires = time.Time{}
	return nil
}
