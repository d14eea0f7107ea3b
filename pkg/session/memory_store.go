package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory. It is meant for tests and
// single instance development setups; records vanish on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
	ticker   *time.Ticker
	done     chan struct{}
	stop     sync.Once
}

// NewMemoryStore creates a new in-memory session store. A positive
// cleanupInterval starts a goroutine that drops expired records; stop it
// with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop(store.ticker)
	}

	return store
}

// Get retrieves a session by id
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	return session.clone(), nil
}

// Save creates or replaces a session
func (m *MemoryStore) Save(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	m.sessions[session.ID] = session.clone()
	m.mu.Unlock()
	return nil
}

// Delete removes a session by id
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// DeleteExpired removes all expired sessions
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, session := range m.sessions {
		if session.IsExpired(now) {
			delete(m.sessions, id)
		}
	}

	return nil
}

// Len returns the number of records currently held, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (m *MemoryStore) Close() error {
	m.stop.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop(ticker *time.Ticker) {
	for {
		select {
		case <-ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
