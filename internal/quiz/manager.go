package quiz

import (
	"sync"

	"github.com/google/uuid"
)

// Manager owns the server-side sessions, keyed by an opaque ID that the
// HTTP layer stores in the browser's cookie. Sessions live in memory only;
// a restart of the process discards them.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	repo      Repository
	explainer Explainer
}

func NewManager(repo Repository, explainer Explainer) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		repo:      repo,
		explainer: explainer,
	}
}

// Get returns the session for id, if any.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Create registers a fresh session under a new ID.
func (m *Manager) Create() (string, *Session) {
	id := uuid.NewString()
	session := NewSession(m.repo, m.explainer)

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	return id, session
}

// GetOrCreate returns the session for id, or a fresh one under a new ID
// when id is unknown or empty. The returned ID is the one the caller should
// keep using.
func (m *Manager) GetOrCreate(id string) (string, *Session) {
	if id != "" {
		if session, ok := m.Get(id); ok {
			return id, session
		}
	}
	return m.Create()
}

// Delete discards the session for id. Unknown IDs are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
