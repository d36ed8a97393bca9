package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soccerscope/soccerscope/internal/dataset"
)

// Manager tracks live dashboard sessions by identifier. Sessions are
// in-memory only; nothing survives a restart.
type Manager struct {
	mu       sync.RWMutex
	pool     *dataset.Pool
	logger   *logrus.Logger
	sessions map[string]*Session
}

// NewManager creates a session manager over the loaded pool.
func NewManager(pool *dataset.Pool, logger *logrus.Logger) *Manager {
	return &Manager{
		pool:     pool,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session, optionally seeded with a team filter.
func (m *Manager) Create(team string) *Session {
	s := New(uuid.NewString(), m.pool)
	if team != "" {
		s.SetTeam(team)
	}

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"session": s.ID(),
		"team":    team,
	}).Info("Session created")
	return s
}

// Get returns the session with the given identifier.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
