package chatRepository

import (
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/entity"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.ChatSession

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	log *logrus.Logger
}

func NewMemoryStore(log *logrus.Logger) ISessionStore {
	return &memoryStore{
		sessions: make(map[string]entity.ChatSession),
		locks:    make(map[string]*sync.Mutex),
		log:      log,
	}
}

// sessionLock returns the per-session mutex, creating it on first use.
// Locks are never removed so a Delete racing an in-flight turn stays
// safe.
func (m *memoryStore) sessionLock(sessionID string) *sync.Mutex {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()

	if _, exist := m.locks[sessionID]; !exist {
		m.locks[sessionID] = &sync.Mutex{}
	}
	return m.locks[sessionID]
}

func (m *memoryStore) Lock(sessionID string) {
	m.sessionLock(sessionID).Lock()
}

func (m *memoryStore) Unlock(sessionID string) {
	m.sessionLock(sessionID).Unlock()
}

func (m *memoryStore) Create(ctx context.Context, session entity.ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exist := m.sessions[session.ID]; exist {
		return chat.ErrSessionExists
	}

	m.sessions[session.ID] = session
	return nil
}

func (m *memoryStore) Get(ctx context.Context, sessionID string) (entity.ChatSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exist := m.sessions[sessionID]
	if !exist {
		return entity.ChatSession{}, chat.ErrSessionNotFound
	}
	return session, nil
}

func (m *memoryStore) Save(ctx context.Context, session entity.ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = session
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exist := m.sessions[sessionID]; !exist {
		return false, nil
	}

	delete(m.sessions, sessionID)
	return true, nil
}
