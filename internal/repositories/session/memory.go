package session

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// memoryRepository keeps sessions in a map. State is lost on restart; it
// backs tests and local runs without Redis.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemory creates an in-memory session repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		sessions: make(map[string]*models.Session),
	}
}

// SaveSession stores a copy of the session
func (m *memoryRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ChatID == "" {
		return errors.New("session chat ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[input.Session.ChatID] = input.Session.Clone()
	return nil
}

// GetSession returns a copy of the stored session
func (m *memoryRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[input.ChatID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// DeleteSession drops the session of a chat
func (m *memoryRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.ChatID == "" {
		return errors.New("input and chat ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, input.ChatID)
	return nil
}
