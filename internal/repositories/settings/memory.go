package settings

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// memoryRepository keeps settings in a map for tests and local runs
type memoryRepository struct {
	mu       sync.RWMutex
	defaults Defaults
	settings map[string]models.ChatSettings
}

// NewMemory creates an in-memory settings repository
func NewMemory(defaults Defaults) *memoryRepository {
	return &memoryRepository{
		defaults: defaults.orFallback(),
		settings: make(map[string]models.ChatSettings),
	}
}

// GetSettings returns the stored settings or the defaults
func (m *memoryRepository) GetSettings(ctx context.Context, input *GetSettingsInput) (*models.ChatSettings, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.settings[input.ChatID]
	return m.defaults.apply(input.ChatID, stored.Language, string(stored.GameMode)), nil
}

// UpdateSettings applies the non-nil fields
func (m *memoryRepository) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*models.ChatSettings, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.settings[input.ChatID]
	if input.Language != nil {
		stored.Language = *input.Language
	}
	if input.GameMode != nil {
		stored.GameMode = *input.GameMode
	}
	m.settings[input.ChatID] = stored

	return m.defaults.apply(input.ChatID, stored.Language, string(stored.GameMode)), nil
}
