package settings

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/crocodile/internal/repositories/settings Repository

import (
	"context"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// Repository defines the interface for chat settings persistence
type Repository interface {
	// GetSettings retrieves the settings of a chat, filling in defaults for unset fields
	GetSettings(ctx context.Context, input *GetSettingsInput) (*models.ChatSettings, error)

	// UpdateSettings writes the non-nil fields of the input and returns the result
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*models.ChatSettings, error)
}
