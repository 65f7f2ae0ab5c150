package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/crocodile/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// Repository defines the interface for round persistence. A chat holds at
// most one session; saving replaces whatever was stored before.
type Repository interface {
	// GetSession retrieves the session of a chat, or ErrSessionNotFound
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// SaveSession upserts the session of its chat
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// DeleteSession removes the session of a chat; absent sessions are not an error
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error
}
