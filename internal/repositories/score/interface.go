package score

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/crocodile/internal/repositories/score Repository

import (
	"context"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// Repository defines the interface for per-chat score records.
// Every method is atomic on its own.
type Repository interface {
	// GetScore returns the record of a player, zeroed when the player never scored
	GetScore(ctx context.Context, input *GetScoreInput) (*models.ScoreRecord, error)

	// Increment adds the deltas to a record, creating it on first use
	Increment(ctx context.Context, input *IncrementInput) (*models.ScoreRecord, error)

	// Transfer moves coins between two players of the same chat
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)

	// TopN returns the best records of a chat
	TopN(ctx context.Context, input *TopNInput) ([]*models.ScoreRecord, error)

	// Ping checks that the database answers
	Ping(ctx context.Context) error
}
