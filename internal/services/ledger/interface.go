package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/crocodile/internal/services/ledger Service

import "context"

// Service defines the interface for the score ledger
type Service interface {
	// GetScore returns a player's totals in a chat
	GetScore(ctx context.Context, input *GetScoreInput) (*GetScoreOutput, error)

	// Increment credits a player
	Increment(ctx context.Context, input *IncrementInput) (*IncrementOutput, error)

	// Transfer moves coins from one player to another
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)

	// TopN returns the leaderboard of a chat
	TopN(ctx context.Context, input *TopNInput) (*TopNOutput, error)

	// Ping checks the backing store
	Ping(ctx context.Context) error
}
