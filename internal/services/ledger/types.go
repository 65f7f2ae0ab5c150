package ledger

import (
	"github.com/KirkDiggler/crocodile/internal/models"
	scoreRepo "github.com/KirkDiggler/crocodile/internal/repositories/score"
)

const (
	// DefaultTopN is the leaderboard size when none is asked for
	DefaultTopN = 10

	// MaxTopN caps the leaderboard size
	MaxTopN = 50
)

// Config holds configuration for the ledger service
type Config struct {
	// Repository dependencies
	ScoreRepo scoreRepo.Repository
}

// GetScoreInput is the input for GetScore
type GetScoreInput struct {
	ChatID string
	UserID string
}

// GetScoreOutput is the output for GetScore
type GetScoreOutput struct {
	Record *models.ScoreRecord
}

// IncrementInput is the input for Increment
type IncrementInput struct {
	ChatID string
	Player models.Player
	Score  int64
	Coins  int64
	XP     int64
}

// IncrementOutput is the output for Increment
type IncrementOutput struct {
	Record *models.ScoreRecord
}

// TransferInput is the input for Transfer
type TransferInput struct {
	ChatID string
	From   models.Player
	To     models.Player
	Amount int64
}

// TransferOutput is the output for Transfer
type TransferOutput struct {
	From *models.ScoreRecord
	To   *models.ScoreRecord
}

// TopNInput is the input for TopN
type TopNInput struct {
	ChatID string

	// Limit defaults to DefaultTopN and is capped at MaxTopN
	Limit int
}

// TopNOutput is the output for TopN
type TopNOutput struct {
	Leaderboard *models.Leaderboard
}
