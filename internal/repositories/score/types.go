package score

import "github.com/KirkDiggler/crocodile/internal/models"

// GetScoreInput contains parameters for reading a record
type GetScoreInput struct {
	ChatID string
	UserID string
}

// IncrementInput contains the deltas to add to a record
type IncrementInput struct {
	ChatID string
	UserID string

	// DisplayName replaces the stored name when not empty
	DisplayName string

	Score int64
	Coins int64
	XP    int64
}

// TransferInput contains parameters for moving coins
type TransferInput struct {
	ChatID     string
	FromUserID string
	ToUserID   string

	// ToDisplayName names the receiver when its record gets created
	ToDisplayName string

	Amount int64
}

// TransferOutput holds both records after a transfer
type TransferOutput struct {
	From *models.ScoreRecord
	To   *models.ScoreRecord
}

// TopNInput contains parameters for a leaderboard query
type TopNInput struct {
	ChatID string
	Limit  int
}
