package models

import (
	"time"
)

// ScoreRecord accumulates a player's rewards inside one chat
type ScoreRecord struct {
	// ChatID is the chat the record belongs to
	ChatID string

	// UserID is the player the record belongs to
	UserID string

	// DisplayName is the last known name of the player
	DisplayName string

	// Score counts correct guesses weighted by the reward policy
	Score int64

	// Coins is the spendable currency
	Coins int64

	// XP is the experience total
	XP int64

	// CreatedAt is when the player first scored in this chat
	CreatedAt time.Time

	// UpdatedAt is when the record last changed
	UpdatedAt time.Time
}

// Leaderboard is the ordered top of a chat's score records
type Leaderboard struct {
	// ChatID is the chat the leaderboard was built for
	ChatID string

	// Entries are sorted by score descending, oldest record first on ties
	Entries []*ScoreRecord
}
