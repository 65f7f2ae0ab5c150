package models

import (
	"time"
)

// Session is the single ongoing round of a chat
type Session struct {
	// ID identifies this round; it changes on every turn hand-off
	ID string

	// ChatID is the chat the round is played in
	ChatID string

	// Host is the player who knows the word
	Host Player

	// Word is the normalized secret word
	Word string

	// Difficulty is the tier the word was drawn from
	Difficulty Difficulty

	// StartedAt is when the round started or was last handed off
	StartedAt time.Time
}

// IsExpired reports whether the round has outlived the timeout at now
func (s *Session) IsExpired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.StartedAt) >= timeout
}

// IsHost reports whether userID is the current host
func (s *Session) IsHost(userID string) bool {
	return s.Host.ID == userID
}

// Clone returns a copy that can be mutated without touching s
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
