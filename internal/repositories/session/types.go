package session

import (
	"time"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// SaveSessionInput contains parameters for saving a session
type SaveSessionInput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	ChatID string
}

// DeleteSessionInput contains parameters for deleting a session
type DeleteSessionInput struct {
	ChatID string
}

// sessionRecord is the stored shape of a session. The mapping from the
// domain model is explicit so the document layout does not drift with it.
type sessionRecord struct {
	ID             string `json:"id"`
	ChatID         string `json:"chat_id"`
	HostID         string `json:"host_id"`
	HostName       string `json:"host_name"`
	HostUsername   string `json:"host_username,omitempty"`
	Word           string `json:"word"`
	Difficulty     string `json:"difficulty"`
	StartedAtMilli int64  `json:"started_at"`
}

func toRecord(s *models.Session) *sessionRecord {
	return &sessionRecord{
		ID:             s.ID,
		ChatID:         s.ChatID,
		HostID:         s.Host.ID,
		HostName:       s.Host.DisplayName,
		HostUsername:   s.Host.Username,
		Word:           s.Word,
		Difficulty:     string(s.Difficulty),
		StartedAtMilli: s.StartedAt.UnixMilli(),
	}
}

func (r *sessionRecord) toModel() *models.Session {
	return &models.Session{
		ID:     r.ID,
		ChatID: r.ChatID,
		Host: models.Player{
			ID:          r.HostID,
			DisplayName: r.HostName,
			Username:    r.HostUsername,
		},
		Word:       r.Word,
		Difficulty: models.Difficulty(r.Difficulty),
		StartedAt:  time.UnixMilli(r.StartedAtMilli).UTC(),
	}
}
