package models

const (
	// DefaultLanguage is used when a chat never picked one
	DefaultLanguage = "en"
)

// ChatSettings holds the per-chat configuration changed by admins
type ChatSettings struct {
	// ChatID is the chat these settings belong to
	ChatID string

	// Language is the locale tag used for replies
	Language string

	// GameMode is the tier new rounds draw from
	GameMode Difficulty
}
