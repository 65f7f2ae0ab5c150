package settings

import "github.com/KirkDiggler/crocodile/internal/models"

// GetSettingsInput contains parameters for retrieving chat settings
type GetSettingsInput struct {
	ChatID string
}

// UpdateSettingsInput contains parameters for a partial settings update
type UpdateSettingsInput struct {
	ChatID string

	// Language is left untouched when nil
	Language *string

	// GameMode is left untouched when nil
	GameMode *models.Difficulty
}

// Defaults are the settings of a chat that never changed them
type Defaults struct {
	Language string
	GameMode models.Difficulty
}

func (d Defaults) orFallback() Defaults {
	if d.Language == "" {
		d.Language = models.DefaultLanguage
	}
	if d.GameMode == "" {
		d.GameMode = models.DifficultyEasy
	}
	return d
}

func (d Defaults) apply(chatID string, language, gameMode string) *models.ChatSettings {
	s := &models.ChatSettings{
		ChatID:   chatID,
		Language: language,
		GameMode: models.Difficulty(gameMode),
	}
	if s.Language == "" {
		s.Language = d.Language
	}
	if s.GameMode == "" {
		s.GameMode = d.GameMode
	}
	return s
}
