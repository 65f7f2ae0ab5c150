package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/crocodile/internal/services/game Service

import "context"

// Service defines the interface for the per-chat round state machine.
// Every round operation checks expiry first and runs under the chat's lock.
type Service interface {
	// StartGame opens a round hosted by the requester
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// ViewWord shows the secret word to the host
	ViewWord(ctx context.Context, input *ViewWordInput) (*ViewWordOutput, error)

	// NextWord swaps the secret word for a fresh one of the same tier
	NextWord(ctx context.Context, input *NextWordInput) (*NextWordOutput, error)

	// SubmitGuess evaluates a chat message against the secret word
	SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error)

	// EndGame closes the round; host only
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	// GetSettings returns the chat settings
	GetSettings(ctx context.Context, input *GetSettingsInput) (*GetSettingsOutput, error)

	// SetGameMode changes the tier of future rounds; admin only
	SetGameMode(ctx context.Context, input *SetGameModeInput) (*SetGameModeOutput, error)

	// SetLanguage changes the reply language; admin only
	SetLanguage(ctx context.Context, input *SetLanguageInput) (*SetLanguageOutput, error)
}
