package game

import (
	"time"

	"github.com/KirkDiggler/crocodile/internal/common/clock"
	"github.com/KirkDiggler/crocodile/internal/common/keylock"
	"github.com/KirkDiggler/crocodile/internal/common/uuid"
	"github.com/KirkDiggler/crocodile/internal/models"
	sessionRepo "github.com/KirkDiggler/crocodile/internal/repositories/session"
	settingsRepo "github.com/KirkDiggler/crocodile/internal/repositories/settings"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	"github.com/KirkDiggler/crocodile/internal/words"
)

// DefaultRoundTimeout is how long a round lives without a hand-off
const DefaultRoundTimeout = 300 * time.Second

// SupportedLanguages lists the language tags a chat may pick
var SupportedLanguages = []string{"en", "ta", "hi"}

// Reward is credited to the player who guesses the word
type Reward struct {
	Score int64
	Coins int64
	XP    int64
}

// DefaultReward is the reward policy used when none is configured
var DefaultReward = Reward{Score: 10, Coins: 5, XP: 20}

// GuessResult classifies a submitted guess
type GuessResult string

const (
	// GuessNoMatch means nothing changed
	GuessNoMatch GuessResult = "no_match"

	// GuessCorrect means the turn passed to the guesser
	GuessCorrect GuessResult = "correct"

	// GuessHostReveal means the host wrote the word in the chat
	GuessHostReveal GuessResult = "host_reveal"
)

// Config holds configuration for the game service
type Config struct {
	// RoundTimeout defaults to DefaultRoundTimeout when zero
	RoundTimeout time.Duration

	// Reward credited on a correct guess
	Reward Reward

	// Repository dependencies
	SessionRepo  sessionRepo.Repository
	SettingsRepo settingsRepo.Repository

	// Service dependencies
	Ledger ledger.Service
	Words  words.Drawer

	// Clock used for expiry and round start times
	Clock clock.Clock

	// UUID generates round IDs
	UUID uuid.UUID

	// Locker serializes operations per chat; a fresh one is made when nil
	Locker *keylock.Locker
}

// StartGameInput is the input for StartGame
type StartGameInput struct {
	ChatID    string
	Requester models.Player
}

// StartGameOutput is the output for StartGame
type StartGameOutput struct {
	Session *models.Session
}

// ViewWordInput is the input for ViewWord
type ViewWordInput struct {
	ChatID    string
	Requester models.Player
}

// ViewWordOutput is the output for ViewWord
type ViewWordOutput struct {
	Word       string
	Difficulty models.Difficulty
}

// NextWordInput is the input for NextWord
type NextWordInput struct {
	ChatID    string
	Requester models.Player
}

// NextWordOutput is the output for NextWord
type NextWordOutput struct {
	Word       string
	Difficulty models.Difficulty
}

// SubmitGuessInput is the input for SubmitGuess
type SubmitGuessInput struct {
	ChatID    string
	Requester models.Player
	Text      string
}

// SubmitGuessOutput is the output for SubmitGuess
type SubmitGuessOutput struct {
	Result GuessResult

	// Winner is set on GuessCorrect
	Winner *models.Player

	// Word is the guessed word on GuessCorrect
	Word string

	// NewSession is the round the winner now hosts
	NewSession *models.Session

	// Reward is what the winner was credited
	Reward Reward

	// Record holds the winner's totals after the reward
	Record *models.ScoreRecord

	// RewardErr is set when the hand-off happened but crediting the winner failed
	RewardErr error
}

// EndGameInput is the input for EndGame
type EndGameInput struct {
	ChatID    string
	Requester models.Player
}

// EndGameOutput is the output for EndGame
type EndGameOutput struct {
	// Session is the round that was ended
	Session *models.Session
}

// GetSettingsInput is the input for GetSettings
type GetSettingsInput struct {
	ChatID string
}

// GetSettingsOutput is the output for GetSettings
type GetSettingsOutput struct {
	Settings *models.ChatSettings
}

// SetGameModeInput is the input for SetGameMode
type SetGameModeInput struct {
	ChatID string
	Mode   string

	// RequesterIsAdmin is resolved by the caller through the membership lookup
	RequesterIsAdmin bool
}

// SetGameModeOutput is the output for SetGameMode
type SetGameModeOutput struct {
	Settings *models.ChatSettings
}

// SetLanguageInput is the input for SetLanguage
type SetLanguageInput struct {
	ChatID   string
	Language string

	// RequesterIsAdmin is resolved by the caller through the membership lookup
	RequesterIsAdmin bool
}

// SetLanguageOutput is the output for SetLanguage
type SetLanguageOutput struct {
	Settings *models.ChatSettings
}
