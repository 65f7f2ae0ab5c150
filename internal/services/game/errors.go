package game

import (
	"fmt"

	"github.com/KirkDiggler/crocodile/internal/models"
)

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoActiveGame       GameError = "no active game in this chat"
	ErrNotHost            GameError = "only the host can do this"
	ErrGameAlreadyRunning GameError = "a game is already running in this chat"
	ErrInvalidDifficulty  GameError = "unknown game mode"
	ErrInvalidLanguage    GameError = "unsupported language"
	ErrNotAdmin           GameError = "only chat admins can change settings"
	ErrRequesterIsBot     GameError = "bots cannot host a game"
	ErrInvalidInput       GameError = "chat and requester are required"
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilSessionRepo     GameError = "session repository cannot be nil"
	ErrNilSettingsRepo    GameError = "settings repository cannot be nil"
	ErrNilLedger          GameError = "ledger service cannot be nil"
	ErrNilWords           GameError = "word pool cannot be nil"
	ErrNilClock           GameError = "clock cannot be nil"
	ErrNilUUIDGenerator   GameError = "UUID generator cannot be nil"
	ErrInvalidReward      GameError = "reward cannot be negative"
)

// GameAlreadyRunningError reports who hosts the round that blocked a start.
// It matches ErrGameAlreadyRunning under errors.Is.
type GameAlreadyRunningError struct {
	Host models.Player
}

// Error implements the error interface
func (e *GameAlreadyRunningError) Error() string {
	return fmt.Sprintf("%s (host: %s)", ErrGameAlreadyRunning, e.Host.Name())
}

// Is matches ErrGameAlreadyRunning
func (e *GameAlreadyRunningError) Is(target error) bool {
	return target == ErrGameAlreadyRunning
}

// HostName returns the display name of the current host
func (e *GameAlreadyRunningError) HostName() string {
	return e.Host.Name()
}
