package discord

import (
	"context"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/services/game"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	"github.com/KirkDiggler/crocodile/internal/services/messaging"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_membership.go github.com/KirkDiggler/crocodile/internal/handlers/discord MembershipChecker

// Button IDs
const (
	ButtonViewWord  = "crocodile:view"
	ButtonNextWord  = "crocodile:next"
	ButtonEndGame   = "crocodile:end"
	ButtonStartGame = "crocodile:start"
)

// MembershipChecker resolves whether a chat member may change settings
type MembershipChecker interface {
	IsAdmin(ctx context.Context, chatID, userID string) (bool, error)
}

// ReplyButtons selects the buttons attached to a reply
type ReplyButtons int

const (
	// ButtonsNone attaches nothing
	ButtonsNone ReplyButtons = iota

	// ButtonsHost attaches the host controls: see word, next word, end
	ButtonsHost

	// ButtonsStart attaches the button to become the next host
	ButtonsStart
)

// Reply is what the dispatcher wants sent back to the chat
type Reply struct {
	Content string

	// Ephemeral replies are only shown to the acting user; plain messages
	// cannot be ephemeral, so the bot only honours it for interactions
	Ephemeral bool

	Buttons ReplyButtons
}

// MessageEvent is a chat message
type MessageEvent struct {
	ChatID   string
	Author   models.Player
	Content  string
	Mentions []models.Player
}

// ButtonEvent is a press on one of the bot's buttons
type ButtonEvent struct {
	ChatID   string
	User     models.Player
	CustomID string
}

// CommandEvent is a command from a text message or a slash command
type CommandEvent struct {
	ChatID  string
	User    models.Player
	Command *Command

	// Interactive is set for slash commands, which can answer privately
	Interactive bool
}

// DispatcherConfig holds the dependencies of the dispatcher
type DispatcherConfig struct {
	GameService game.Service
	Ledger      ledger.Service
	Messaging   messaging.Service

	// Membership gates settings changes; nil means nobody is admin
	Membership MembershipChecker

	// Prefixes default to DefaultPrefixes
	Prefixes []string

	// Retry defaults to DefaultRetryPolicy when Attempts is zero
	Retry RetryPolicy
}
