package messaging

// MessageKey identifies a message in the catalog
type MessageKey string

const (
	KeyWelcome            MessageKey = "welcome"
	KeyHelp               MessageKey = "help"
	KeyPing               MessageKey = "ping"
	KeyGameStarted        MessageKey = "game_started"
	KeyGameEnded          MessageKey = "game_ended"
	KeyGameAlreadyRunning MessageKey = "game_already_running"
	KeyNoActiveGame       MessageKey = "no_active_game"
	KeyNotHost            MessageKey = "not_host"
	KeyViewWord           MessageKey = "view_word"
	KeyNextWord           MessageKey = "next_word"
	KeyCorrectGuess       MessageKey = "correct_guess"
	KeyHostReveal         MessageKey = "host_reveal"
	KeyRewardFailed       MessageKey = "reward_failed"
	KeyBotCannotHost      MessageKey = "bot_cannot_host"
	KeySettings           MessageKey = "settings"
	KeyGameModeSet        MessageKey = "game_mode_set"
	KeyInvalidMode        MessageKey = "invalid_mode"
	KeyLanguageSet        MessageKey = "language_set"
	KeyInvalidLanguage    MessageKey = "invalid_language"
	KeyNotAdmin           MessageKey = "not_admin"
	KeyScore              MessageKey = "score"
	KeyLeaderboardHeader  MessageKey = "leaderboard_header"
	KeyLeaderboardEntry   MessageKey = "leaderboard_entry"
	KeyLeaderboardEmpty   MessageKey = "leaderboard_empty"
	KeyTransferDone       MessageKey = "transfer_done"
	KeyInsufficientFunds  MessageKey = "insufficient_funds"
	KeyInvalidAmount      MessageKey = "invalid_amount"
	KeySelfTransfer       MessageKey = "self_transfer"
	KeyPayUsage           MessageKey = "pay_usage"
	KeyStorageError       MessageKey = "storage_error"
	KeyGenericError       MessageKey = "generic_error"
)

// Config contains configuration for the messaging service
type Config struct {
	// Seed fixes the variant choice; zero seeds from the clock
	Seed uint64
}

// GetMessageInput contains parameters for rendering a message
type GetMessageInput struct {
	Key MessageKey

	// Language is the chat language; unknown languages fall back to English
	Language string

	// Params fill the {placeholders} of the message
	Params map[string]string
}

// GetMessageOutput contains the rendered message
type GetMessageOutput struct {
	Message string

	// Language is the catalog that was actually used
	Language string
}

// GetErrorMessageInput contains parameters for rendering an error
type GetErrorMessageInput struct {
	Err      error
	Language string

	// Params fill placeholders the error itself does not carry, such as
	// the command prefix
	Params map[string]string
}

// GetErrorMessageOutput contains the rendered error
type GetErrorMessageOutput struct {
	Key     MessageKey
	Message string

	// IsUserError is false for configuration and infrastructure failures,
	// which callers log at error level
	IsUserError bool
}
