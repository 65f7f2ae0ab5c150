package discord

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/services/game"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	"github.com/KirkDiggler/crocodile/internal/services/messaging"
	"github.com/rs/zerolog/log"
)

// Dispatcher maps chat events onto service calls and renders the results.
// It holds no game rules and knows nothing about Discord types.
type Dispatcher struct {
	gameService game.Service
	ledger      ledger.Service
	messaging   messaging.Service
	membership  MembershipChecker
	prefixes    []string
	retry       RetryPolicy
}

// NewDispatcher creates a dispatcher
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.Ledger == nil {
		return nil, errors.New("ledger service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	prefixes := cfg.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}

	retry := cfg.Retry
	if retry.Attempts == 0 {
		retry = DefaultRetryPolicy
	}

	return &Dispatcher{
		gameService: cfg.GameService,
		ledger:      cfg.Ledger,
		messaging:   cfg.Messaging,
		membership:  cfg.Membership,
		prefixes:    prefixes,
		retry:       retry,
	}, nil
}

// HandleMessage treats prefixed messages as commands and anything else as
// a guess. A nil reply means nothing should be sent.
func (d *Dispatcher) HandleMessage(ctx context.Context, ev *MessageEvent) (*Reply, error) {
	if ev == nil || ev.Author.IsBot || ev.ChatID == "" {
		return nil, nil
	}

	if cmd, ok := ParseCommand(ev.Content, d.prefixes); ok {
		cmd.Mentions = ev.Mentions
		return d.HandleCommand(ctx, &CommandEvent{
			ChatID:  ev.ChatID,
			User:    ev.Author,
			Command: cmd,
		})
	}

	return d.handleGuess(ctx, ev)
}

// HandleCommand runs a parsed command
func (d *Dispatcher) HandleCommand(ctx context.Context, ev *CommandEvent) (*Reply, error) {
	if ev == nil || ev.Command == nil || ev.User.IsBot {
		return nil, nil
	}

	switch ev.Command.Name {
	case CommandGame, CommandStart:
		return d.startGame(ctx, ev.ChatID, ev.User, ev.Interactive)
	case CommandEnd:
		return d.endGame(ctx, ev.ChatID, ev.User, ev.Interactive)
	case CommandWord:
		if !ev.Interactive {
			// a text reply would show the word to everyone
			return nil, nil
		}
		return d.viewWord(ctx, ev.ChatID, ev.User)
	case CommandSettings:
		return d.showSettings(ctx, ev.ChatID)
	case CommandSetMode:
		return d.setGameMode(ctx, ev)
	case CommandLanguage:
		return d.setLanguage(ctx, ev)
	case CommandScore:
		return d.showScore(ctx, ev.ChatID, ev.User)
	case CommandTop:
		return d.showTop(ctx, ev)
	case CommandPay:
		return d.pay(ctx, ev)
	case CommandPing:
		return d.reply(ctx, d.language(ctx, ev.ChatID), messaging.KeyPing, nil)
	case CommandHelp:
		return d.reply(ctx, d.language(ctx, ev.ChatID), messaging.KeyHelp, map[string]string{
			"prefix": d.prefixes[0],
		})
	default:
		return nil, nil
	}
}

// HandleButton runs a button press
func (d *Dispatcher) HandleButton(ctx context.Context, ev *ButtonEvent) (*Reply, error) {
	if ev == nil || ev.User.IsBot {
		return nil, nil
	}

	switch ev.CustomID {
	case ButtonViewWord:
		return d.viewWord(ctx, ev.ChatID, ev.User)
	case ButtonNextWord:
		return d.nextWord(ctx, ev.ChatID, ev.User)
	case ButtonEndGame:
		return d.endGame(ctx, ev.ChatID, ev.User, true)
	case ButtonStartGame:
		return d.startGame(ctx, ev.ChatID, ev.User, true)
	default:
		log.Warn().Str("custom_id", ev.CustomID).Msg("unknown button")
		reply, err := d.reply(ctx, d.language(ctx, ev.ChatID), messaging.KeyGenericError, nil)
		if reply != nil {
			reply.Ephemeral = true
		}
		return reply, err
	}
}

func (d *Dispatcher) handleGuess(ctx context.Context, ev *MessageEvent) (*Reply, error) {
	out, err := d.gameService.SubmitGuess(ctx, &game.SubmitGuessInput{
		ChatID:    ev.ChatID,
		Requester: ev.Author,
		Text:      ev.Content,
	})
	if err != nil {
		if errors.Is(err, game.ErrNoActiveGame) {
			return nil, nil
		}
		return d.errorReply(ctx, ev.ChatID, err, false)
	}

	lang := d.language(ctx, ev.ChatID)

	switch out.Result {
	case game.GuessCorrect:
		if out.RewardErr != nil {
			reply, err := d.reply(ctx, lang, messaging.KeyRewardFailed, map[string]string{
				"winner": out.Winner.Name(),
			})
			if reply != nil {
				reply.Buttons = ButtonsHost
			}
			return reply, err
		}

		reply, err := d.reply(ctx, lang, messaging.KeyCorrectGuess, map[string]string{
			"winner": out.Winner.Name(),
			"word":   out.Word,
			"score":  strconv.FormatInt(out.Reward.Score, 10),
			"coins":  strconv.FormatInt(out.Reward.Coins, 10),
			"xp":     strconv.FormatInt(out.Reward.XP, 10),
		})
		if reply != nil {
			reply.Buttons = ButtonsHost
		}
		return reply, err
	case game.GuessHostReveal:
		return d.reply(ctx, lang, messaging.KeyHostReveal, map[string]string{
			"name": ev.Author.Name(),
		})
	default:
		return nil, nil
	}
}

// startGame treats a round hosted by the requester as started when an
// earlier attempt failed with a storage error, since that write may have landed.
func (d *Dispatcher) startGame(ctx context.Context, chatID string, user models.Player, interactive bool) (*Reply, error) {
	var storageFailed bool
	out, err := withRetry(ctx, d.retry, "start game", func(ctx context.Context) (*game.StartGameOutput, error) {
		out, err := d.gameService.StartGame(ctx, &game.StartGameInput{
			ChatID:    chatID,
			Requester: user,
		})
		var running *game.GameAlreadyRunningError
		if storageFailed && errors.As(err, &running) && running.Host.ID == user.ID {
			return &game.StartGameOutput{Session: &models.Session{ChatID: chatID, Host: running.Host}}, nil
		}
		storageFailed = storageFailed || isStorageError(err)
		return out, err
	})
	if err != nil {
		return d.errorReply(ctx, chatID, err, interactive)
	}

	reply, err := d.reply(ctx, d.language(ctx, chatID), messaging.KeyGameStarted, map[string]string{
		"name": out.Session.Host.Name(),
	})
	if reply != nil {
		reply.Buttons = ButtonsHost
	}
	return reply, err
}

// endGame treats a missing round as ended when an earlier attempt failed
// with a storage error.
func (d *Dispatcher) endGame(ctx context.Context, chatID string, user models.Player, interactive bool) (*Reply, error) {
	var storageFailed bool
	_, err := withRetry(ctx, d.retry, "end game", func(ctx context.Context) (*game.EndGameOutput, error) {
		out, err := d.gameService.EndGame(ctx, &game.EndGameInput{
			ChatID:    chatID,
			Requester: user,
		})
		if storageFailed && errors.Is(err, game.ErrNoActiveGame) {
			return &game.EndGameOutput{}, nil
		}
		storageFailed = storageFailed || isStorageError(err)
		return out, err
	})
	if err != nil {
		return d.errorReply(ctx, chatID, err, interactive)
	}

	reply, err := d.reply(ctx, d.language(ctx, chatID), messaging.KeyGameEnded, map[string]string{
		"name":   user.Name(),
		"prefix": d.prefixes[0],
	})
	if reply != nil {
		reply.Buttons = ButtonsStart
	}
	return reply, err
}

func (d *Dispatcher) viewWord(ctx context.Context, chatID string, user models.Player) (*Reply, error) {
	out, err := withRetry(ctx, d.retry, "view word", func(ctx context.Context) (*game.ViewWordOutput, error) {
		return d.gameService.ViewWord(ctx, &game.ViewWordInput{
			ChatID:    chatID,
			Requester: user,
		})
	})
	if err != nil {
		return d.errorReply(ctx, chatID, err, true)
	}

	reply, err := d.reply(ctx, d.language(ctx, chatID), messaging.KeyViewWord, map[string]string{
		"word": out.Word,
	})
	if reply != nil {
		reply.Ephemeral = true
	}
	return reply, err
}

// nextWord is not retried: a failed save after a draw must not draw twice
func (d *Dispatcher) nextWord(ctx context.Context, chatID string, user models.Player) (*Reply, error) {
	out, err := d.gameService.NextWord(ctx, &game.NextWordInput{
		ChatID:    chatID,
		Requester: user,
	})
	if err != nil {
		return d.errorReply(ctx, chatID, err, true)
	}

	reply, err := d.reply(ctx, d.language(ctx, chatID), messaging.KeyNextWord, map[string]string{
		"word": out.Word,
	})
	if reply != nil {
		reply.Ephemeral = true
	}
	return reply, err
}

func (d *Dispatcher) showSettings(ctx context.Context, chatID string) (*Reply, error) {
	out, err := withRetry(ctx, d.retry, "get settings", func(ctx context.Context) (*game.GetSettingsOutput, error) {
		return d.gameService.GetSettings(ctx, &game.GetSettingsInput{ChatID: chatID})
	})
	if err != nil {
		return d.errorReply(ctx, chatID, err, false)
	}

	return d.reply(ctx, out.Settings.Language, messaging.KeySettings, map[string]string{
		"language": out.Settings.Language,
		"mode":     string(out.Settings.GameMode),
	})
}

func (d *Dispatcher) setGameMode(ctx context.Context, ev *CommandEvent) (*Reply, error) {
	isAdmin := d.isAdmin(ctx, ev.ChatID, ev.User.ID)

	out, err := withRetry(ctx, d.retry, "set game mode", func(ctx context.Context) (*game.SetGameModeOutput, error) {
		return d.gameService.SetGameMode(ctx, &game.SetGameModeInput{
			ChatID:           ev.ChatID,
			Mode:             ev.Command.Arg(0),
			RequesterIsAdmin: isAdmin,
		})
	})
	if err != nil {
		return d.errorReply(ctx, ev.ChatID, err, ev.Interactive)
	}

	return d.reply(ctx, out.Settings.Language, messaging.KeyGameModeSet, map[string]string{
		"mode": string(out.Settings.GameMode),
	})
}

func (d *Dispatcher) setLanguage(ctx context.Context, ev *CommandEvent) (*Reply, error) {
	isAdmin := d.isAdmin(ctx, ev.ChatID, ev.User.ID)

	out, err := withRetry(ctx, d.retry, "set language", func(ctx context.Context) (*game.SetLanguageOutput, error) {
		return d.gameService.SetLanguage(ctx, &game.SetLanguageInput{
			ChatID:           ev.ChatID,
			Language:         ev.Command.Arg(0),
			RequesterIsAdmin: isAdmin,
		})
	})
	if err != nil {
		return d.errorReply(ctx, ev.ChatID, err, ev.Interactive)
	}

	return d.reply(ctx, out.Settings.Language, messaging.KeyLanguageSet, map[string]string{
		"language": out.Settings.Language,
	})
}

func (d *Dispatcher) showScore(ctx context.Context, chatID string, user models.Player) (*Reply, error) {
	out, err := withRetry(ctx, d.retry, "get score", func(ctx context.Context) (*ledger.GetScoreOutput, error) {
		return d.ledger.GetScore(ctx, &ledger.GetScoreInput{
			ChatID: chatID,
			UserID: user.ID,
		})
	})
	if err != nil {
		return d.errorReply(ctx, chatID, err, false)
	}

	return d.reply(ctx, d.language(ctx, chatID), messaging.KeyScore, map[string]string{
		"name":  user.Name(),
		"score": strconv.FormatInt(out.Record.Score, 10),
		"coins": strconv.FormatInt(out.Record.Coins, 10),
		"xp":    strconv.FormatInt(out.Record.XP, 10),
	})
}

func (d *Dispatcher) showTop(ctx context.Context, ev *CommandEvent) (*Reply, error) {
	// unparsable limits fall back to the ledger default
	limit, _ := strconv.Atoi(ev.Command.Arg(0))

	out, err := withRetry(ctx, d.retry, "top scores", func(ctx context.Context) (*ledger.TopNOutput, error) {
		return d.ledger.TopN(ctx, &ledger.TopNInput{
			ChatID: ev.ChatID,
			Limit:  limit,
		})
	})
	if err != nil {
		return d.errorReply(ctx, ev.ChatID, err, false)
	}

	lang := d.language(ctx, ev.ChatID)
	if len(out.Leaderboard.Entries) == 0 {
		return d.reply(ctx, lang, messaging.KeyLeaderboardEmpty, nil)
	}

	header, err := d.message(ctx, lang, messaging.KeyLeaderboardHeader, nil)
	if err != nil {
		return nil, err
	}

	lines := []string{header}
	for i, entry := range out.Leaderboard.Entries {
		name := entry.DisplayName
		if name == "" {
			name = entry.UserID
		}

		line, err := d.message(ctx, lang, messaging.KeyLeaderboardEntry, map[string]string{
			"rank":  strconv.Itoa(i + 1),
			"name":  name,
			"score": strconv.FormatInt(entry.Score, 10),
		})
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return &Reply{Content: strings.Join(lines, "\n")}, nil
}

// pay is not retried: a transfer that committed before the error would run twice
func (d *Dispatcher) pay(ctx context.Context, ev *CommandEvent) (*Reply, error) {
	lang := d.language(ctx, ev.ChatID)

	if ev.Command.Arg(0) == "" || len(ev.Command.Mentions) == 0 {
		return d.reply(ctx, lang, messaging.KeyPayUsage, map[string]string{
			"prefix": d.prefixes[0],
		})
	}

	amount, err := strconv.ParseInt(ev.Command.Arg(0), 10, 64)
	if err != nil {
		return d.errorReply(ctx, ev.ChatID, ledger.ErrInvalidAmount, ev.Interactive)
	}

	to := ev.Command.Mentions[0]
	if to.IsBot {
		return d.reply(ctx, lang, messaging.KeyPayUsage, map[string]string{
			"prefix": d.prefixes[0],
		})
	}

	_, err = d.ledger.Transfer(ctx, &ledger.TransferInput{
		ChatID: ev.ChatID,
		From:   ev.User,
		To:     to,
		Amount: amount,
	})
	if err != nil {
		return d.errorReply(ctx, ev.ChatID, err, ev.Interactive)
	}

	return d.reply(ctx, lang, messaging.KeyTransferDone, map[string]string{
		"from":   ev.User.Name(),
		"to":     to.Name(),
		"amount": strconv.FormatInt(amount, 10),
	})
}

// isAdmin fails closed
func (d *Dispatcher) isAdmin(ctx context.Context, chatID, userID string) bool {
	if d.membership == nil {
		return false
	}

	ok, err := d.membership.IsAdmin(ctx, chatID, userID)
	if err != nil {
		log.Warn().Err(err).
			Str("chat_id", chatID).
			Str("user_id", userID).
			Msg("admin lookup failed, treating as not admin")
		return false
	}

	return ok
}

// language reads the chat language. It is cosmetic, so a failed lookup
// falls back to the default instead of failing the reply.
func (d *Dispatcher) language(ctx context.Context, chatID string) string {
	out, err := d.gameService.GetSettings(ctx, &game.GetSettingsInput{ChatID: chatID})
	if err != nil {
		log.Warn().Err(err).Str("chat_id", chatID).Msg("failed to read chat language")
		return models.DefaultLanguage
	}
	return out.Settings.Language
}

func (d *Dispatcher) message(ctx context.Context, lang string, key messaging.MessageKey, params map[string]string) (string, error) {
	out, err := d.messaging.GetMessage(ctx, &messaging.GetMessageInput{
		Key:      key,
		Language: lang,
		Params:   params,
	})
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

func (d *Dispatcher) reply(ctx context.Context, lang string, key messaging.MessageKey, params map[string]string) (*Reply, error) {
	content, err := d.message(ctx, lang, key, params)
	if err != nil {
		return nil, err
	}
	return &Reply{Content: content}, nil
}

// errorReply is the only place service errors become chat text
func (d *Dispatcher) errorReply(ctx context.Context, chatID string, cause error, ephemeral bool) (*Reply, error) {
	out, err := d.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Err:      cause,
		Language: d.language(ctx, chatID),
		Params:   map[string]string{"prefix": d.prefixes[0]},
	})
	if err != nil {
		return nil, err
	}

	if out.IsUserError {
		log.Debug().Err(cause).Str("chat_id", chatID).Msg("user error")
	} else {
		log.Error().Err(cause).Str("chat_id", chatID).Msg("request failed")
	}

	return &Reply{
		Content:   out.Message,
		Ephemeral: ephemeral,
	}, nil
}
