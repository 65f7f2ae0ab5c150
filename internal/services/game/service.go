package game

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/crocodile/internal/common/clock"
	"github.com/KirkDiggler/crocodile/internal/common/keylock"
	"github.com/KirkDiggler/crocodile/internal/common/uuid"
	"github.com/KirkDiggler/crocodile/internal/models"
	sessionRepo "github.com/KirkDiggler/crocodile/internal/repositories/session"
	settingsRepo "github.com/KirkDiggler/crocodile/internal/repositories/settings"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	"github.com/KirkDiggler/crocodile/internal/words"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	roundTimeout time.Duration
	reward       Reward

	sessionRepo  sessionRepo.Repository
	settingsRepo settingsRepo.Repository
	ledger       ledger.Service
	words        words.Drawer
	clock        clock.Clock
	uuid         uuid.UUID
	locker       *keylock.Locker
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.SettingsRepo == nil {
		return nil, ErrNilSettingsRepo
	}

	if cfg.Ledger == nil {
		return nil, ErrNilLedger
	}

	if cfg.Words == nil {
		return nil, ErrNilWords
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.Reward.Score < 0 || cfg.Reward.Coins < 0 || cfg.Reward.XP < 0 {
		return nil, ErrInvalidReward
	}

	timeout := cfg.RoundTimeout
	if timeout <= 0 {
		timeout = DefaultRoundTimeout
	}

	locker := cfg.Locker
	if locker == nil {
		locker = keylock.New()
	}

	return &service{
		roundTimeout: timeout,
		reward:       cfg.Reward,
		sessionRepo:  cfg.SessionRepo,
		settingsRepo: cfg.SettingsRepo,
		ledger:       cfg.Ledger,
		words:        cfg.Words,
		clock:        cfg.Clock,
		uuid:         cfg.UUID,
		locker:       locker,
	}, nil
}

// StartGame opens a round hosted by the requester. An expired round is
// removed and replaced in the same call.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.ChatID == "" || input.Requester.ID == "" {
		return nil, ErrInvalidInput
	}

	if input.Requester.IsBot {
		return nil, ErrRequesterIsBot
	}

	unlock := s.locker.Lock(input.ChatID)
	defer unlock()

	current, err := s.activeSession(ctx, input.ChatID)
	if err != nil && !errors.Is(err, ErrNoActiveGame) {
		return nil, err
	}

	if current != nil {
		return nil, &GameAlreadyRunningError{Host: current.Host}
	}

	settings, err := s.settingsRepo.GetSettings(ctx, &settingsRepo.GetSettingsInput{
		ChatID: input.ChatID,
	})
	if err != nil {
		return nil, err
	}

	word, err := s.words.Draw(settings.GameMode)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:         s.uuid.NewUUID(),
		ChatID:     input.ChatID,
		Host:       input.Requester,
		Word:       word,
		Difficulty: settings.GameMode,
		StartedAt:  s.clock.Now(),
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	log.Info().
		Str("chat_id", input.ChatID).
		Str("host_id", input.Requester.ID).
		Str("round_id", session.ID).
		Str("difficulty", string(session.Difficulty)).
		Msg("game started")

	return &StartGameOutput{Session: session}, nil
}

// ViewWord returns the secret word to the host
func (s *service) ViewWord(ctx context.Context, input *ViewWordInput) (*ViewWordOutput, error) {
	if input == nil || input.ChatID == "" || input.Requester.ID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.locker.Lock(input.ChatID)
	defer unlock()

	session, err := s.hostSession(ctx, input.ChatID, input.Requester.ID)
	if err != nil {
		return nil, err
	}

	return &ViewWordOutput{
		Word:       session.Word,
		Difficulty: session.Difficulty,
	}, nil
}

// NextWord replaces the word in place. Host and start time are kept, so
// rotating words never extends the round.
func (s *service) NextWord(ctx context.Context, input *NextWordInput) (*NextWordOutput, error) {
	if input == nil || input.ChatID == "" || input.Requester.ID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.locker.Lock(input.ChatID)
	defer unlock()

	session, err := s.hostSession(ctx, input.ChatID, input.Requester.ID)
	if err != nil {
		return nil, err
	}

	word, err := s.words.Draw(session.Difficulty)
	if err != nil {
		return nil, err
	}

	updated := session.Clone()
	updated.Word = word

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: updated,
	}); err != nil {
		return nil, err
	}

	log.Debug().
		Str("chat_id", input.ChatID).
		Str("round_id", updated.ID).
		Msg("word rotated")

	return &NextWordOutput{
		Word:       updated.Word,
		Difficulty: updated.Difficulty,
	}, nil
}

// SubmitGuess compares a message with the secret word. The host leaks the
// word when the message contains it; anyone else wins only on an exact
// match, which hands the round over to them.
func (s *service) SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error) {
	if input == nil || input.ChatID == "" || input.Requester.ID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.locker.Lock(input.ChatID)
	defer unlock()

	session, err := s.activeSession(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	guess := words.Normalize(input.Text)

	if session.IsHost(input.Requester.ID) {
		if guess != "" && strings.Contains(guess, session.Word) {
			log.Debug().
				Str("chat_id", input.ChatID).
				Str("round_id", session.ID).
				Msg("host revealed the word")
			return &SubmitGuessOutput{Result: GuessHostReveal}, nil
		}
		return &SubmitGuessOutput{Result: GuessNoMatch}, nil
	}

	if input.Requester.IsBot || guess != session.Word {
		return &SubmitGuessOutput{Result: GuessNoMatch}, nil
	}

	word, err := s.words.Draw(session.Difficulty)
	if err != nil {
		return nil, err
	}

	winner := input.Requester
	next := &models.Session{
		ID:         s.uuid.NewUUID(),
		ChatID:     input.ChatID,
		Host:       winner,
		Word:       word,
		Difficulty: session.Difficulty,
		StartedAt:  s.clock.Now(),
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: next,
	}); err != nil {
		return nil, err
	}

	log.Info().
		Str("chat_id", input.ChatID).
		Str("winner_id", winner.ID).
		Str("previous_host_id", session.Host.ID).
		Str("round_id", next.ID).
		Msg("word guessed, turn handed off")

	output := &SubmitGuessOutput{
		Result:     GuessCorrect,
		Winner:     &winner,
		Word:       session.Word,
		NewSession: next,
		Reward:     s.reward,
	}

	rewarded, err := s.ledger.Increment(ctx, &ledger.IncrementInput{
		ChatID: input.ChatID,
		Player: winner,
		Score:  s.reward.Score,
		Coins:  s.reward.Coins,
		XP:     s.reward.XP,
	})
	if err != nil {
		log.Error().Err(err).
			Str("chat_id", input.ChatID).
			Str("winner_id", winner.ID).
			Msg("failed to credit winner")
		output.RewardErr = err
		return output, nil
	}

	output.Record = rewarded.Record
	return output, nil
}

// EndGame deletes the round; only its host may do this
func (s *service) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil || input.ChatID == "" || input.Requester.ID == "" {
		return nil, ErrInvalidInput
	}

	unlock := s.locker.Lock(input.ChatID)
	defer unlock()

	session, err := s.hostSession(ctx, input.ChatID, input.Requester.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		ChatID: input.ChatID,
	}); err != nil {
		return nil, err
	}

	log.Info().
		Str("chat_id", input.ChatID).
		Str("round_id", session.ID).
		Msg("game ended")

	return &EndGameOutput{Session: session}, nil
}

// GetSettings returns the chat settings, defaults included
func (s *service) GetSettings(ctx context.Context, input *GetSettingsInput) (*GetSettingsOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, ErrInvalidInput
	}

	settings, err := s.settingsRepo.GetSettings(ctx, &settingsRepo.GetSettingsInput{
		ChatID: input.ChatID,
	})
	if err != nil {
		return nil, err
	}

	return &GetSettingsOutput{Settings: settings}, nil
}

// SetGameMode changes the tier future rounds draw from. Running rounds
// keep the tier they started with.
func (s *service) SetGameMode(ctx context.Context, input *SetGameModeInput) (*SetGameModeOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, ErrInvalidInput
	}

	if !input.RequesterIsAdmin {
		return nil, ErrNotAdmin
	}

	mode, ok := models.ParseDifficulty(input.Mode)
	if !ok {
		return nil, ErrInvalidDifficulty
	}

	settings, err := s.settingsRepo.UpdateSettings(ctx, &settingsRepo.UpdateSettingsInput{
		ChatID:   input.ChatID,
		GameMode: &mode,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("chat_id", input.ChatID).
		Str("game_mode", string(mode)).
		Msg("game mode changed")

	return &SetGameModeOutput{Settings: settings}, nil
}

// SetLanguage changes the language replies are rendered in
func (s *service) SetLanguage(ctx context.Context, input *SetLanguageInput) (*SetLanguageOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, ErrInvalidInput
	}

	if !input.RequesterIsAdmin {
		return nil, ErrNotAdmin
	}

	language := strings.ToLower(strings.TrimSpace(input.Language))
	if !slices.Contains(SupportedLanguages, language) {
		return nil, ErrInvalidLanguage
	}

	settings, err := s.settingsRepo.UpdateSettings(ctx, &settingsRepo.UpdateSettingsInput{
		ChatID:   input.ChatID,
		Language: &language,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("chat_id", input.ChatID).
		Str("language", language).
		Msg("language changed")

	return &SetLanguageOutput{Settings: settings}, nil
}

// activeSession loads the round of a chat and resolves expiry. A round past
// the timeout is deleted and reported as ErrNoActiveGame. Callers must hold
// the chat lock.
func (s *service) activeSession(ctx context.Context, chatID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		ChatID: chatID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNoActiveGame
		}
		return nil, err
	}

	if !session.IsExpired(s.clock.Now(), s.roundTimeout) {
		return session, nil
	}

	if err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		ChatID: chatID,
	}); err != nil {
		return nil, err
	}

	log.Info().
		Str("chat_id", chatID).
		Str("round_id", session.ID).
		Time("started_at", session.StartedAt).
		Msg("round expired")

	return nil, ErrNoActiveGame
}

// hostSession is activeSession plus the host check
func (s *service) hostSession(ctx context.Context, chatID, userID string) (*models.Session, error) {
	session, err := s.activeSession(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !session.IsHost(userID) {
		return nil, ErrNotHost
	}

	return session, nil
}
