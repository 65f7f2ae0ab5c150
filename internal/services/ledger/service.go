package ledger

import (
	"context"
	"errors"

	"github.com/KirkDiggler/crocodile/internal/models"
	scoreRepo "github.com/KirkDiggler/crocodile/internal/repositories/score"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	scoreRepo scoreRepo.Repository
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ScoreRepo == nil {
		return nil, ErrNilScoreRepo
	}

	return &service{
		scoreRepo: cfg.ScoreRepo,
	}, nil
}

// GetScore returns a player's totals, zeroed if they never scored
func (s *service) GetScore(ctx context.Context, input *GetScoreInput) (*GetScoreOutput, error) {
	if input == nil || input.ChatID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	record, err := s.scoreRepo.GetScore(ctx, &scoreRepo.GetScoreInput{
		ChatID: input.ChatID,
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	return &GetScoreOutput{Record: record}, nil
}

// Increment adds non-negative deltas to a player's record
func (s *service) Increment(ctx context.Context, input *IncrementInput) (*IncrementOutput, error) {
	if input == nil || input.ChatID == "" || input.Player.ID == "" {
		return nil, ErrInvalidInput
	}

	if input.Score < 0 || input.Coins < 0 || input.XP < 0 {
		return nil, ErrNegativeDelta
	}

	record, err := s.scoreRepo.Increment(ctx, &scoreRepo.IncrementInput{
		ChatID:      input.ChatID,
		UserID:      input.Player.ID,
		DisplayName: input.Player.Name(),
		Score:       input.Score,
		Coins:       input.Coins,
		XP:          input.XP,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("chat_id", input.ChatID).
		Str("user_id", input.Player.ID).
		Int64("score", record.Score).
		Msg("score incremented")

	return &IncrementOutput{Record: record}, nil
}

// Transfer moves coins; both records stay untouched when funds are short
func (s *service) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if input == nil || input.ChatID == "" || input.From.ID == "" || input.To.ID == "" {
		return nil, ErrInvalidInput
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if input.From.ID == input.To.ID {
		return nil, ErrSelfTransfer
	}

	out, err := s.scoreRepo.Transfer(ctx, &scoreRepo.TransferInput{
		ChatID:        input.ChatID,
		FromUserID:    input.From.ID,
		ToUserID:      input.To.ID,
		ToDisplayName: input.To.Name(),
		Amount:        input.Amount,
	})
	if err != nil {
		if errors.Is(err, scoreRepo.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	log.Info().
		Str("chat_id", input.ChatID).
		Str("from", input.From.ID).
		Str("to", input.To.ID).
		Int64("amount", input.Amount).
		Msg("coins transferred")

	return &TransferOutput{From: out.From, To: out.To}, nil
}

// TopN returns the leaderboard sorted by score, oldest record first on ties
func (s *service) TopN(ctx context.Context, input *TopNInput) (*TopNOutput, error) {
	if input == nil || input.ChatID == "" {
		return nil, ErrInvalidInput
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultTopN
	}
	if limit > MaxTopN {
		limit = MaxTopN
	}

	records, err := s.scoreRepo.TopN(ctx, &scoreRepo.TopNInput{
		ChatID: input.ChatID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &TopNOutput{
		Leaderboard: &models.Leaderboard{
			ChatID:  input.ChatID,
			Entries: records,
		},
	}, nil
}

// Ping checks the backing store
func (s *service) Ping(ctx context.Context) error {
	return s.scoreRepo.Ping(ctx)
}
