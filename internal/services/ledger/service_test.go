package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/repositories"
	scoreRepo "github.com/KirkDiggler/crocodile/internal/repositories/score"
	scoreMocks "github.com/KirkDiggler/crocodile/internal/repositories/score/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockScoreRepo *scoreMocks.MockRepository
	ledgerService Service
	ctx           context.Context

	testChatID string
	alice      models.Player
	bob        models.Player
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockScoreRepo = scoreMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	s.testChatID = "7"
	s.alice = models.Player{ID: "alice-id", DisplayName: "Alice"}
	s.bob = models.Player{ID: "bob-id", Username: "bob"}

	svc, err := New(&Config{ScoreRepo: s.mockScoreRepo})
	s.Require().NoError(err)
	s.ledgerService = svc
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilScoreRepo)
}

func (s *LedgerServiceTestSuite) TestIncrement() {
	expected := &models.ScoreRecord{ChatID: s.testChatID, UserID: s.bob.ID, Score: 10, Coins: 5, XP: 20}
	s.mockScoreRepo.EXPECT().
		Increment(s.ctx, &scoreRepo.IncrementInput{
			ChatID:      s.testChatID,
			UserID:      s.bob.ID,
			DisplayName: "bob",
			Score:       10,
			Coins:       5,
			XP:          20,
		}).
		Return(expected, nil)

	out, err := s.ledgerService.Increment(s.ctx, &IncrementInput{
		ChatID: s.testChatID,
		Player: s.bob,
		Score:  10,
		Coins:  5,
		XP:     20,
	})
	s.Require().NoError(err)
	s.Equal(expected, out.Record)
}

func (s *LedgerServiceTestSuite) TestIncrementRejectsNegativeDelta() {
	_, err := s.ledgerService.Increment(s.ctx, &IncrementInput{
		ChatID: s.testChatID,
		Player: s.bob,
		XP:     -1,
	})
	s.ErrorIs(err, ErrNegativeDelta)
}

func (s *LedgerServiceTestSuite) TestIncrementPassesStorageErrors() {
	storageErr := repositories.NewStorageError("increment score", errors.New("disk full"))
	s.mockScoreRepo.EXPECT().Increment(s.ctx, gomock.Any()).Return(nil, storageErr)

	_, err := s.ledgerService.Increment(s.ctx, &IncrementInput{ChatID: s.testChatID, Player: s.bob, Score: 1})
	s.ErrorIs(err, repositories.ErrStorageUnavailable)
}

func (s *LedgerServiceTestSuite) TestTransfer() {
	s.mockScoreRepo.EXPECT().
		Transfer(s.ctx, &scoreRepo.TransferInput{
			ChatID:        s.testChatID,
			FromUserID:    s.alice.ID,
			ToUserID:      s.bob.ID,
			ToDisplayName: "bob",
			Amount:        3,
		}).
		Return(&scoreRepo.TransferOutput{
			From: &models.ScoreRecord{UserID: s.alice.ID, Coins: 2},
			To:   &models.ScoreRecord{UserID: s.bob.ID, Coins: 3},
		}, nil)

	out, err := s.ledgerService.Transfer(s.ctx, &TransferInput{
		ChatID: s.testChatID,
		From:   s.alice,
		To:     s.bob,
		Amount: 3,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), out.From.Coins)
	s.Equal(int64(3), out.To.Coins)
}

func (s *LedgerServiceTestSuite) TestTransferInsufficientFunds() {
	s.mockScoreRepo.EXPECT().Transfer(s.ctx, gomock.Any()).Return(nil, scoreRepo.ErrInsufficientFunds)

	_, err := s.ledgerService.Transfer(s.ctx, &TransferInput{
		ChatID: s.testChatID,
		From:   s.alice,
		To:     s.bob,
		Amount: 100,
	})
	s.ErrorIs(err, ErrInsufficientFunds)
}

func (s *LedgerServiceTestSuite) TestTransferValidation() {
	_, err := s.ledgerService.Transfer(s.ctx, &TransferInput{ChatID: s.testChatID, From: s.alice, To: s.bob})
	s.ErrorIs(err, ErrInvalidAmount)

	_, err = s.ledgerService.Transfer(s.ctx, &TransferInput{ChatID: s.testChatID, From: s.alice, To: s.alice, Amount: 1})
	s.ErrorIs(err, ErrSelfTransfer)

	_, err = s.ledgerService.Transfer(s.ctx, &TransferInput{ChatID: s.testChatID, From: s.alice, Amount: 1})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *LedgerServiceTestSuite) TestTopNLimits() {
	testCases := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "default", limit: 0, expected: DefaultTopN},
		{name: "negative", limit: -4, expected: DefaultTopN},
		{name: "explicit", limit: 3, expected: 3},
		{name: "capped", limit: 500, expected: MaxTopN},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockScoreRepo.EXPECT().
				TopN(s.ctx, &scoreRepo.TopNInput{ChatID: s.testChatID, Limit: tc.expected}).
				Return([]*models.ScoreRecord{{UserID: s.bob.ID, Score: 10}}, nil)

			out, err := s.ledgerService.TopN(s.ctx, &TopNInput{ChatID: s.testChatID, Limit: tc.limit})
			s.Require().NoError(err)
			s.Equal(s.testChatID, out.Leaderboard.ChatID)
			s.Len(out.Leaderboard.Entries, 1)
		})
	}
}

func (s *LedgerServiceTestSuite) TestGetScore() {
	s.mockScoreRepo.EXPECT().
		GetScore(s.ctx, &scoreRepo.GetScoreInput{ChatID: s.testChatID, UserID: s.bob.ID}).
		Return(&models.ScoreRecord{ChatID: s.testChatID, UserID: s.bob.ID}, nil)

	out, err := s.ledgerService.GetScore(s.ctx, &GetScoreInput{ChatID: s.testChatID, UserID: s.bob.ID})
	s.Require().NoError(err)
	s.Zero(out.Record.Score)

	_, err = s.ledgerService.GetScore(s.ctx, &GetScoreInput{ChatID: s.testChatID})
	s.ErrorIs(err, ErrInvalidInput)
}
