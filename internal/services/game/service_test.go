package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KirkDiggler/crocodile/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/crocodile/internal/common/uuid/mocks"
	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/repositories"
	sessionRepo "github.com/KirkDiggler/crocodile/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/crocodile/internal/repositories/session/mocks"
	settingsRepo "github.com/KirkDiggler/crocodile/internal/repositories/settings"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	ledgerMocks "github.com/KirkDiggler/crocodile/internal/services/ledger/mocks"
	"github.com/KirkDiggler/crocodile/internal/words"
	wordMocks "github.com/KirkDiggler/crocodile/internal/words/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockClock   *mocks.MockClock
	mockUUID    *uuidMocks.MockUUID
	mockWords   *wordMocks.MockDrawer
	mockLedger  *ledgerMocks.MockService
	sessionRepo sessionRepo.Repository
	gameService Service
	ctx         context.Context

	// Test data
	mu         sync.Mutex
	now        time.Time
	startTime  time.Time
	rounds     int
	testChatID string
	alice      models.Player
	bob        models.Player
	carol      models.Player
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockWords = wordMocks.NewMockDrawer(s.mockCtrl)
	s.mockLedger = ledgerMocks.NewMockService(s.mockCtrl)
	s.sessionRepo = sessionRepo.NewMemory()
	s.ctx = context.Background()

	s.startTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.now = s.startTime
	s.rounds = 0
	s.testChatID = "7"
	s.alice = models.Player{ID: "alice-id", DisplayName: "Alice", Username: "alice"}
	s.bob = models.Player{ID: "bob-id", DisplayName: "Bob"}
	s.carol = models.Player{ID: "carol-id", DisplayName: "Carol"}

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.now
	}).AnyTimes()

	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rounds++
		return fmt.Sprintf("round-%d", s.rounds)
	}).AnyTimes()

	svc, err := New(&Config{
		RoundTimeout: DefaultRoundTimeout,
		Reward:       DefaultReward,
		SessionRepo:  s.sessionRepo,
		SettingsRepo: settingsRepo.NewMemory(settingsRepo.Defaults{}),
		Ledger:       s.mockLedger,
		Words:        s.mockWords,
		Clock:        s.mockClock,
		UUID:         s.mockUUID,
	})
	s.Require().NoError(err)
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *GameServiceTestSuite) storedSession() *models.Session {
	session, err := s.sessionRepo.GetSession(s.ctx, &sessionRepo.GetSessionInput{ChatID: s.testChatID})
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil
	}
	s.Require().NoError(err)
	return session
}

// startWithAlice opens a round hosted by Alice with the word "cat"
func (s *GameServiceTestSuite) startWithAlice() *models.Session {
	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("cat", nil)

	out, err := s.gameService.StartGame(s.ctx, &StartGameInput{
		ChatID:    s.testChatID,
		Requester: s.alice,
	})
	s.Require().NoError(err)
	return out.Session
}

func (s *GameServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilSessionRepo)

	_, err = New(&Config{
		SessionRepo:  s.sessionRepo,
		SettingsRepo: settingsRepo.NewMemory(settingsRepo.Defaults{}),
		Ledger:       s.mockLedger,
		Words:        s.mockWords,
		Clock:        s.mockClock,
		UUID:         s.mockUUID,
		Reward:       Reward{Coins: -1},
	})
	s.ErrorIs(err, ErrInvalidReward)
}

func (s *GameServiceTestSuite) TestStartGameAndViewWord() {
	session := s.startWithAlice()

	s.Equal("round-1", session.ID)
	s.Equal(s.alice, session.Host)
	s.Equal("cat", session.Word)
	s.Equal(models.DifficultyEasy, session.Difficulty)
	s.Equal(s.startTime, session.StartedAt)

	view, err := s.gameService.ViewWord(s.ctx, &ViewWordInput{ChatID: s.testChatID, Requester: s.alice})
	s.Require().NoError(err)
	s.Equal("cat", view.Word)

	_, err = s.gameService.ViewWord(s.ctx, &ViewWordInput{ChatID: s.testChatID, Requester: s.bob})
	s.ErrorIs(err, ErrNotHost)
}

func (s *GameServiceTestSuite) TestStartGameWhileRunning() {
	s.startWithAlice()

	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ChatID: s.testChatID, Requester: s.carol})
	s.Require().ErrorIs(err, ErrGameAlreadyRunning)

	var running *GameAlreadyRunningError
	s.Require().True(errors.As(err, &running))
	s.Equal("Alice", running.HostName())

	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ChatID: s.testChatID, Requester: s.alice})
	s.ErrorIs(err, ErrGameAlreadyRunning, "the host cannot restart a running round either")

	s.Equal(s.alice.ID, s.storedSession().Host.ID)
}

func (s *GameServiceTestSuite) TestStartGameRejectsBots() {
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{
		ChatID:    s.testChatID,
		Requester: models.Player{ID: "bot-id", IsBot: true},
	})
	s.ErrorIs(err, ErrRequesterIsBot)
	s.Nil(s.storedSession())
}

func (s *GameServiceTestSuite) TestStartGameUsesChatGameMode() {
	_, err := s.gameService.SetGameMode(s.ctx, &SetGameModeInput{
		ChatID:           s.testChatID,
		Mode:             "Hard",
		RequesterIsAdmin: true,
	})
	s.Require().NoError(err)

	s.mockWords.EXPECT().Draw(models.DifficultyHard).Return("encyclopedia", nil)

	out, err := s.gameService.StartGame(s.ctx, &StartGameInput{ChatID: s.testChatID, Requester: s.alice})
	s.Require().NoError(err)
	s.Equal(models.DifficultyHard, out.Session.Difficulty)
}

func (s *GameServiceTestSuite) TestStartGameEmptyWordList() {
	s.mockWords.EXPECT().
		Draw(models.DifficultyEasy).
		Return("", fmt.Errorf("%w: %s", words.ErrEmptyWordList, models.DifficultyEasy))

	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ChatID: s.testChatID, Requester: s.alice})
	s.ErrorIs(err, words.ErrEmptyWordList)
	s.Nil(s.storedSession())
}

func (s *GameServiceTestSuite) TestCorrectGuessHandsOffTurn() {
	s.startWithAlice()
	s.advance(42 * time.Second)

	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("cat", nil)
	s.mockLedger.EXPECT().
		Increment(s.ctx, &ledger.IncrementInput{
			ChatID: s.testChatID,
			Player: s.bob,
			Score:  10,
			Coins:  5,
			XP:     20,
		}).
		Return(&ledger.IncrementOutput{
			Record: &models.ScoreRecord{ChatID: s.testChatID, UserID: s.bob.ID, Score: 10, Coins: 5, XP: 20},
		}, nil)

	out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		ChatID:    s.testChatID,
		Requester: s.bob,
		Text:      "cat",
	})
	s.Require().NoError(err)
	s.Equal(GuessCorrect, out.Result)
	s.Equal(s.bob, *out.Winner)
	s.Equal("cat", out.Word)
	s.Equal("cat", out.NewSession.Word)
	s.Equal(DefaultReward, out.Reward)
	s.Equal(int64(10), out.Record.Score)
	s.NoError(out.RewardErr)

	stored := s.storedSession()
	s.Require().NotNil(stored)
	s.Equal(s.bob.ID, stored.Host.ID)
	s.Equal("round-2", stored.ID)
	s.Equal(s.startTime.Add(42*time.Second), stored.StartedAt)
}

func (s *GameServiceTestSuite) TestGuessMatching() {
	s.startWithAlice()

	testCases := []struct {
		name string
		text string
	}{
		{name: "substring", text: "is it a cat"},
		{name: "plural", text: "cats"},
		{name: "empty", text: "   "},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
				ChatID:    s.testChatID,
				Requester: s.bob,
				Text:      tc.text,
			})
			s.Require().NoError(err)
			s.Equal(GuessNoMatch, out.Result)
		})
	}

	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("dog", nil)
	s.mockLedger.EXPECT().Increment(s.ctx, gomock.Any()).Return(&ledger.IncrementOutput{
		Record: &models.ScoreRecord{},
	}, nil)

	out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		ChatID:    s.testChatID,
		Requester: s.bob,
		Text:      "  CAT ",
	})
	s.Require().NoError(err)
	s.Equal(GuessCorrect, out.Result)
}

func (s *GameServiceTestSuite) TestBotGuessesNeverWin() {
	s.startWithAlice()

	out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		ChatID:    s.testChatID,
		Requester: models.Player{ID: "bot-id", IsBot: true},
		Text:      "cat",
	})
	s.Require().NoError(err)
	s.Equal(GuessNoMatch, out.Result)
	s.Equal(s.alice.ID, s.storedSession().Host.ID)
}

func (s *GameServiceTestSuite) TestHostRevealKeepsSession() {
	before := s.startWithAlice()

	out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		ChatID:    s.testChatID,
		Requester: s.alice,
		Text:      "the word is CAT",
	})
	s.Require().NoError(err)
	s.Equal(GuessHostReveal, out.Result)
	s.Nil(out.NewSession)
	s.Equal(before, s.storedSession())

	out, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{
		ChatID:    s.testChatID,
		Requester: s.alice,
		Text:      "it purrs",
	})
	s.Require().NoError(err)
	s.Equal(GuessNoMatch, out.Result)
}

func (s *GameServiceTestSuite) TestNextWordKeepsHostAndStart() {
	before := s.startWithAlice()
	s.advance(time.Minute)

	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("dog", nil)

	out, err := s.gameService.NextWord(s.ctx, &NextWordInput{ChatID: s.testChatID, Requester: s.alice})
	s.Require().NoError(err)
	s.Equal("dog", out.Word)

	after := s.storedSession()
	s.Equal("dog", after.Word)
	s.Equal(before.Host, after.Host)
	s.Equal(before.StartedAt, after.StartedAt)
	s.Equal(before.ID, after.ID)
}

func (s *GameServiceTestSuite) TestNextWordDrawsFromSessionTier() {
	s.startWithAlice()

	_, err := s.gameService.SetGameMode(s.ctx, &SetGameModeInput{
		ChatID:           s.testChatID,
		Mode:             "adult",
		RequesterIsAdmin: true,
	})
	s.Require().NoError(err)

	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("dog", nil)

	_, err = s.gameService.NextWord(s.ctx, &NextWordInput{ChatID: s.testChatID, Requester: s.alice})
	s.Require().NoError(err)
}

func (s *GameServiceTestSuite) TestNextWordRequiresHost() {
	s.startWithAlice()

	_, err := s.gameService.NextWord(s.ctx, &NextWordInput{ChatID: s.testChatID, Requester: s.bob})
	s.ErrorIs(err, ErrNotHost)
	s.Equal("cat", s.storedSession().Word)
}

func (s *GameServiceTestSuite) TestEndGameTwice() {
	s.startWithAlice()

	out, err := s.gameService.EndGame(s.ctx, &EndGameInput{ChatID: s.testChatID, Requester: s.alice})
	s.Require().NoError(err)
	s.Equal("cat", out.Session.Word)
	s.Nil(s.storedSession())

	_, err = s.gameService.EndGame(s.ctx, &EndGameInput{ChatID: s.testChatID, Requester: s.alice})
	s.ErrorIs(err, ErrNoActiveGame)
}

func (s *GameServiceTestSuite) TestEndGameRequiresHost() {
	s.startWithAlice()

	_, err := s.gameService.EndGame(s.ctx, &EndGameInput{ChatID: s.testChatID, Requester: s.bob})
	s.ErrorIs(err, ErrNotHost)
	s.NotNil(s.storedSession())
}

func (s *GameServiceTestSuite) TestExpiredSessionIsGone() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "view word",
			call: func() error {
				_, err := s.gameService.ViewWord(s.ctx, &ViewWordInput{ChatID: s.testChatID, Requester: s.alice})
				return err
			},
		},
		{
			name: "next word",
			call: func() error {
				_, err := s.gameService.NextWord(s.ctx, &NextWordInput{ChatID: s.testChatID, Requester: s.alice})
				return err
			},
		},
		{
			name: "submit guess",
			call: func() error {
				_, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ChatID: s.testChatID, Requester: s.bob, Text: "cat"})
				return err
			},
		},
		{
			name: "end game",
			call: func() error {
				_, err := s.gameService.EndGame(s.ctx, &EndGameInput{ChatID: s.testChatID, Requester: s.alice})
				return err
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.startWithAlice()
			s.advance(301 * time.Second)

			s.ErrorIs(tc.call(), ErrNoActiveGame)
			s.Nil(s.storedSession(), "expired session is deleted by the first call")
		})
	}
}

func (s *GameServiceTestSuite) TestSessionExpiresAtTimeout() {
	s.startWithAlice()

	s.advance(DefaultRoundTimeout - time.Second)
	_, err := s.gameService.ViewWord(s.ctx, &ViewWordInput{ChatID: s.testChatID, Requester: s.alice})
	s.Require().NoError(err)

	s.advance(time.Second)
	_, err = s.gameService.ViewWord(s.ctx, &ViewWordInput{ChatID: s.testChatID, Requester: s.alice})
	s.ErrorIs(err, ErrNoActiveGame)
}

func (s *GameServiceTestSuite) TestStartGameReplacesExpiredSession() {
	s.startWithAlice()
	s.advance(10 * time.Minute)

	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("dog", nil)

	out, err := s.gameService.StartGame(s.ctx, &StartGameInput{ChatID: s.testChatID, Requester: s.carol})
	s.Require().NoError(err)
	s.Equal(s.carol, out.Session.Host)
	s.Equal("dog", s.storedSession().Word)
}

func (s *GameServiceTestSuite) TestRewardFailureIsReported() {
	s.startWithAlice()

	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("dog", nil)
	s.mockLedger.EXPECT().
		Increment(s.ctx, gomock.Any()).
		Return(nil, repositories.NewStorageError("increment score", errors.New("database is locked")))

	out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ChatID: s.testChatID, Requester: s.bob, Text: "cat"})
	s.Require().NoError(err)
	s.Equal(GuessCorrect, out.Result)
	s.ErrorIs(out.RewardErr, repositories.ErrStorageUnavailable)
	s.Nil(out.Record)
	s.Equal(s.bob.ID, s.storedSession().Host.ID)
}

func (s *GameServiceTestSuite) TestConcurrentCorrectGuessesHaveOneWinner() {
	s.startWithAlice()

	s.mockWords.EXPECT().Draw(models.DifficultyEasy).Return("dog", nil).Times(1)
	s.mockLedger.EXPECT().Increment(s.ctx, gomock.Any()).Return(&ledger.IncrementOutput{
		Record: &models.ScoreRecord{},
	}, nil).Times(1)

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)
	for _, guesser := range []models.Player{s.bob, s.carol} {
		wg.Add(1)
		go func(p models.Player) {
			defer wg.Done()
			out, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ChatID: s.testChatID, Requester: p, Text: "cat"})
			if err == nil && out.Result == GuessCorrect {
				winners.Add(1)
			}
		}(guesser)
	}
	wg.Wait()

	s.Equal(int32(1), winners.Load())
	s.Equal("dog", s.storedSession().Word)
}

func (s *GameServiceTestSuite) TestStorageFailureIsReturned() {
	mockSessions := sessionMocks.NewMockRepository(s.mockCtrl)
	svc, err := New(&Config{
		Reward:       DefaultReward,
		SessionRepo:  mockSessions,
		SettingsRepo: settingsRepo.NewMemory(settingsRepo.Defaults{}),
		Ledger:       s.mockLedger,
		Words:        s.mockWords,
		Clock:        s.mockClock,
		UUID:         s.mockUUID,
	})
	s.Require().NoError(err)

	mockSessions.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{ChatID: s.testChatID}).
		Return(nil, repositories.NewStorageError("get session", errors.New("connection refused")))

	_, err = svc.StartGame(s.ctx, &StartGameInput{ChatID: s.testChatID, Requester: s.alice})
	s.ErrorIs(err, repositories.ErrStorageUnavailable)
	s.NotErrorIs(err, ErrNoActiveGame)
}

func (s *GameServiceTestSuite) TestSettings() {
	_, err := s.gameService.SetGameMode(s.ctx, &SetGameModeInput{ChatID: s.testChatID, Mode: "hard"})
	s.ErrorIs(err, ErrNotAdmin)

	_, err = s.gameService.SetGameMode(s.ctx, &SetGameModeInput{ChatID: s.testChatID, Mode: "extreme", RequesterIsAdmin: true})
	s.ErrorIs(err, ErrInvalidDifficulty)

	_, err = s.gameService.SetLanguage(s.ctx, &SetLanguageInput{ChatID: s.testChatID, Language: "fr", RequesterIsAdmin: true})
	s.ErrorIs(err, ErrInvalidLanguage)

	_, err = s.gameService.SetLanguage(s.ctx, &SetLanguageInput{ChatID: s.testChatID, Language: "ta"})
	s.ErrorIs(err, ErrNotAdmin)

	lang, err := s.gameService.SetLanguage(s.ctx, &SetLanguageInput{ChatID: s.testChatID, Language: " TA ", RequesterIsAdmin: true})
	s.Require().NoError(err)
	s.Equal("ta", lang.Settings.Language)
	s.Equal(models.DifficultyEasy, lang.Settings.GameMode)

	got, err := s.gameService.GetSettings(s.ctx, &GetSettingsInput{ChatID: s.testChatID})
	s.Require().NoError(err)
	s.Equal("ta", got.Settings.Language)
}
