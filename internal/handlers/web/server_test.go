package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/repositories"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	ledgerMocks "github.com/KirkDiggler/crocodile/internal/services/ledger/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServerTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockLedger *ledgerMocks.MockService
	redisErr   error
	server     *Server
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLedger = ledgerMocks.NewMockService(s.mockCtrl)
	s.redisErr = nil

	srv, err := New(&Config{
		Addr:   ":0",
		Ledger: s.mockLedger,
		Checks: map[string]CheckFunc{
			"redis": func(ctx context.Context) error { return s.redisErr },
		},
	})
	s.Require().NoError(err)
	s.server = srv
}

func (s *ServerTestSuite) do(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *ServerTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{Addr: ":0"})
	s.Error(err)
}

func (s *ServerTestSuite) TestHealthy() {
	s.mockLedger.EXPECT().Ping(gomock.Any()).Return(nil)

	rec := s.do("/health")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "application/json")

	var res healthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.True(res.OK)
	s.Equal(map[string]string{"ledger": "ok", "redis": "ok"}, res.Checks)
}

func (s *ServerTestSuite) TestUnhealthyDependency() {
	s.redisErr = errors.New("connection refused")
	s.mockLedger.EXPECT().Ping(gomock.Any()).Return(nil)

	rec := s.do("/health")
	s.Equal(http.StatusServiceUnavailable, rec.Code)

	var res healthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.False(res.OK)
	s.Equal("unavailable", res.Checks["redis"])
	s.Equal("ok", res.Checks["ledger"])
}

func (s *ServerTestSuite) TestLeaderboard() {
	s.mockLedger.EXPECT().TopN(gomock.Any(), &ledger.TopNInput{ChatID: "chat-1", Limit: 2}).
		Return(&ledger.TopNOutput{Leaderboard: &models.Leaderboard{
			ChatID: "chat-1",
			Entries: []*models.ScoreRecord{
				{ChatID: "chat-1", UserID: "bob", DisplayName: "Bob", Score: 30, Coins: 15, XP: 60},
				{ChatID: "chat-1", UserID: "alice", DisplayName: "Alice", Score: 10, Coins: 5, XP: 20},
			},
		}}, nil)

	rec := s.do("/chats/chat-1/leaderboard?limit=2")
	s.Equal(http.StatusOK, rec.Code)

	var res leaderboardResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	s.Equal("chat-1", res.ChatID)
	s.Require().Len(res.Entries, 2)
	s.Equal(leaderboardEntry{Rank: 1, UserID: "bob", DisplayName: "Bob", Score: 30, Coins: 15, XP: 60}, res.Entries[0])
	s.Equal(2, res.Entries[1].Rank)
}

func (s *ServerTestSuite) TestLeaderboardEmptyChatIsAnEmptyList() {
	s.mockLedger.EXPECT().TopN(gomock.Any(), &ledger.TopNInput{ChatID: "chat-2"}).
		Return(&ledger.TopNOutput{Leaderboard: &models.Leaderboard{ChatID: "chat-2"}}, nil)

	rec := s.do("/chats/chat-2/leaderboard")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"chatId":"chat-2","entries":[]}`, rec.Body.String())
}

func (s *ServerTestSuite) TestLeaderboardErrors() {
	s.Run("bad limit", func() {
		rec := s.do("/chats/chat-1/leaderboard?limit=ten")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("storage down", func() {
		s.mockLedger.EXPECT().TopN(gomock.Any(), gomock.Any()).
			Return(nil, repositories.NewStorageError("top scores", errors.New("disk I/O error")))

		rec := s.do("/chats/chat-1/leaderboard")
		s.Equal(http.StatusServiceUnavailable, rec.Code)
		s.JSONEq(`{"error":"unavailable"}`, rec.Body.String())
	})
}

func (s *ServerTestSuite) TestNotFound() {
	rec := s.do("/nope")
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"not_found"}`, rec.Body.String())
}
