package session

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/stretchr/testify/suite"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo *memoryRepository
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = NewMemory()
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}

func (s *MemoryRepositoryTestSuite) TestStoredSessionIsACopy() {
	original := &models.Session{
		ID:        "round-1",
		ChatID:    "7",
		Host:      models.Player{ID: "alice-id", DisplayName: "Alice"},
		Word:      "cat",
		StartedAt: time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: original}))

	original.Word = "dog"

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{ChatID: "7"})
	s.Require().NoError(err)
	s.Equal("cat", retrieved.Word)

	retrieved.Word = "bird"
	again, err := s.repo.GetSession(context.Background(), &GetSessionInput{ChatID: "7"})
	s.Require().NoError(err)
	s.Equal("cat", again.Word)
}

func (s *MemoryRepositoryTestSuite) TestDeleteAndMissing() {
	s.Require().NoError(s.repo.DeleteSession(context.Background(), &DeleteSessionInput{ChatID: "7"}))

	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{ChatID: "7"})
	s.Equal(ErrSessionNotFound, err)
}
