package main

import (
	"testing"
	"time"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	cfg *Config
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.cfg = &Config{
		discordToken:    "token",
		prefixes:        []string{"/", "."},
		roundTimeout:    5 * time.Minute,
		rewardScore:     10,
		rewardCoins:     5,
		rewardXP:        20,
		defaultLanguage: "en",
		defaultMode:     "easy",
	}
}

func (s *ConfigTestSuite) TestValid() {
	s.NoError(s.cfg.validate())
}

func (s *ConfigTestSuite) TestDefaultModeIsNormalized() {
	testCases := []struct {
		input    string
		expected models.Difficulty
	}{
		{input: "HARD", expected: models.DifficultyHard},
		{input: " Adult ", expected: models.DifficultyAdult},
		{input: "easy", expected: models.DifficultyEasy},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			s.SetupTest()
			s.cfg.defaultMode = tc.input

			s.Require().NoError(s.cfg.validate())
			s.Equal(string(tc.expected), s.cfg.defaultMode)
			s.True(models.Difficulty(s.cfg.defaultMode).IsValid())
		})
	}
}

func (s *ConfigTestSuite) TestDefaultLanguageIsNormalized() {
	s.cfg.defaultLanguage = "TA"
	s.Require().NoError(s.cfg.validate())
	s.Equal("ta", s.cfg.defaultLanguage)
}

func (s *ConfigTestSuite) TestInvalid() {
	testCases := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "missing token", modify: func(c *Config) { c.discordToken = "" }},
		{name: "unknown mode", modify: func(c *Config) { c.defaultMode = "nightmare" }},
		{name: "unknown language", modify: func(c *Config) { c.defaultLanguage = "fr" }},
		{name: "zero timeout", modify: func(c *Config) { c.roundTimeout = 0 }},
		{name: "negative reward", modify: func(c *Config) { c.rewardCoins = -1 }},
		{name: "no prefixes", modify: func(c *Config) { c.prefixes = nil }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.modify(s.cfg)
			s.Error(s.cfg.validate())
		})
	}
}
