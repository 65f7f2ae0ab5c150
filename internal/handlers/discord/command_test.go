package discord

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommandTestSuite struct {
	suite.Suite
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

func (s *CommandTestSuite) TestParseCommand() {
	testCases := []struct {
		name    string
		content string
		ok      bool
		cmd     string
		args    []string
	}{
		{name: "slash", content: "/game", ok: true, cmd: "game", args: []string{}},
		{name: "dot", content: ".set_mode Hard", ok: true, cmd: "set_mode", args: []string{"Hard"}},
		{name: "upper case", content: "  /TOP 5 ", ok: true, cmd: "top", args: []string{"5"}},
		{name: "bot suffix", content: "/game@CrocodileBot", ok: true, cmd: "game", args: []string{}},
		{name: "pay", content: "/pay 10 <@123>", ok: true, cmd: "pay", args: []string{"10", "<@123>"}},
		{name: "plain text", content: "is it a cat", ok: false},
		{name: "bare prefix", content: "/", ok: false},
		{name: "prefix then space", content: ". ", ok: false},
		{name: "only mention", content: "/@bot", ok: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cmd, ok := ParseCommand(tc.content, DefaultPrefixes)
			s.Equal(tc.ok, ok)
			if !tc.ok {
				s.Nil(cmd)
				return
			}
			s.Equal(tc.cmd, cmd.Name)
			s.Equal(tc.args, cmd.Args)
		})
	}
}

func (s *CommandTestSuite) TestCustomPrefixes() {
	_, ok := ParseCommand("/game", []string{"!"})
	s.False(ok)

	cmd, ok := ParseCommand("!game", []string{"!"})
	s.Require().True(ok)
	s.Equal("game", cmd.Name)
}

func (s *CommandTestSuite) TestArg() {
	cmd := &Command{Name: "pay", Args: []string{"10"}}
	s.Equal("10", cmd.Arg(0))
	s.Empty(cmd.Arg(1))
	s.Empty(cmd.Arg(-1))
}
