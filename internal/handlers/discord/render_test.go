package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
)

type RenderTestSuite struct {
	suite.Suite
}

func TestRenderTestSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func (s *RenderTestSuite) customIDs(components []discordgo.MessageComponent) []string {
	var ids []string
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		s.Require().True(ok)
		for _, inner := range row.Components {
			btn, ok := inner.(discordgo.Button)
			s.Require().True(ok)
			ids = append(ids, btn.CustomID)
		}
	}
	return ids
}

func (s *RenderTestSuite) TestHostControls() {
	s.Equal([]string{ButtonViewWord, ButtonNextWord, ButtonEndGame}, s.customIDs(renderComponents(ButtonsHost)))
	s.Equal([]string{ButtonStartGame}, s.customIDs(renderComponents(ButtonsStart)))
	s.Nil(renderComponents(ButtonsNone))
}

func (s *RenderTestSuite) TestMessageRepliesWithoutPinging() {
	orig := &discordgo.Message{ID: "m1", ChannelID: "chat-1", GuildID: "g1"}

	send := renderMessage(&Reply{Content: "hi", Buttons: ButtonsHost}, orig)
	s.Equal("hi", send.Content)
	s.Require().NotNil(send.Reference)
	s.Equal("m1", send.Reference.MessageID)
	s.Require().NotNil(send.AllowedMentions)
	s.Empty(send.AllowedMentions.Parse)
	s.Len(send.Components, 2)

	s.Nil(renderMessage(&Reply{Content: "hi"}, nil).Reference)
}

func (s *RenderTestSuite) TestInteractionResponse() {
	res := renderInteractionResponse(&Reply{Content: "secret", Ephemeral: true})
	s.Equal(discordgo.InteractionResponseChannelMessageWithSource, res.Type)
	s.Equal(discordgo.MessageFlagsEphemeral, res.Data.Flags)

	res = renderInteractionResponse(&Reply{Content: "public"})
	s.Zero(res.Data.Flags)
}
