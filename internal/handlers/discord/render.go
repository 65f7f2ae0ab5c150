package discord

import (
	"github.com/bwmarrin/discordgo"
)

// renderComponents builds the button rows of a reply
func renderComponents(buttons ReplyButtons) []discordgo.MessageComponent {
	switch buttons {
	case ButtonsHost:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "See word",
						Style:    discordgo.PrimaryButton,
						CustomID: ButtonViewWord,
						Emoji:    &discordgo.ComponentEmoji{Name: "👀"},
					},
					discordgo.Button{
						Label:    "Next word",
						Style:    discordgo.SecondaryButton,
						CustomID: ButtonNextWord,
						Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "I don't want to host",
						Style:    discordgo.DangerButton,
						CustomID: ButtonEndGame,
						Emoji:    &discordgo.ComponentEmoji{Name: "🙅"},
					},
				},
			},
		}
	case ButtonsStart:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "I want to host",
						Style:    discordgo.SuccessButton,
						CustomID: ButtonStartGame,
						Emoji:    &discordgo.ComponentEmoji{Name: "🙋"},
					},
				},
			},
		}
	default:
		return nil
	}
}

// renderMessage turns a reply to a chat message into a message send
func renderMessage(reply *Reply, replyTo *discordgo.Message) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Content:    reply.Content,
		Components: renderComponents(reply.Buttons),
		// replies never ping the players they name
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}

	if replyTo != nil {
		send.Reference = replyTo.SoftReference()
	}

	return send
}

// renderInteractionResponse turns a reply into an interaction response
func renderInteractionResponse(reply *Reply) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Content:         reply.Content,
		Components:      renderComponents(reply.Buttons),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}

	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}
