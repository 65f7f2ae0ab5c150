package discord

import (
	"strconv"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/bwmarrin/discordgo"
)

// SlashCommandName is the top level slash command
const SlashCommandName = "crocodile"

// SlashCommand describes an application command registered with Discord
type SlashCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption

	// GuildOnly hides the command in direct messages
	GuildOnly bool
}

// GetName returns the name of the command
func (c *SlashCommand) GetName() string {
	return c.Name
}

// GetCommand returns the Discord application command definition
func (c *SlashCommand) GetCommand() *discordgo.ApplicationCommand {
	dmPermission := !c.GuildOnly
	return &discordgo.ApplicationCommand{
		Name:         c.Name,
		Description:  c.Description,
		Options:      c.Options,
		DMPermission: &dmPermission,
	}
}

// NewCrocodileCommand creates the /crocodile command and its subcommands
func NewCrocodileCommand() *SlashCommand {
	minTop := float64(1)

	modeChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.Difficulties))
	for _, d := range models.Difficulties {
		modeChoices = append(modeChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  d.String(),
			Value: d.String(),
		})
	}

	return &SlashCommand{
		Name:        SlashCommandName,
		Description: "Explain the word, let the chat guess it",
		// rounds need a group to guess
		GuildOnly: true,
		Options: []*discordgo.ApplicationCommandOption{
			subCommand(CommandGame, "Start a round and become the host"),
			subCommand(CommandEnd, "End the current round"),
			subCommand(CommandWord, "Show the secret word to the host"),
			subCommand(CommandScore, "Show your score"),
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        CommandTop,
				Description: "Show the chat leaderboard",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "n",
						Description: "How many players to show",
						MinValue:    &minTop,
						MaxValue:    50,
					},
				},
			},
			subCommand(CommandSettings, "Show the chat settings"),
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        CommandSetMode,
				Description: "Change the word difficulty (admins only)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "mode",
						Description: "Word difficulty",
						Required:    true,
						Choices:     modeChoices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        CommandLanguage,
				Description: "Change the bot language (admins only)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "code",
						Description: "Language code",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "English", Value: "en"},
							{Name: "Tamil", Value: "ta"},
							{Name: "Hindi", Value: "hi"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        CommandPay,
				Description: "Give coins to another player",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "amount",
						Description: "Number of coins",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "Who gets the coins",
						Required:    true,
					},
				},
			},
			subCommand(CommandHelp, "How to play"),
			subCommand(CommandPing, "Check the bot is alive"),
		},
	}
}

func subCommand(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
	}
}

// commandFromInteraction converts /crocodile <sub> options into a Command.
// Scalar options become Args in declaration order; user options become Mentions.
func commandFromInteraction(data discordgo.ApplicationCommandInteractionData) (*Command, bool) {
	if data.Name != SlashCommandName || len(data.Options) == 0 {
		return nil, false
	}

	sub := data.Options[0]
	if sub.Type != discordgo.ApplicationCommandOptionSubCommand {
		return nil, false
	}

	cmd := &Command{Name: sub.Name}
	for _, opt := range sub.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionInteger:
			cmd.Args = append(cmd.Args, strconv.FormatInt(opt.IntValue(), 10))
		case discordgo.ApplicationCommandOptionString:
			cmd.Args = append(cmd.Args, opt.StringValue())
		case discordgo.ApplicationCommandOptionUser:
			id, _ := opt.Value.(string)
			if id == "" {
				continue
			}
			cmd.Mentions = append(cmd.Mentions, resolvedPlayer(data.Resolved, id))
		}
	}

	return cmd, true
}

func resolvedPlayer(resolved *discordgo.ApplicationCommandInteractionDataResolved, id string) models.Player {
	if resolved == nil {
		return models.Player{ID: id}
	}

	var player models.Player
	if u, ok := resolved.Users[id]; ok && u != nil {
		player = playerFromUser(u)
	} else {
		player = models.Player{ID: id}
	}

	if m, ok := resolved.Members[id]; ok && m != nil && m.Nick != "" {
		player.DisplayName = m.Nick
	}

	return player
}

// playerFromUser prefers the global display name over the handle
func playerFromUser(u *discordgo.User) models.Player {
	return models.Player{
		ID:          u.ID,
		DisplayName: u.GlobalName,
		Username:    u.Username,
		IsBot:       u.Bot,
	}
}

// playerFromMember applies the server nickname on top of the user
func playerFromMember(m *discordgo.Member, u *discordgo.User) models.Player {
	if u == nil && m != nil {
		u = m.User
	}
	if u == nil {
		return models.Player{}
	}

	player := playerFromUser(u)
	if m != nil && m.Nick != "" {
		player.DisplayName = m.Nick
	}
	return player
}
