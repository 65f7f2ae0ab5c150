package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/services/game"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
	"github.com/KirkDiggler/crocodile/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// DefaultHandlerTimeout bounds the work done for a single Discord event
const DefaultHandlerTimeout = 10 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	dispatcher *Dispatcher
	commands   map[string]*SlashCommand
	commandIDs map[string]string // Maps command name to command ID
	timeout    time.Duration
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// HandlerTimeout defaults to DefaultHandlerTimeout
	HandlerTimeout time.Duration

	GameService game.Service
	Ledger      ledger.Service
	Messaging   messaging.Service

	// Prefixes for text commands, DefaultPrefixes when empty
	Prefixes []string

	Retry RetryPolicy
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	dispatcher, err := NewDispatcher(&DispatcherConfig{
		GameService: cfg.GameService,
		Ledger:      cfg.Ledger,
		Messaging:   cfg.Messaging,
		Membership:  NewPermissionChecker(session),
		Prefixes:    cfg.Prefixes,
		Retry:       cfg.Retry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	timeout := cfg.HandlerTimeout
	if timeout <= 0 {
		timeout = DefaultHandlerTimeout
	}

	bot := &Bot{
		session:    session,
		dispatcher: dispatcher,
		commands:   make(map[string]*SlashCommand),
		commandIDs: make(map[string]string),
		timeout:    timeout,
		config:     cfg,
	}

	session.AddHandler(bot.handleMessageCreate)
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(NewCrocodileCommand()); err != nil {
		return fmt.Errorf("failed to register %s command: %w", SlashCommandName, err)
	}

	log.Info().Msg("bot is running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
		} else {
			log.Debug().Str("command", cmdName).Str("command_id", cmdID).Msg("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd *SlashCommand) error {
	appID := b.appID()

	// an empty guild ID registers the command globally
	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("guild_id", b.config.GuildID).
		Msg("registered command")

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	mentions := make([]models.Player, 0, len(m.Mentions))
	for _, u := range m.Mentions {
		if u == nil || (s.State.User != nil && u.ID == s.State.User.ID) {
			continue
		}
		mentions = append(mentions, playerFromUser(u))
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	reply, err := b.dispatcher.HandleMessage(ctx, &MessageEvent{
		ChatID:   m.ChannelID,
		Author:   playerFromMember(m.Member, m.Author),
		Content:  m.Content,
		Mentions: mentions,
	})
	if err != nil {
		log.Error().Err(err).Str("chat_id", m.ChannelID).Msg("failed to handle message")
		return
	}
	if reply == nil {
		return
	}

	if _, err := s.ChannelMessageSendComplex(m.ChannelID, renderMessage(reply, m.Message), discordgo.WithContext(ctx)); err != nil {
		log.Error().Err(err).Str("chat_id", m.ChannelID).Msg("failed to send reply")
	}
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// direct messages have no group to guess
	if i.GuildID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	user := playerFromMember(i.Member, i.User)
	if user.ID == "" {
		return
	}

	var (
		reply *Reply
		err   error
	)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if _, registered := b.commands[data.Name]; !registered {
			return
		}
		cmd, ok := commandFromInteraction(data)
		if !ok {
			return
		}
		reply, err = b.dispatcher.HandleCommand(ctx, &CommandEvent{
			ChatID:      i.ChannelID,
			User:        user,
			Command:     cmd,
			Interactive: true,
		})
	case discordgo.InteractionMessageComponent:
		reply, err = b.dispatcher.HandleButton(ctx, &ButtonEvent{
			ChatID:   i.ChannelID,
			User:     user,
			CustomID: i.MessageComponentData().CustomID,
		})
	default:
		return
	}

	if err != nil {
		log.Error().Err(err).Str("chat_id", i.ChannelID).Msg("failed to handle interaction")
		return
	}

	response := b.interactionResponse(i, reply)
	if err := s.InteractionRespond(i.Interaction, response, discordgo.WithContext(ctx)); err != nil {
		log.Error().Err(err).Str("chat_id", i.ChannelID).Msg("failed to respond to interaction")
	}
}

// interactionResponse acknowledges interactions the dispatcher chose not to
// answer, since Discord shows an error for unanswered ones
func (b *Bot) interactionResponse(i *discordgo.InteractionCreate, reply *Reply) *discordgo.InteractionResponse {
	if reply != nil {
		return renderInteractionResponse(reply)
	}

	if i.Type == discordgo.InteractionMessageComponent {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}
	}

	return renderInteractionResponse(&Reply{Content: "🐊", Ephemeral: true})
}
