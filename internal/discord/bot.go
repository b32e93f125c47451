package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/radutopala/switchboard/internal/interaction"
	"github.com/radutopala/switchboard/internal/router"
)

// DiscordSession abstracts the discordgo.Session methods used by the bot,
// enabling test mocking.
type DiscordSession interface {
	Open() error
	Close() error
	AddHandler(handler any) func()
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommands(appID string, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID string, guildID string, cmdID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Dispatcher routes a raw interaction to its handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, resp router.Responder, i *discordgo.Interaction) error
}

// DiscordBot connects to the gateway and feeds interactions to a Dispatcher.
type DiscordBot struct {
	session        DiscordSession
	appID          string
	guildID        string
	dispatcher     Dispatcher
	logger         *slog.Logger
	botUserID      string
	mu             sync.RWMutex
	removeHandlers []func()
}

// NewBot creates a new DiscordBot. An empty guildID registers commands
// globally.
func NewBot(session DiscordSession, appID, guildID string, dispatcher Dispatcher, logger *slog.Logger) *DiscordBot {
	return &DiscordBot{
		session:    session,
		appID:      appID,
		guildID:    guildID,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start opens the Discord session and resolves the bot user ID.
func (b *DiscordBot) Start(ctx context.Context) error {
	rh := b.session.AddHandler(b.handleInteraction)
	b.mu.Lock()
	b.removeHandlers = append(b.removeHandlers, rh)
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord session open: %w", err)
	}

	user, err := b.session.User("@me")
	if err != nil {
		return fmt.Errorf("discord get bot user: %w", err)
	}
	b.mu.Lock()
	b.botUserID = user.ID
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "discord bot started", "bot_user_id", user.ID)
	return nil
}

// Stop closes the Discord session and removes event handlers.
func (b *DiscordBot) Stop() error {
	b.mu.Lock()
	handlers := b.removeHandlers
	b.removeHandlers = nil
	b.mu.Unlock()

	for _, remove := range handlers {
		remove()
	}

	return b.session.Close()
}

// RegisterCommands registers the bot's application commands with Discord.
func (b *DiscordBot) RegisterCommands(ctx context.Context) error {
	for _, cmd := range Commands() {
		created, err := b.session.ApplicationCommandCreate(b.appID, b.guildID, cmd)
		if err != nil {
			return fmt.Errorf("discord register command %q: %w", cmd.Name, err)
		}
		b.logger.InfoContext(ctx, "registered command", "name", created.Name, "id", created.ID)
	}
	return nil
}

// RemoveCommands removes all registered application commands from Discord.
func (b *DiscordBot) RemoveCommands(ctx context.Context) error {
	cmds, err := b.session.ApplicationCommands(b.appID, b.guildID)
	if err != nil {
		return fmt.Errorf("discord list commands: %w", err)
	}
	for _, cmd := range cmds {
		if err := b.session.ApplicationCommandDelete(b.appID, b.guildID, cmd.ID); err != nil {
			return fmt.Errorf("discord delete command %q: %w", cmd.Name, err)
		}
		b.logger.InfoContext(ctx, "removed command", "name", cmd.Name, "id", cmd.ID)
	}
	return nil
}

// BotUserID returns the bot's Discord user ID.
func (b *DiscordBot) BotUserID() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.botUserID
}

func (b *DiscordBot) handleInteraction(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic == nil || ic.Interaction == nil {
		return
	}

	logger := b.logger.With(
		"interaction_id", ic.ID,
		"variant", interaction.Classify(ic.Interaction).String(),
		"user_id", router.UserID(ic.Interaction),
	)

	err := b.dispatcher.Dispatch(context.Background(), b.session, ic.Interaction)
	switch {
	case err == nil:
		logger.Debug("interaction handled")
	case errors.Is(err, router.ErrNoHandler):
		logger.Debug("interaction ignored", "error", err)
	case errors.Is(err, router.ErrRateLimited):
		logger.Info("interaction rate limited")
	default:
		logger.Error("handling interaction", "error", err)
	}
}
