package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/config"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/report"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/settings"
)

// Bot represents the Discord bot instance
type Bot struct {
	config   *config.Config
	session  *discordgo.Session
	resolver *settings.Resolver
	agg      *report.Aggregator
	commands []*discordgo.ApplicationCommand
}

// New creates a new Bot instance
func New(cfg *config.Config, resolver *settings.Resolver, agg *report.Aggregator) (*Bot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{
		config:   cfg,
		session:  session,
		resolver: resolver,
		agg:      agg,
	}

	// Register command handlers
	b.registerHandlers()

	return b, nil
}

// Session exposes the underlying Discord session for outbound messages
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Start opens the Discord connection and registers slash commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	if b.session != nil {
		return b.session.Close()
	}
	return nil
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "guilds", len(r.Guilds))
	})
}

// handleInteraction processes slash command interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	slog.Debug("Received command", "command", data.Name, "guild", i.GuildID)

	switch data.Name {
	case "setup":
		b.handleSetup(s, i)
	case "dailycount":
		b.handleDailyCount(s, i)
	case "egg":
		b.handleEgg(s, i)
	default:
		slog.Warn("Unknown command", "command", data.Name)
	}
}
