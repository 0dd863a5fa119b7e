package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/bot"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/config"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/digest"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/report"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/settings"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/storage"
	"github.com/Dinkybinky2008/Egg-TrackerV2/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	slog.Info("Starting Egg Tracker Bot")

	// Initialize storage
	repo, err := storage.NewRepository(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	defaultOffset, ok := settings.ParseTimezone(cfg.DefaultTimezone)
	if !ok {
		slog.Error("Invalid DEFAULT_TIMEZONE", "token", cfg.DefaultTimezone)
		os.Exit(1)
	}

	resolver := settings.NewResolver(repo, settings.Defaults{
		ChannelID:           cfg.DefaultChannelID,
		TimezoneOffsetHours: defaultOffset,
		LossMultiplier:      cfg.DefaultLossMultiplier,
	})
	agg := report.NewAggregator(repo)

	// Create and start the bot
	b, err := bot.New(cfg, resolver, agg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if err := b.Start(); err != nil {
		slog.Error("Failed to start bot", "error", err)
		os.Exit(1)
	}

	// Start the webhook server
	server := webhook.NewServer(cfg.HTTPAddr, repo, resolver)
	server.Start()

	// Start the daily digest
	var dig *digest.Digest
	if cfg.DigestEnabled {
		dig = digest.New(repo, resolver, agg, b.Session())
		if err := dig.Start(); err != nil {
			slog.Error("Failed to start digest", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Bot is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")

	if dig != nil {
		dig.Stop()
	}
	if err := server.Stop(); err != nil {
		slog.Error("Error stopping webhook server", "error", err)
	}
	if err := b.Stop(); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	slog.Info("Bot stopped")
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
