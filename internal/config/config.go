package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken string

	// Webhook HTTP server
	HTTPAddr string

	// Database
	DatabasePath string

	// Process-wide fallbacks applied when a guild has no stored setting
	DefaultChannelID      string
	DefaultTimezone       string // token form, e.g. "UTC+8"
	DefaultLossMultiplier float64

	// Daily digest
	DigestEnabled bool

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		HTTPAddr:         getEnvOrDefault("HTTP_ADDR", ":8080"),
		DatabasePath:     getEnvOrDefault("DATABASE_PATH", "./data/bot.db"),
		DefaultChannelID: os.Getenv("DEFAULT_CHANNEL_ID"),
		DefaultTimezone:  getEnvOrDefault("DEFAULT_TIMEZONE", "UTC"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
	}

	lossStr := getEnvOrDefault("DEFAULT_LOSS_MULTIPLIER", "1.0")
	loss, err := strconv.ParseFloat(lossStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LOSS_MULTIPLIER: %w", err)
	}
	if loss <= 0 {
		return nil, fmt.Errorf("DEFAULT_LOSS_MULTIPLIER must be positive, got %v", loss)
	}
	cfg.DefaultLossMultiplier = loss

	digestStr := getEnvOrDefault("DIGEST_ENABLED", "true")
	digest, err := strconv.ParseBool(digestStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DIGEST_ENABLED: %w", err)
	}
	cfg.DigestEnabled = digest

	// Validate required fields
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
