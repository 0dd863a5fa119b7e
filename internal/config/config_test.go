package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "UTC", cfg.DefaultTimezone)
	require.Equal(t, 1.0, cfg.DefaultLossMultiplier)
	require.True(t, cfg.DigestEnabled)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadMultiplier(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DEFAULT_LOSS_MULTIPLIER", "-2")

	_, err := Load()
	require.Error(t, err)
}
