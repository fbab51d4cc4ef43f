package config

import (
	"testing"
	"time"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"REDIS_URL", "REDIS_EVENT_CHANNEL_PREFIX", "DISCORD_TOKEN", "DISCORD_CHANNEL_ID",
	"GATEWAY_ADDR", "CATALOG_PATH", "DND5E_API_URL", "ENCOUNTER_TTL",
	"LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS",
}

func clearEnv(t *testing.T) {
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "game:", cfg.Redis.ChannelPrefix)
	assert.False(t, cfg.Discord.Enabled())
	assert.Equal(t, ":8080", cfg.Gateway.Addr)
	assert.Equal(t, "https://www.dnd5eapi.co/api", cfg.DND5E.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.Encounter.TTL)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_EVENT_CHANNEL_PREFIX", "table:")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "123")
	t.Setenv("ENCOUNTER_TTL", "90m")
	t.Setenv("LOG_FILE", "/tmp/engine.log")
	t.Setenv("LOG_MAX_BACKUPS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "table:", cfg.Redis.ChannelPrefix)
	assert.True(t, cfg.Discord.Enabled())
	assert.Equal(t, "123", cfg.Discord.ChannelID)
	assert.Equal(t, 90*time.Minute, cfg.Encounter.TTL)
	assert.Equal(t, "/tmp/engine.log", cfg.Log.File)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "discord token without channel", env: map[string]string{"DISCORD_TOKEN": "token"}},
		{name: "bad ttl", env: map[string]string{"ENCOUNTER_TTL": "tomorrow"}},
		{name: "negative ttl", env: map[string]string{"ENCOUNTER_TTL": "-1h"}},
		{name: "bad log size", env: map[string]string{"LOG_MAX_SIZE_MB": "big"}},
		{name: "zero log size", env: map[string]string{"LOG_MAX_SIZE_MB": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, dnderr.IsInvalidArgument(err))
		})
	}
}
