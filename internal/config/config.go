package config

import (
	"os"
	"strconv"
	"time"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Redis     RedisConfig
	Discord   DiscordConfig
	Gateway   GatewayConfig
	Catalog   CatalogConfig
	DND5E     DND5EConfig
	Encounter EncounterConfig
	Log       LogConfig
}

// RedisConfig holds Redis-specific configuration. An empty URL selects the
// in-memory repositories and disables the pub/sub channel.
type RedisConfig struct {
	URL           string
	ChannelPrefix string
}

// Enabled reports whether Redis is configured
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// DiscordConfig holds the optional Discord sink configuration
type DiscordConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether the Discord sink should run
func (c DiscordConfig) Enabled() bool {
	return c.Token != ""
}

// GatewayConfig holds the websocket gateway configuration
type GatewayConfig struct {
	Addr string
}

// CatalogConfig points at an optional YAML file merged over the embedded
// reference data
type CatalogConfig struct {
	Path string
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	BaseURL string
}

// EncounterConfig holds encounter storage settings
type EncounterConfig struct {
	TTL time.Duration
}

// LogConfig controls the rotated log file. An empty File logs to stdout only.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	ttl, err := getEnvAsDurationOrDefault("ENCOUNTER_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	maxSize, err := getEnvAsIntOrDefault("LOG_MAX_SIZE_MB", 100)
	if err != nil {
		return nil, err
	}
	maxBackups, err := getEnvAsIntOrDefault("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}
	maxAge, err := getEnvAsIntOrDefault("LOG_MAX_AGE_DAYS", 28)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Redis: RedisConfig{
			URL:           os.Getenv("REDIS_URL"),
			ChannelPrefix: getEnvOrDefault("REDIS_EVENT_CHANNEL_PREFIX", "game:"),
		},
		Discord: DiscordConfig{
			Token:     os.Getenv("DISCORD_TOKEN"),
			ChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		},
		Gateway: GatewayConfig{
			Addr: getEnvOrDefault("GATEWAY_ADDR", ":8080"),
		},
		Catalog: CatalogConfig{
			Path: os.Getenv("CATALOG_PATH"),
		},
		DND5E: DND5EConfig{
			BaseURL: getEnvOrDefault("DND5E_API_URL", "https://www.dnd5eapi.co/api"),
		},
		Encounter: EncounterConfig{TTL: ttl},
		Log: LogConfig{
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  maxSize,
			MaxBackups: maxBackups,
			MaxAgeDays: maxAge,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other
func (c *Config) Validate() error {
	if c.Discord.Enabled() && c.Discord.ChannelID == "" {
		return dnderr.InvalidArgument("DISCORD_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}
	if c.Encounter.TTL < 0 {
		return dnderr.InvalidArgument("ENCOUNTER_TTL cannot be negative")
	}
	if c.Gateway.Addr == "" {
		return dnderr.InvalidArgument("GATEWAY_ADDR cannot be empty")
	}
	if c.Log.MaxSizeMB <= 0 {
		return dnderr.InvalidArgument("LOG_MAX_SIZE_MB must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, dnderr.InvalidArgumentf("%s must be an integer, got %q", key, value)
	}
	return intValue, nil
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, dnderr.InvalidArgumentf("%s must be a duration such as 12h, got %q", key, value)
	}
	return d, nil
}
