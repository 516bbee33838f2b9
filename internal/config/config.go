// Package config reads engine configuration from the environment.
// cmd/tabby loads .env first via godotenv, so both files and real env work.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/Phazzie/tabbymctabface/internal/quips"
)

// Config is everything the bootstrap needs to wire the engine.
type Config struct {
	StatePath  string
	ContentDir string

	Tier        quips.Level
	MinInterval time.Duration
	HistorySize int

	Sink           string // console, discord, capture
	DiscordToken   string
	DiscordChannel string

	Synthetic       bool
	MCP             bool
	AmbientSchedule string // cron spec, empty disables the ambient trigger
}

// FromEnv builds a config from environment variables with sane defaults.
func FromEnv() Config {
	cfg := Config{
		StatePath:       envOr("STATE_PATH", "state"),
		ContentDir:      envOr("CONTENT_DIR", "content"),
		Tier:            quips.Level(envOr("HUMOR_TIER", string(quips.LevelNormal))),
		MinInterval:     envDuration("HUMOR_MIN_INTERVAL", 5*time.Second),
		HistorySize:     envInt("HUMOR_HISTORY_SIZE", quips.DefaultHistorySize),
		Sink:            envOr("HUMOR_SINK", "console"),
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		DiscordChannel:  os.Getenv("DISCORD_CHANNEL_ID"),
		Synthetic:       os.Getenv("SYNTHETIC") == "true",
		MCP:             os.Getenv("MCP") == "true",
		AmbientSchedule: os.Getenv("AMBIENT_SCHEDULE"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
