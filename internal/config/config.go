// Package config reads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	Port       string `env:"PORT" envDefault:"5175"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	Production bool   `env:"PRODUCTION" envDefault:"false"`

	// DatabasePath selects SQLite persistence; empty keeps state in memory.
	DatabasePath string `env:"DATABASE_PATH"`

	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"birdle_player"`
	PlayerSecret string        `env:"PLAYER_SECRET" envDefault:"dev_secret_change_me"`
	PlayerTTL    time.Duration `env:"PLAYER_TTL" envDefault:"4320h"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"10"`

	AnswersFile     string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile     string `env:"WORDS_ALLOWED_FILE"`
	DefinitionsFile string `env:"WORDS_DEFINITIONS_FILE"`

	WordLength  int `env:"WORD_LENGTH" envDefault:"5"`
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"6"`

	// Deployment constants for daily selection.
	Epoch    time.Time `env:"DAILY_EPOCH" envDefault:"2022-02-14T00:00:00Z"`
	StepSize int       `env:"DAILY_STEP_SIZE" envDefault:"1"`

	ShareTitle string `env:"SHARE_TITLE" envDefault:"🇸🇬 Birdle"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses a Config and checks it for values the engine cannot run with.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.WordLength <= 0 || cfg.MaxAttempts <= 0 {
		return Config{}, fmt.Errorf("config: word length and max attempts must be positive (got %d, %d)", cfg.WordLength, cfg.MaxAttempts)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return Config{}, fmt.Errorf("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive (got %d, %d)", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.StepSize == 0 {
		return Config{}, fmt.Errorf("config: DAILY_STEP_SIZE must be non-zero")
	}
	return cfg, nil
}
