package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/parley/parley-go/internal/crypto"
)

const devCookieSecret = "dev-secret-change-in-production"

var (
	ErrDevSecretInProduction = errors.New("COOKIE_SECRET must be set in production environment")
	ErrKeyedInProduction     = errors.New("RANDOM_SOURCE=keyed is predictable and not allowed in production")
	ErrWordCountRange        = errors.New("PASSPHRASE_DEFAULT_WORDS must be between 1 and PASSPHRASE_MAX_WORDS")
	ErrMaxWordsRange         = errors.New("PASSPHRASE_MAX_WORDS must be between 1 and 64")
	ErrRateLimit             = errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	DefaultWords int    `env:"PASSPHRASE_DEFAULT_WORDS" envDefault:"3"`
	MaxWords     int    `env:"PASSPHRASE_MAX_WORDS" envDefault:"64"`
	RandomSource string `env:"RANDOM_SOURCE" envDefault:"system"`
	RandomSeed   string `env:"RANDOM_SEED"`

	CookieSecret string `env:"COOKIE_SECRET" envDefault:"dev-secret-change-in-production"`

	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether ENV is "production".
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks value ranges and production safety rules.
func (c Config) Validate() error {
	if c.MaxWords < 1 || c.MaxWords > crypto.MaxWords {
		return ErrMaxWordsRange
	}
	if c.DefaultWords < 1 || c.DefaultWords > c.MaxWords {
		return ErrWordCountRange
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return ErrRateLimit
	}

	switch c.RandomSource {
	case crypto.SourceSystem:
	case crypto.SourceKeyed:
		if c.RandomSeed == "" {
			return crypto.ErrEmptySeed
		}
	default:
		return fmt.Errorf("RANDOM_SOURCE %q: %w", c.RandomSource, crypto.ErrUnknownSource)
	}

	if c.IsProduction() {
		if c.CookieSecret == devCookieSecret {
			return ErrDevSecretInProduction
		}
		if c.RandomSource == crypto.SourceKeyed {
			return ErrKeyedInProduction
		}
	}

	return nil
}
