package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"

	"printk/internal/params"
)

type Config struct {
	ParamsPath        string        `env:"PRINTK_PARAMS_PATH"`
	TelegramToken     string        `env:"TELEGRAM_TOKEN"`
	OperatorChatID    int64         `env:"OPERATOR_CHAT_ID" envDefault:"0"`
	BotDebug          bool          `env:"BOT_DEBUG" envDefault:"false"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	DefaultMargin     float64       `env:"DEFAULT_MARGIN" envDefault:"35"`
	StartupMaxElapsed time.Duration `env:"STARTUP_MAX_ELAPSED" envDefault:"2m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DefaultMargin < 0 {
		return nil, fmt.Errorf("DEFAULT_MARGIN must not be negative, got %v", cfg.DefaultMargin)
	}

	if cfg.ParamsPath == "" {
		path, err := params.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parameters path: %w", err)
		}
		cfg.ParamsPath = path
	}

	return &cfg, nil
}

// ValidateBot checks the settings only the Telegram front-end needs.
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}
	return nil
}
