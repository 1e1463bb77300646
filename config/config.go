package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		App      App
		CORS     CORS
		HTTP     HTTP
		Log      Log
		Store    Store
		Redis    Redis
		Telegram Telegram
		Schedule Schedule
	}

	App struct {
		Name    string `env:"APP_NAME" envDefault:"tg-bor-arend"`
		Version string `env:"APP_VERSION" envDefault:"1.0.0"`
	}

	CORS struct {
		AllowCredentials bool   `env:"APP_CORS_ALLOW_CREDENTIALS"`
		AllowedHeaders   string `env:"APP_CORS_ALLOWED_HEADERS"`
		AllowedMethods   string `env:"APP_CORS_ALLOWED_METHODS"`
		AllowedOrigins   string `env:"APP_CORS_ALLOWED_ORIGINS"`
		Enable           bool   `env:"APP_CORS_ENABLE"`
		MaxAgeSeconds    int    `env:"APP_CORS_MAX_AGE_SECONDS"`
	}

	HTTP struct {
		Port string `env:"HTTP_PORT" envDefault:"3000"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required" envDefault:"info"`
	}

	// Store selects the collection store backend. The file driver keeps every
	// collection as a JSON document on disk, the redis driver keeps them as
	// hashes in Redis.
	Store struct {
		Driver string `env:"STORE_DRIVER" envDefault:"file"`
		Dir    string `env:"STORE_DIR" envDefault:"data"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB"`
	}

	Telegram struct {
		Token       string `env:"TELEGRAM_BOT_TOKEN"`
		AdminChatID int64  `env:"ADMIN_TELEGRAM_ID"`
		Enabled     bool   `env:"TELEGRAM_NOTIFICATIONS_ENABLED" envDefault:"true"`
	}

	Schedule struct {
		RequestsPurge string `env:"SCHEDULE_REQUESTS_PURGE" envDefault:"0 0 4 * * *"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config failed: %w", err)
	}

	return cfg, nil
}
