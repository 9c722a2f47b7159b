package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64
	LogLevel       string
	Environment    string
	DigestCronSpec string // Optional daily digest schedule, empty disables it
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		return nil, fmt.Errorf("PRACTICUM_TOKEN is not set")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	// Optional; empty keeps the digest disabled.
	cfg.DigestCronSpec = os.Getenv("DIGEST_CRON_SPEC")

	return cfg, nil
}
