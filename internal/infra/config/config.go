package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/schedule"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken    string
	DatabaseURL      string
	LogLevel         string
	Environment      string
	Location         *time.Location
	DefaultSchedule  schedule.Config
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.TelegramToken = os.Getenv("BOT_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	requestTime := os.Getenv("REQUEST_TIME")
	if requestTime == "" {
		requestTime = "08:30" // Default base time for the daily pipeline
	}
	base, err := schedule.ParseTimeOfDay(requestTime)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIME: %w", err)
	}

	reminderDelay := 10 // minutes
	if v := os.Getenv("REMINDER_DELAY_MIN"); v != "" {
		reminderDelay, err = strconv.Atoi(v)
		if err != nil || reminderDelay < 1 {
			return nil, fmt.Errorf("invalid REMINDER_DELAY_MIN: %q", v)
		}
	}

	cfg.DefaultSchedule = schedule.Config{Base: base, ReminderDelay: reminderDelay}

	return cfg, nil
}
