package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the bot
type Config struct {
	// Telegram
	TelegramToken       string
	TelegramAdminChatID int64 // optional, receives the startup notice
	SendRatePerSec      int

	// Mode
	Debug bool

	// Click de-duplication
	DedupWindow        time.Duration // same button pressed twice
	ConnectDedupWindow time.Duration // wallet connect attempts
	DedupRetention     time.Duration
	DedupMaxEntries    int

	// Redis (optional, shares the click guard between instances)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Database
	DatabasePath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Telegram
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		SendRatePerSec: getEnvInt("SEND_RATE_PER_SEC", 25),

		Debug: getEnvBool("DEBUG", false),

		DedupWindow:        getEnvDuration("DEDUP_WINDOW", 500*time.Millisecond),
		ConnectDedupWindow: getEnvDuration("CONNECT_DEDUP_WINDOW", 2*time.Second),
		DedupRetention:     getEnvDuration("DEDUP_RETENTION", time.Hour),
		DedupMaxEntries:    getEnvInt("DEDUP_MAX_ENTRIES", 10000),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		// Database
		DatabasePath: DatabasePath(),
	}

	if chatID := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
		cfg.TelegramAdminChatID = id
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.SendRatePerSec <= 0 {
		return nil, fmt.Errorf("SEND_RATE_PER_SEC must be positive, got %d", cfg.SendRatePerSec)
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// DatabasePath returns DATABASE_PATH, for tools that need the database
// without the bot's Telegram settings.
func DatabasePath() string {
	return getEnv("DATABASE_PATH", "data/poolbot.db")
}
