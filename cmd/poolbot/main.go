// Poolbot - Telegram bot that matches users with liquidity pools by risk profile.
//
// Users pick a Stable or High-risk profile, connect a wallet and toggle
// pool alerts. Profile choices are stored idempotently, so repeated or
// concurrent clicks never produce more than one account row.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/web3guy0/poolbot/internal/bot"
	"github.com/web3guy0/poolbot/internal/config"
	"github.com/web3guy0/poolbot/internal/database"
	"github.com/web3guy0/poolbot/internal/dedup"
	"github.com/web3guy0/poolbot/internal/profile"
)

const version = "1.0.0"

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load environment
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().Str("version", version).Msg("💧 Poolbot starting...")

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	guard, closeGuard, err := newGuard(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize click guard")
	}

	profiles := profile.NewService(db)

	telegramBot, err := bot.New(cfg, profiles, guard)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}
	telegramBot.Start()

	log.Info().Msg("💡 Use /help for commands")

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Received shutdown signal")

	// Graceful shutdown
	log.Info().Msg("Shutting down...")

	telegramBot.Stop()
	closeGuard()
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database")
	}

	log.Info().Msg("👋 Goodbye!")
}

// newGuard returns the redis guard when REDIS_ADDR is set, so several bot
// instances share click history, and the in-memory guard otherwise.
func newGuard(cfg *config.Config) (dedup.Guard, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info().
			Dur("retention", cfg.DedupRetention).
			Int("max_entries", cfg.DedupMaxEntries).
			Msg("🧠 Using in-memory click guard")
		return dedup.NewMemory(cfg.DedupRetention, cfg.DedupMaxEntries), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("🧠 Using redis click guard")
	return dedup.NewRedis(client, "poolbot:"), func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close redis client")
		}
	}, nil
}
