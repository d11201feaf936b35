package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("DEDUP_WINDOW", "")
	t.Setenv("CONNECT_DEDUP_WINDOW", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(0), cfg.TelegramAdminChatID)
	assert.Equal(t, "data/poolbot.db", cfg.DatabasePath)
	assert.Equal(t, 500*time.Millisecond, cfg.DedupWindow)
	assert.Equal(t, 2*time.Second, cfg.ConnectDedupWindow)
	assert.Equal(t, time.Hour, cfg.DedupRetention)
	assert.Equal(t, 10000, cfg.DedupMaxEntries)
	assert.Equal(t, 25, cfg.SendRatePerSec)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "-100200300")
	t.Setenv("DATABASE_PATH", "postgres://bot@localhost/poolbot")
	t.Setenv("DEDUP_WINDOW", "750ms")
	t.Setenv("CONNECT_DEDUP_WINDOW", "3s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(-100200300), cfg.TelegramAdminChatID)
	assert.Equal(t, "postgres://bot@localhost/poolbot", cfg.DatabasePath)
	assert.Equal(t, 750*time.Millisecond, cfg.DedupWindow)
	assert.Equal(t, 3*time.Second, cfg.ConnectDedupWindow)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.Debug)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_InvalidAdminChatID(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid TELEGRAM_ADMIN_CHAT_ID")
}

func TestLoad_BadDurationFallsBackToDefault(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "")
	t.Setenv("DEDUP_WINDOW", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.DedupWindow)
}
