// Package bot provides the Telegram interface of the pool recommendation bot.
//
// telegram.go - update loop, send helpers and rate limiting
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/web3guy0/poolbot/internal/config"
	"github.com/web3guy0/poolbot/internal/dedup"
	"github.com/web3guy0/poolbot/internal/profile"
)

const (
	handlerTimeout = 10 * time.Second
	sendTimeout    = 5 * time.Second
)

// sender is the part of *tgbotapi.BotAPI the handlers use.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot handles Telegram interactions. Handlers are thin adapters around
// profile.Service; the click guard is owned here and passed in by main.
type Bot struct {
	api      sender
	poll     func(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	stopPoll func()

	cfg      *config.Config
	profiles *profile.Service
	guard    dedup.Guard
	limiter  *rate.Limiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New connects to Telegram and creates the bot
func New(cfg *config.Config, profiles *profile.Service, guard dedup.Guard) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	api.Debug = cfg.Debug

	log.Info().Str("username", api.Self.UserName).Msg("🤖 Telegram bot connected")

	limiter := rate.NewLimiter(rate.Limit(cfg.SendRatePerSec), cfg.SendRatePerSec)
	b := newBot(api, cfg, profiles, guard, limiter)
	b.poll = api.GetUpdatesChan
	b.stopPoll = api.StopReceivingUpdates
	return b, nil
}

func newBot(api sender, cfg *config.Config, profiles *profile.Service, guard dedup.Guard, limiter *rate.Limiter) *Bot {
	return &Bot{
		api:      api,
		cfg:      cfg,
		profiles: profiles,
		guard:    guard,
		limiter:  limiter,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the bot's update listener
func (b *Bot) Start() {
	go b.listenForUpdates()

	if b.cfg.TelegramAdminChatID != 0 {
		b.sendMarkdown(b.cfg.TelegramAdminChatID, "🚀 *Poolbot started*\n\n💡 /menu for controls")
	}
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopCh)
		if b.stopPoll != nil {
			b.stopPoll()
		}
		log.Info().Msg("Telegram bot stopped")
	})
}

func (b *Bot) listenForUpdates() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.poll(u)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				go b.handleMessage(update.Message)
			}
			if update.CallbackQuery != nil {
				go b.handleCallback(update.CallbackQuery)
			}
		case <-b.stopCh:
			return
		}
	}
}

// isDuplicate consults the click guard. Guard failures let the interaction
// through; the guard only filters noise.
func (b *Bot) isDuplicate(ctx context.Context, key string, window time.Duration) bool {
	if b.guard == nil {
		return false
	}
	dup, err := b.guard.Seen(ctx, key, window)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Click guard unavailable")
		return false
	}
	if dup {
		log.Debug().Str("key", key).Msg("Duplicate interaction suppressed")
	}
	return dup
}

func (b *Bot) recoverPanic(handler string) {
	if r := recover(); r != nil {
		log.Error().Interface("panic", r).Str("handler", handler).Msg("Recovered from handler panic")
	}
}

// ==================== HELPERS ====================

// deliver waits for the send limiter, then sends c.
func (b *Bot) deliver(c tgbotapi.Chattable) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("send rate limit: %w", err)
	}
	_, err := b.api.Send(c)
	return err
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if err := b.deliver(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send message")
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if err := b.deliver(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send message")
	}
}

func (b *Bot) sendMarkdownWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboard
	if err := b.deliver(msg); err != nil {
		log.Error().Err(err).Msg("Failed to send message")
	}
}

func (b *Bot) editMessage(chatID int64, msgID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = "Markdown"
	edit.ReplyMarkup = &keyboard
	if err := b.deliver(edit); err != nil {
		log.Debug().Err(err).Msg("Failed to edit message")
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Debug().Err(err).Msg("Failed to answer callback")
	}
}
