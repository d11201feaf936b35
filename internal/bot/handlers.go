package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/web3guy0/poolbot/internal/dedup"
	"github.com/web3guy0/poolbot/internal/profile"
)

const (
	menuText = `💧 *POOLBOT*
━━━━━━━━━━━━━━━━━━━━━

Liquidity pool picks that match your risk appetite.

━━━━━━━━━━━━━━━━━━━━━`

	riskMenuText = `🎯 *Choose your risk profile*
━━━━━━━━━━━━━━━━━━━━━

🛡️ *Stable* - deep pools, steady yield
🔥 *High-risk* - volatile pools, higher upside

━━━━━━━━━━━━━━━━━━━━━`

	connectText = `💳 *Connect wallet*
━━━━━━━━━━━━━━━━━━━━━

Send your EVM address:
` + "`/connect 0x...`" + `

Or just paste the address in this chat.`

	helpText = `📚 *Poolbot Commands*

*🎯 Profile:*
/profile - Choose a risk profile
/stable - Switch to Stable
/highrisk - Switch to High-risk

*👤 Account:*
/account - Wallet, profile and alerts
/connect <address> - Connect a wallet
/disconnect - Forget the wallet
/subscribe - Enable pool alerts
/unsubscribe - Disable pool alerts

/menu - Main menu`

	msgDuplicate       = "⏳ Already on it…"
	msgConnectInFlight = "⏳ A wallet connection is already in progress. Please wait a moment."
	msgUnknownCommand  = "❓ Unknown command. Use /menu"
	msgUnknownText     = "🤔 I did not get that. Use /menu to see what I can do."
)

// ==================== MESSAGE HANDLERS ====================

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	defer b.recoverPanic("message")

	if msg.From == nil || msg.Chat == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	chatID := msg.Chat.ID
	userID := msg.From.ID
	username := msg.From.UserName

	if !msg.IsCommand() {
		b.handleText(ctx, chatID, userID, msg.Text)
		return
	}

	args := strings.TrimSpace(msg.CommandArguments())

	switch cmd := strings.ToLower(msg.Command()); cmd {
	case "start":
		b.cmdStart(ctx, chatID, userID, username)
	case "menu", "m":
		b.sendMarkdownWithKeyboard(chatID, menuText, mainMenuKeyboard())
	case "profile", "risk":
		b.cmdRiskMenu(ctx, chatID, userID, username)
	case "stable", "highrisk", "high_risk":
		b.applyProfile(ctx, chatID, userID, "/"+cmd)
	case "setrisk":
		if args == "" {
			b.cmdRiskMenu(ctx, chatID, userID, username)
			return
		}
		b.applyProfile(ctx, chatID, userID, args)
	case "account", "a":
		b.cmdAccount(ctx, chatID, userID, username)
	case "connect":
		if args == "" {
			b.sendMarkdown(chatID, connectText)
			return
		}
		b.cmdConnect(ctx, chatID, userID, args)
	case "disconnect":
		b.reply(chatID, b.profiles.DisconnectWallet(ctx, userID))
	case "subscribe":
		b.reply(chatID, b.profiles.SetSubscription(ctx, userID, true))
	case "unsubscribe":
		b.reply(chatID, b.profiles.SetSubscription(ctx, userID, false))
	case "help", "h":
		b.sendMarkdown(chatID, helpText)
	default:
		b.sendText(chatID, msgUnknownCommand)
	}
}

// handleText treats a pasted address as a wallet connect and anything else
// as a possible free-form profile request.
func (b *Bot) handleText(ctx context.Context, chatID, userID int64, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if profile.LooksLikeWallet(text) {
		b.cmdConnect(ctx, chatID, userID, text)
		return
	}

	res := b.profiles.ApplyIdentifier(ctx, text, userID)
	if errors.Is(res.Err, profile.ErrUnrecognizedIdentifier) {
		b.sendText(chatID, msgUnknownText)
		return
	}
	b.replyWithKeyboard(chatID, res, backKeyboard())
}

// ==================== CALLBACK HANDLERS ====================

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	defer b.recoverPanic("callback")

	if cb.Message == nil || cb.Message.Chat == nil || cb.From == nil {
		b.answerCallback(cb.ID, "")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	userID := cb.From.ID
	username := cb.From.UserName

	if b.isDuplicate(ctx, dedup.ButtonKey(chatID, cb.Data), b.cfg.DedupWindow) {
		b.answerCallback(cb.ID, msgDuplicate)
		return
	}
	b.answerCallback(cb.ID, "")

	switch cb.Data {
	case cbShowMain:
		b.editMessage(chatID, msgID, menuText, mainMenuKeyboard())
	case cbShowRisk:
		b.editMessage(chatID, msgID, riskMenuText, riskMenuKeyboard(b.currentProfile(ctx, userID, username)))
	case cbShowAccount:
		b.editAccount(ctx, chatID, msgID, userID, username)
	case cbShowHelp:
		b.editMessage(chatID, msgID, helpText, backKeyboard())
	case cbConnectWallet:
		b.editMessage(chatID, msgID, connectText, backKeyboard())
	case cbToggleAlerts:
		res := b.profiles.ToggleSubscription(ctx, userID, username)
		if !res.Success {
			b.reply(chatID, res)
			return
		}
		b.editAccount(ctx, chatID, msgID, userID, username)
	default:
		res := b.profiles.ApplyIdentifier(ctx, cb.Data, userID)
		if errors.Is(res.Err, profile.ErrUnrecognizedIdentifier) {
			log.Debug().Str("data", cb.Data).Int64("chat_id", chatID).Msg("Unknown callback")
			b.sendText(chatID, res.Message)
			return
		}
		if !res.Success {
			b.reply(chatID, res)
			return
		}
		b.editMessage(chatID, msgID, res.Message, backKeyboard())
	}
}

// ==================== COMMANDS ====================

func (b *Bot) cmdStart(ctx context.Context, chatID, userID int64, username string) {
	// Touching the account guarantees the user has a row from the first message.
	if _, res := b.profiles.Snapshot(ctx, userID, username); !res.Success {
		b.reply(chatID, res)
		return
	}

	text := `💧 *Welcome to Poolbot!*

I point you to liquidity pools that fit how much risk you want to take.

*Quick Start:*
1️⃣ Pick a risk profile with /profile
2️⃣ Connect a wallet with /connect
3️⃣ Turn on alerts with /subscribe

💡 Tap /menu any time`

	b.sendMarkdownWithKeyboard(chatID, text, mainMenuKeyboard())
}

func (b *Bot) cmdRiskMenu(ctx context.Context, chatID, userID int64, username string) {
	b.sendMarkdownWithKeyboard(chatID, riskMenuText, riskMenuKeyboard(b.currentProfile(ctx, userID, username)))
}

func (b *Bot) cmdAccount(ctx context.Context, chatID, userID int64, username string) {
	b.replyWithKeyboard(chatID, b.profiles.Account(ctx, userID, username), accountKeyboard())
}

func (b *Bot) cmdConnect(ctx context.Context, chatID, userID int64, address string) {
	if b.isDuplicate(ctx, dedup.ConnectKey(userID), b.cfg.ConnectDedupWindow) {
		b.sendText(chatID, msgConnectInFlight)
		return
	}
	b.reply(chatID, b.profiles.ConnectWallet(ctx, userID, address))
}

func (b *Bot) applyProfile(ctx context.Context, chatID, userID int64, identifier string) {
	b.replyWithKeyboard(chatID, b.profiles.ApplyIdentifier(ctx, identifier, userID), backKeyboard())
}

func (b *Bot) editAccount(ctx context.Context, chatID int64, msgID int, userID int64, username string) {
	res := b.profiles.Account(ctx, userID, username)
	if !res.Success {
		b.reply(chatID, res)
		return
	}
	b.editMessage(chatID, msgID, res.Message, accountKeyboard())
}

// currentProfile returns the stored classification, or "" when it cannot be
// read; the menu then simply shows no check mark.
func (b *Bot) currentProfile(ctx context.Context, userID int64, username string) profile.Classification {
	snap, res := b.profiles.Snapshot(ctx, userID, username)
	if !res.Success {
		return ""
	}
	return snap.Classification
}

// reply sends a service result; failures go out as plain text.
func (b *Bot) reply(chatID int64, res profile.Result) {
	if !res.Success {
		b.sendText(chatID, res.Message)
		return
	}
	b.sendMarkdown(chatID, res.Message)
}

func (b *Bot) replyWithKeyboard(chatID int64, res profile.Result, keyboard tgbotapi.InlineKeyboardMarkup) {
	if !res.Success {
		b.sendText(chatID, res.Message)
		return
	}
	b.sendMarkdownWithKeyboard(chatID, res.Message, keyboard)
}
