package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/web3guy0/poolbot/internal/profile"
)

// Callback data
const (
	cbShowMain      = "show_main"
	cbShowRisk      = "show_risk"
	cbShowAccount   = "show_account"
	cbShowHelp      = "show_help"
	cbConnectWallet = "connect_wallet"
	cbToggleAlerts  = "toggle_alerts"
	cbRiskStable    = "risk_stable"
	cbRiskHighRisk  = "risk_high_risk"
)

var riskButtons = map[profile.Classification]struct {
	label string
	data  string
}{
	profile.Stable:   {"🛡️ Stable", cbRiskStable},
	profile.HighRisk: {"🔥 High-risk", cbRiskHighRisk},
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Risk profile", cbShowRisk),
			tgbotapi.NewInlineKeyboardButtonData("👤 Account", cbShowAccount),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Connect wallet", cbConnectWallet),
			tgbotapi.NewInlineKeyboardButtonData("🔔 Alerts", cbToggleAlerts),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", cbShowHelp),
		),
	)
}

// riskMenuKeyboard marks the current classification, if known, with a check.
func riskMenuKeyboard(current profile.Classification) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(profile.Classifications))
	for _, c := range profile.Classifications {
		btn := riskButtons[c]
		label := btn.label
		if c == current {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, btn.data))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Menu", cbShowMain),
		),
	)
}

func accountKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Risk profile", cbShowRisk),
			tgbotapi.NewInlineKeyboardButtonData("🔔 Alerts", cbToggleAlerts),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", cbShowAccount),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Menu", cbShowMain),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Change", cbShowRisk),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Menu", cbShowMain),
		),
	)
}
