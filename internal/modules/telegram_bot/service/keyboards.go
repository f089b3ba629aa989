package service

import (
	"signal_bot/internal/i18n"
	"signal_bot/internal/models"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// callback_data
const (
	cbStatus    = "cmd_status"
	cbCoins     = "cmd_coins"
	cbHelp      = "cmd_help"
	cbLanguage  = "cmd_language"
	cbSubscribe = "cmd_subscribe"
	cbPaid      = "cmd_paid"
	cbMenu      = "cmd_menu"
	cbAdmin     = "cmd_admin"
	cbRestart   = "cmd_restart"

	cbLangPrefix = "lang_"
	cbSubPrefix  = "sub_"
	cbPayPrefix  = "pay_"
)

var paymentMethods = []struct {
	id    string
	title string
}{
	{id: "btc", title: "₿ Bitcoin (BTC)"},
	{id: "eth", title: "⟠ Ethereum (ETH)"},
	{id: "usdt", title: "💚 USDT (TRC20)"},
	{id: "bank", title: "🏦 Bank Transfer"},
}

func button(l i18n.Locale, key i18n.Key, data string) tgbot.InlineKeyboardButton {
	return tgbot.NewInlineKeyboardButtonData(i18n.Render(l, key, nil), data)
}

func mainMenuKeyboard(l i18n.Locale, admin bool) tgbot.InlineKeyboardMarkup {
	rows := [][]tgbot.InlineKeyboardButton{
		tgbot.NewInlineKeyboardRow(
			button(l, i18n.KeyButtonStatus, cbStatus),
			button(l, i18n.KeyButtonCoins, cbCoins),
		),
		tgbot.NewInlineKeyboardRow(
			button(l, i18n.KeyButtonHelp, cbHelp),
			button(l, i18n.KeyButtonLanguage, cbLanguage),
		),
		tgbot.NewInlineKeyboardRow(
			button(l, i18n.KeyButtonSubscribe, cbSubscribe),
		),
	}
	if admin {
		rows = append(rows, tgbot.NewInlineKeyboardRow(
			button(l, i18n.KeyButtonAdmin, cbAdmin),
			tgbot.NewInlineKeyboardButtonData("🔄 Restart", cbRestart),
		))
	}
	return tgbot.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard(l i18n.Locale) tgbot.InlineKeyboardMarkup {
	return tgbot.NewInlineKeyboardMarkup(
		tgbot.NewInlineKeyboardRow(button(l, i18n.KeyButtonBack, cbMenu)),
	)
}

// languageKeyboard по две локали в ряд
func languageKeyboard() tgbot.InlineKeyboardMarkup {
	var rows [][]tgbot.InlineKeyboardButton
	var row []tgbot.InlineKeyboardButton
	for _, l := range i18n.Locales() {
		row = append(row, tgbot.NewInlineKeyboardButtonData(i18n.Label(l), cbLangPrefix+string(l)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbot.NewInlineKeyboardMarkup(rows...)
}

func plansKeyboard(l i18n.Locale) tgbot.InlineKeyboardMarkup {
	var rows [][]tgbot.InlineKeyboardButton
	for _, p := range models.Plans {
		rows = append(rows, tgbot.NewInlineKeyboardRow(
			tgbot.NewInlineKeyboardButtonData("💎 "+planTitle(p.ID)+" $"+f2(p.Price), cbSubPrefix+p.ID),
		))
	}
	rows = append(rows, tgbot.NewInlineKeyboardRow(button(l, i18n.KeyButtonBack, cbMenu)))
	return tgbot.NewInlineKeyboardMarkup(rows...)
}

func paymentKeyboard(l i18n.Locale, planID string) tgbot.InlineKeyboardMarkup {
	var rows [][]tgbot.InlineKeyboardButton
	for _, m := range paymentMethods {
		rows = append(rows, tgbot.NewInlineKeyboardRow(
			tgbot.NewInlineKeyboardButtonData(m.title, cbPayPrefix+planID+"_"+m.id),
		))
	}
	rows = append(rows, tgbot.NewInlineKeyboardRow(button(l, i18n.KeyButtonBack, cbSubscribe)))
	return tgbot.NewInlineKeyboardMarkup(rows...)
}
