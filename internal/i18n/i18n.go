package i18n

import (
	"fmt"
	"sort"
	"strings"
)

// Key идентификатор шаблона сообщения.
type Key int

const (
	KeySelectLanguage Key = iota
	KeyLanguageSet
	KeyBotIntro
	KeyStatusReport
	KeyAdminOnly
	KeyFreeTierWelcome
	KeyFreeTierFull
	KeyNotSubscribed
	KeySubscriptionMenu
	KeyPaymentSubmitted
	KeyPaymentSuccess
	KeyPaidUsage
	KeyHelpFree
	KeyHelpPremium
	KeyCoinList
	KeyCommandMenu
	KeyTierFree
	KeyTierPaid
	KeyTierAdmin
	KeyRecentSignals
	KeyNoRecentSignals
	KeyUnknownCommand
	KeySubscriptionExpired
	KeyButtonStatus
	KeyButtonCoins
	KeyButtonHelp
	KeyButtonLanguage
	KeyButtonSubscribe
	KeyButtonAdmin
	KeyButtonBack

	keyCount
)

var keyNames = [...]string{
	KeySelectLanguage:      "select_language",
	KeyLanguageSet:         "language_set",
	KeyBotIntro:            "bot_intro",
	KeyStatusReport:        "status_report",
	KeyAdminOnly:           "admin_only",
	KeyFreeTierWelcome:     "free_tier_welcome",
	KeyFreeTierFull:        "free_tier_full",
	KeyNotSubscribed:       "not_subscribed",
	KeySubscriptionMenu:    "subscription_menu",
	KeyPaymentSubmitted:    "payment_submitted",
	KeyPaymentSuccess:      "payment_success",
	KeyPaidUsage:           "paid_command_usage",
	KeyHelpFree:            "help_message_free",
	KeyHelpPremium:         "help_message_premium",
	KeyCoinList:            "coin_list",
	KeyCommandMenu:         "command_menu",
	KeyTierFree:            "tier_free",
	KeyTierPaid:            "tier_paid",
	KeyTierAdmin:           "tier_admin",
	KeyRecentSignals:       "recent_signals",
	KeyNoRecentSignals:     "no_recent_signals",
	KeyUnknownCommand:      "unknown_command",
	KeySubscriptionExpired: "subscription_expired",
	KeyButtonStatus:        "button_status",
	KeyButtonCoins:         "button_coins",
	KeyButtonHelp:          "button_help",
	KeyButtonLanguage:      "button_language",
	KeyButtonSubscribe:     "button_subscribe",
	KeyButtonAdmin:         "button_admin",
	KeyButtonBack:          "button_back",
}

func (k Key) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Keys все ключи каталога
func Keys() []Key {
	out := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
	LocaleFR Locale = "fr"
	LocaleDE Locale = "de"
	LocaleRU Locale = "ru"

	DefaultLocale = LocaleEN
)

// Language подписи для клавиатуры выбора языка
var languageLabels = map[Locale]string{
	LocaleEN: "🇺🇸 English",
	LocaleES: "🇪🇸 Español",
	LocaleFR: "🇫🇷 Français",
	LocaleDE: "🇩🇪 Deutsch",
	LocaleRU: "🇷🇺 Русский",
}

// Locales поддерживаемые локали в порядке показа
func Locales() []Locale {
	return []Locale{LocaleEN, LocaleES, LocaleFR, LocaleDE, LocaleRU}
}

func Label(l Locale) string {
	if s, ok := languageLabels[l]; ok {
		return s
	}
	return string(l)
}

// Parse код языка -> локаль; неизвестные коды дают ok=false
func Parse(code string) (Locale, bool) {
	l := Locale(strings.ToLower(strings.TrimSpace(code)))
	_, ok := catalog[l]
	return l, ok
}

// Params значения плейсхолдеров {name}
type Params map[string]any

// Render шаблон для локали с подстановкой параметров. Неизвестная локаль или
// отсутствующий ключ откатываются к английскому.
func Render(locale Locale, key Key, params Params) string {
	tpl, ok := catalog[locale][key]
	if !ok {
		tpl = catalog[DefaultLocale][key]
	}
	if len(params) == 0 {
		return tpl
	}

	names := make([]string, 0, len(params))
	for n := range params {
		names = append(names, n)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(params)*2)
	for _, n := range names {
		pairs = append(pairs, "{"+n+"}", fmt.Sprint(params[n]))
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}
