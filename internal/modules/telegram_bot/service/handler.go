package service

import (
	"context"
	"runtime/debug"
	"strings"

	"signal_bot/internal/i18n"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// request кто и откуда прислал команду или нажал кнопку
type request struct {
	chatID  int64
	userID  string
	args    []string
	rawArgs string
}

var userCommands = map[string]bool{
	"start": true, "menu": true, "status": true, "subscribe": true,
	"help": true, "coins": true, "paid": true,
}

var adminCommands = map[string]bool{
	"test": true, "adduser": true, "removeuser": true, "listusers": true,
	"freestats": true, "verify": true, "pending": true, "admin": true,
	"restart": true, "listadmins": true, "addadmin": true, "removeadmin": true,
	"stats": true, "profiles": true,
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	// 1) Сообщения: реагируем только на команды
	if msg := update.Message; msg != nil {
		if msg.From == nil || msg.Chat == nil {
			return
		}
		t.trackUser(ctx, msg.From)
		if msg.IsCommand() {
			t.handleCommand(ctx, msg)
		}
		return
	}

	// 2) Inline-кнопки
	if cb := update.CallbackQuery; cb != nil {
		if cb.From == nil {
			return
		}
		t.trackUser(ctx, cb.From)
		t.handleCallback(ctx, cb)
	}
}

func (t *Telegram) handleCommand(ctx context.Context, msg *tgbot.Message) {
	cmd := strings.ToLower(msg.Command())
	r := request{
		chatID:  msg.Chat.ID,
		userID:  userIDOf(msg.From),
		rawArgs: strings.TrimSpace(msg.CommandArguments()),
	}
	r.args = strings.Fields(r.rawArgs)

	label := cmd
	if !userCommands[cmd] && !adminCommands[cmd] {
		label = "unknown"
	}
	t.Metrics.Command(label)
	t.recordActivity(ctx, r.userID, label)
	defer t.recoverCommand(ctx, r, cmd)

	switch cmd {
	case "start":
		t.cmdStart(ctx, r, true)
	case "menu":
		t.cmdStart(ctx, r, false)
	case "status":
		t.cmdStatus(ctx, r)
	case "subscribe":
		t.cmdSubscribe(ctx, r)
	case "help":
		t.cmdHelp(ctx, r)
	case "coins":
		t.cmdCoins(ctx, r)
	case "paid":
		t.cmdPaid(ctx, r)
	default:
		if !adminCommands[cmd] {
			t.reply(ctx, r, t.text(r.userID, i18n.KeyUnknownCommand, nil))
			return
		}
		if !t.Access.IsAdmin(r.userID) {
			t.reply(ctx, r, t.text(r.userID, i18n.KeyAdminOnly, nil))
			return
		}
		t.handleAdminCommand(ctx, cmd, r)
	}
}

func (t *Telegram) handleCallback(ctx context.Context, cb *tgbot.CallbackQuery) {
	t.AnswerCallback(ctx, cb.ID)

	r := request{chatID: cb.From.ID, userID: userIDOf(cb.From)}
	if cb.Message != nil && cb.Message.Chat != nil {
		r.chatID = cb.Message.Chat.ID
	}
	data := cb.Data
	t.Metrics.Command("callback")
	t.recordActivity(ctx, r.userID, "callback")
	defer t.recoverCommand(ctx, r, data)

	switch {
	case data == cbStatus:
		t.cmdStatus(ctx, r)
	case data == cbCoins:
		t.cmdCoins(ctx, r)
	case data == cbHelp:
		t.cmdHelp(ctx, r)
	case data == cbSubscribe:
		t.cmdSubscribe(ctx, r)
	case data == cbPaid:
		l := t.locale(r.userID)
		t.replyKB(ctx, r, i18n.Render(l, i18n.KeyPaidUsage, nil), backKeyboard(l))
	case data == cbLanguage:
		t.replyKB(ctx, r, t.text(r.userID, i18n.KeySelectLanguage, nil), languageKeyboard())
	case data == cbMenu:
		// старое меню убираем, чтобы в чате было одно актуальное
		if cb.Message != nil {
			t.Delete(ctx, r.chatID, cb.Message.MessageID)
		}
		t.sendMainMenu(ctx, r, false)
	case data == cbAdmin, data == cbRestart:
		if !t.Access.IsAdmin(r.userID) {
			t.reply(ctx, r, t.text(r.userID, i18n.KeyAdminOnly, nil))
			return
		}
		if data == cbAdmin {
			t.cmdAdmin(ctx, r)
			return
		}
		t.cmdRestart(ctx, r)
	case strings.HasPrefix(data, cbLangPrefix):
		t.selectLanguage(ctx, r, strings.TrimPrefix(data, cbLangPrefix))
	case strings.HasPrefix(data, cbSubPrefix):
		t.selectPlan(ctx, r, strings.TrimPrefix(data, cbSubPrefix))
	case strings.HasPrefix(data, cbPayPrefix):
		t.selectPayment(ctx, r, strings.TrimPrefix(data, cbPayPrefix))
	default:
		logger.Debug("[TG] unknown callback %q from %s", data, r.userID)
	}
}

// recoverCommand ошибка в одной команде не роняет цикл опроса
func (t *Telegram) recoverCommand(ctx context.Context, r request, name string) {
	if rec := recover(); rec != nil {
		t.Metrics.Panic("command")
		logger.Error("[TG] %s from %s panic: %v\n%s", name, r.userID, rec, debug.Stack())
		t.reply(ctx, r, "⚠️ Something went wrong, please try again.")
	}
}

func (t *Telegram) reply(ctx context.Context, r request, text string) {
	if _, err := t.Send(ctx, r.chatID, text); err != nil {
		logger.Warn("[TG] reply to %d: %v", r.chatID, err)
	}
}

func (t *Telegram) replyKB(ctx context.Context, r request, text string, kb tgbot.InlineKeyboardMarkup) {
	if _, err := t.SendWithKeyboard(ctx, r.chatID, text, kb); err != nil {
		logger.Warn("[TG] reply to %d: %v", r.chatID, err)
	}
}

func (t *Telegram) pairsParams() i18n.Params {
	return i18n.Params{
		"pairs":    len(t.cfg.Market.Symbols),
		"interval": every(t.cfg.CycleInterval),
	}
}

// cmdStart /start и /menu: без выбранного языка сначала клавиатура языков
func (t *Telegram) cmdStart(ctx context.Context, r request, intro bool) {
	if !t.hasLanguage(r.userID) {
		t.replyKB(ctx, r, i18n.Render(i18n.DefaultLocale, i18n.KeySelectLanguage, nil), languageKeyboard())
		return
	}
	t.admit(ctx, r)
	t.sendMainMenu(ctx, r, intro)
}

// admit записывает в free tier, пока есть места; без доступа объясняет, что мест нет
func (t *Telegram) admit(ctx context.Context, r request) {
	capacity := i18n.Params{"capacity": t.Access.Capacity()}
	switch {
	case t.Access.TryJoinFreeTier(r.userID):
		logger.Info("[TG] user %s joined free tier", r.userID)
		t.reply(ctx, r, t.text(r.userID, i18n.KeyFreeTierWelcome, capacity))
	case !t.Access.HasAccess(r.userID):
		t.reply(ctx, r, t.text(r.userID, i18n.KeyFreeTierFull, capacity))
	}
}

func (t *Telegram) sendMainMenu(ctx context.Context, r request, intro bool) {
	l := t.locale(r.userID)
	text := i18n.Render(l, i18n.KeyCommandMenu, nil)
	if intro {
		text = i18n.Render(l, i18n.KeyBotIntro, t.pairsParams())
	}
	if tier := t.tierLine(r.userID); tier != "" {
		text += "\n\n" + tier
	}
	t.replyKB(ctx, r, text, mainMenuKeyboard(l, t.Access.IsAdmin(r.userID)))
}

func (t *Telegram) tierLine(userID string) string {
	id := t.Access.Identity(userID)
	switch id.Tier {
	case models.TierAdmin:
		return t.text(userID, i18n.KeyTierAdmin, nil)
	case models.TierPaid:
		days, _ := id.DaysLeft(t.now())
		return t.text(userID, i18n.KeyTierPaid, i18n.Params{"days": days})
	case models.TierFree:
		return t.text(userID, i18n.KeyTierFree, nil)
	default:
		return ""
	}
}

func (t *Telegram) notSubscribed(ctx context.Context, r request) {
	t.reply(ctx, r, t.text(r.userID, i18n.KeyNotSubscribed, i18n.Params{
		"capacity":   t.Access.Capacity(),
		"user_count": t.Access.Stats().Total,
	}))
}

func (t *Telegram) cmdStatus(ctx context.Context, r request) {
	t.Access.TryJoinFreeTier(r.userID)
	if !t.Access.HasAccess(r.userID) {
		t.notSubscribed(ctx, r)
		return
	}

	l := t.locale(r.userID)
	params := t.pairsParams()
	params["signals_count"] = t.History.Since(startOfDay(t.now()))

	parts := []string{
		t.tierLine(r.userID),
		i18n.Render(l, i18n.KeyStatusReport, params),
		formatRecent(t.History.Recent(),
			i18n.Render(l, i18n.KeyRecentSignals, nil),
			i18n.Render(l, i18n.KeyNoRecentSignals, nil)),
	}
	t.replyKB(ctx, r, strings.Join(parts, "\n\n"), backKeyboard(l))
}

func (t *Telegram) cmdSubscribe(ctx context.Context, r request) {
	l := t.locale(r.userID)
	t.replyKB(ctx, r, i18n.Render(l, i18n.KeySubscriptionMenu, nil)+"\n"+formatPlans(), plansKeyboard(l))
}

func (t *Telegram) cmdHelp(ctx context.Context, r request) {
	t.Access.TryJoinFreeTier(r.userID)

	key := i18n.KeyHelpPremium
	if t.Access.HasAccess(r.userID) {
		key = i18n.KeyHelpFree
	}
	l := t.locale(r.userID)
	t.replyKB(ctx, r, i18n.Render(l, key, i18n.Params{"capacity": t.Access.Capacity()}), backKeyboard(l))
}

func (t *Telegram) cmdCoins(ctx context.Context, r request) {
	l := t.locale(r.userID)
	params := t.pairsParams()
	params["coins"] = formatCoins(t.cfg.Market.Symbols)
	t.replyKB(ctx, r, i18n.Render(l, i18n.KeyCoinList, params), backKeyboard(l))
}

// cmdPaid /paid <method> <tx_hash>: заявка и уведомление главному админу
func (t *Telegram) cmdPaid(ctx context.Context, r request) {
	if len(r.args) < 2 {
		t.reply(ctx, r, t.text(r.userID, i18n.KeyPaidUsage, nil))
		return
	}
	method := r.args[0]
	txHash := strings.TrimSpace(strings.TrimPrefix(r.rawArgs, method))

	p := t.Access.SubmitPayment(r.userID, method, txHash)
	logger.Info("[TG] payment request user=%s method=%s", p.UserID, p.Method)
	t.reply(ctx, r, t.text(r.userID, i18n.KeyPaymentSubmitted, nil))

	if admin := t.Access.MainAdmin(); admin != "" {
		if err := t.SendTo(ctx, admin, formatPaymentRequest(p)); err != nil {
			logger.Warn("[TG] notify admin about payment: %v", err)
		}
	}
}

func (t *Telegram) selectLanguage(ctx context.Context, r request, code string) {
	l, ok := i18n.Parse(code)
	if !ok {
		l = i18n.DefaultLocale
	}
	existing := t.Access.HasAccess(r.userID)
	t.Access.SetLanguage(r.userID, string(l))

	capacity := i18n.Params{"capacity": t.Access.Capacity()}
	switch {
	case existing:
		t.reply(ctx, r, i18n.Render(l, i18n.KeyLanguageSet, i18n.Params{"language": i18n.Label(l)}))
	case t.Access.TryJoinFreeTier(r.userID):
		logger.Info("[TG] user %s joined free tier", r.userID)
		t.reply(ctx, r, i18n.Render(l, i18n.KeyFreeTierWelcome, capacity))
	default:
		t.reply(ctx, r, i18n.Render(l, i18n.KeyFreeTierFull, capacity))
	}
	t.sendMainMenu(ctx, r, true)
}

func (t *Telegram) selectPlan(ctx context.Context, r request, planID string) {
	p, ok := models.PlanByID(planID)
	if !ok {
		logger.Debug("[TG] unknown plan %q", planID)
		return
	}
	t.replyKB(ctx, r, formatPlanDetails(p), paymentKeyboard(t.locale(r.userID), p.ID))
}

// selectPayment data вида "<plan>_<method>"
func (t *Telegram) selectPayment(ctx context.Context, r request, data string) {
	i := strings.LastIndex(data, "_")
	if i <= 0 {
		t.reply(ctx, r, "Please select a subscription plan first.")
		return
	}
	p, ok := models.PlanByID(data[:i])
	if !ok {
		t.reply(ctx, r, "Please select a subscription plan first.")
		return
	}
	method := data[i+1:]
	address := t.cfg.Payments.Addresses[method]
	if address == "" {
		address = "Contact the admin for payment details."
	}
	t.replyKB(ctx, r, formatPaymentAddress(p, method, address), backKeyboard(t.locale(r.userID)))
}
