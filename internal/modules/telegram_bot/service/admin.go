package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"signal_bot/internal/i18n"
	accessservice "signal_bot/internal/modules/access/service"
	"signal_bot/pkg/logger"
)

const (
	defaultTestSymbol = "BTCUSDT"
	profilesLimit     = 20
	expiringWindow    = 7 // дней
)

func (t *Telegram) handleAdminCommand(ctx context.Context, cmd string, r request) {
	switch cmd {
	case "test":
		t.cmdTest(ctx, r)
	case "adduser":
		t.cmdAddUser(ctx, r)
	case "removeuser":
		t.cmdRemoveUser(ctx, r)
	case "listusers":
		free, paid := t.Access.Members()
		t.reply(ctx, r, formatUserList(t.Access.Stats(), free, paid))
	case "freestats":
		t.reply(ctx, r, formatFreeStats(t.Access.Stats()))
	case "verify":
		t.cmdVerify(ctx, r)
	case "pending":
		t.reply(ctx, r, formatPending(t.Access.Pending()))
	case "admin":
		t.cmdAdmin(ctx, r)
	case "restart":
		t.cmdRestart(ctx, r)
	case "listadmins":
		t.reply(ctx, r, formatAdmins(t.Access.Admins(), t.Access.MainAdmin()))
	case "addadmin":
		t.cmdAddAdmin(ctx, r)
	case "removeadmin":
		t.cmdRemoveAdmin(ctx, r)
	case "stats":
		t.cmdStats(ctx, r)
	case "profiles":
		t.cmdProfiles(ctx, r)
	}
}

// cmdTest разбор символа без рассылки: критерии, extras, уровни и превью сигнала
func (t *Telegram) cmdTest(ctx context.Context, r request) {
	if t.Analyzer == nil {
		t.reply(ctx, r, "⚠️ Analyzer is not configured")
		return
	}
	symbol := defaultTestSymbol
	if len(r.args) > 0 {
		symbol = strings.ToUpper(r.args[0])
	}

	v, err := t.Analyzer.Analyze(ctx, symbol)
	if err != nil {
		t.reply(ctx, r, fmt.Sprintf("⚠️ %s: %v", symbol, err))
		return
	}
	t.reply(ctx, r, formatVerdictReport(v))
	if v.Reason == "" {
		t.reply(ctx, r, "🧪 Preview:\n\n"+FormatSignal(v))
	}
}

func (t *Telegram) cmdAddUser(ctx context.Context, r request) {
	if len(r.args) < 1 {
		t.reply(ctx, r, "Usage: /adduser <user_id> [days]")
		return
	}
	target := r.args[0]
	arg := ""
	if len(r.args) > 1 {
		arg = r.args[1]
	}
	days, ok := parseDays(arg, t.cfg.DefaultPaidDays)
	if !ok {
		t.reply(ctx, r, fmt.Sprintf("Invalid days value. Using default %d days.", days))
	}

	if err := t.Access.GrantPaid(target, days); err != nil {
		t.reply(ctx, r, fmt.Sprintf("❌ Cannot add %s: %v", target, err))
		return
	}
	logger.Info("[TG] admin %s granted paid to %s for %d days", r.userID, target, days)
	t.reply(ctx, r, fmt.Sprintf("✅ Added premium access for user: %s (%d days)", target, days))
}

func (t *Telegram) cmdRemoveUser(ctx context.Context, r request) {
	if len(r.args) != 1 {
		t.reply(ctx, r, "Usage: /removeuser <user_id>")
		return
	}
	target := r.args[0]

	switch err := t.Access.RemovePaid(target); {
	case errors.Is(err, accessservice.ErrPermissionDenied):
		t.reply(ctx, r, "❌ Cannot remove the main admin's access.")
	case errors.Is(err, accessservice.ErrNotFound):
		t.reply(ctx, r, fmt.Sprintf("❌ User %s has no premium access.", target))
	case err != nil:
		t.reply(ctx, r, fmt.Sprintf("❌ Cannot remove %s: %v", target, err))
	default:
		logger.Info("[TG] admin %s removed paid from %s", r.userID, target)
		t.reply(ctx, r, fmt.Sprintf("✅ Removed premium access for user: %s", target))
	}
}

// cmdVerify подтверждает оплату и поздравляет пользователя на его языке
func (t *Telegram) cmdVerify(ctx context.Context, r request) {
	if len(r.args) < 1 {
		t.reply(ctx, r, "Usage: /verify <user_id> [days]")
		return
	}
	target := r.args[0]
	arg := ""
	if len(r.args) > 1 {
		arg = r.args[1]
	}
	days, _ := parseDays(arg, t.cfg.DefaultPaidDays)

	if err := t.Access.Verify(target, days); err != nil {
		t.reply(ctx, r, fmt.Sprintf("❌ Cannot verify %s: %v", target, err))
		return
	}
	logger.Info("[TG] admin %s verified payment of %s", r.userID, target)

	if err := t.SendTo(ctx, target, t.text(target, i18n.KeyPaymentSuccess, i18n.Params{"days": days})); err != nil {
		logger.Warn("[TG] payment success notice to %s: %v", target, err)
	}
	t.reply(ctx, r, fmt.Sprintf("✅ Payment verified and premium access granted for user: %s (%d days)", target, days))
}

func (t *Telegram) cmdAdmin(ctx context.Context, r request) {
	now := t.now()
	d := dashboard{
		stats:        t.Access.Stats(),
		pending:      t.Access.Pending(),
		signalsToday: t.History.Since(startOfDay(now)),
		pairs:        len(t.cfg.Market.Symbols),
		scanEvery:    t.cfg.CycleInterval,
	}
	_, paid := t.Access.Members()
	for _, id := range paid {
		days, ok := t.Access.Identity(id).DaysLeft(now)
		if ok && days >= 0 && days <= expiringWindow {
			d.expiring = append(d.expiring, expiring{userID: id, days: days})
		}
	}
	t.replyKB(ctx, r, formatDashboard(d), backKeyboard(t.locale(r.userID)))
}

func (t *Telegram) cmdRestart(ctx context.Context, r request) {
	if t.Restart == nil {
		t.reply(ctx, r, "⚠️ Restart is not available")
		return
	}
	t.Restart.RequestRestart()
	logger.Info("[TG] admin %s requested restart", r.userID)
	t.reply(ctx, r, "🔄 Bot restart initiated...\n\n⚠️ Monitoring resumes in a few seconds.")
}

func (t *Telegram) cmdAddAdmin(ctx context.Context, r request) {
	if len(r.args) != 1 {
		t.reply(ctx, r, "Usage: /addadmin <user_id>\n\n💡 The user must message the bot first to learn their id.")
		return
	}
	target := r.args[0]

	switch err := t.Access.AddAdmin(r.userID, target); {
	case errors.Is(err, accessservice.ErrPermissionDenied):
		t.reply(ctx, r, "❌ Only the main admin can add new admins.")
	case errors.Is(err, accessservice.ErrAlreadyMember):
		t.reply(ctx, r, fmt.Sprintf("ℹ️ %s is already an admin.", target))
	case err != nil:
		t.reply(ctx, r, fmt.Sprintf("❌ Cannot add admin %s: %v", target, err))
	default:
		logger.Info("[TG] admin %s added admin %s", r.userID, target)
		t.reply(ctx, r, fmt.Sprintf("✅ Added new admin: %s\n\n⚠️ They now have full admin access to the bot.", target))
	}
}

func (t *Telegram) cmdRemoveAdmin(ctx context.Context, r request) {
	if len(r.args) != 1 {
		t.reply(ctx, r, "Usage: /removeadmin <user_id>")
		return
	}
	target := r.args[0]

	switch err := t.Access.RemoveAdmin(r.userID, target); {
	case errors.Is(err, accessservice.ErrPermissionDenied) && t.Access.IsMainAdmin(target):
		t.reply(ctx, r, "❌ Cannot remove the main admin.")
	case errors.Is(err, accessservice.ErrPermissionDenied):
		t.reply(ctx, r, "❌ Only the main admin can remove admins.")
	case errors.Is(err, accessservice.ErrNotFound):
		t.reply(ctx, r, fmt.Sprintf("❌ %s is not an admin.", target))
	case err != nil:
		t.reply(ctx, r, fmt.Sprintf("❌ Cannot remove admin %s: %v", target, err))
	default:
		logger.Info("[TG] admin %s removed admin %s", r.userID, target)
		t.reply(ctx, r, fmt.Sprintf("✅ Removed admin access from: %s", target))
	}
}

func (t *Telegram) cmdStats(ctx context.Context, r request) {
	if t.Profiles == nil {
		t.reply(ctx, r, "⚠️ Profile store is disabled")
		return
	}
	st, err := t.Profiles.QueryStats(ctx)
	if err != nil {
		logger.Error("[TG] query stats: %v", err)
		t.reply(ctx, r, "⚠️ Statistics are unavailable right now")
		return
	}
	t.reply(ctx, r, formatProfileStats(st))
}

func (t *Telegram) cmdProfiles(ctx context.Context, r request) {
	if t.Profiles == nil {
		t.reply(ctx, r, "⚠️ Profile store is disabled")
		return
	}
	profiles, err := t.Profiles.Profiles(ctx, profilesLimit)
	if err != nil {
		logger.Error("[TG] profiles: %v", err)
		t.reply(ctx, r, "⚠️ Profiles are unavailable right now")
		return
	}
	t.reply(ctx, r, formatProfiles(profiles))
}
