package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"signal_bot/internal/models"
	accessservice "signal_bot/internal/modules/access/service"
	strategyservice "signal_bot/internal/modules/strategy/service"
)

func tf(i models.Interval) string {
	return strings.ToUpper(string(i))
}

// FormatSignal текст рассылки. Уровни фиксированные: -2.5% / +6% / +12%.
func FormatSignal(v models.Verdict) string {
	entry, stop, tp1, tp2 := strategyservice.DisplayLevels(v.Price)

	label := "📈 BUY"
	if v.Grade == models.GradeBothTimeframes {
		label = "🚀 STRONG BUY"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s SIGNAL: %s\n\n", label, v.Symbol)
	fmt.Fprintf(&b, "💰 Entry: %s\n", price(entry))
	fmt.Fprintf(&b, "🛑 Stop Loss: %s (-2.5%%)\n", price(stop))
	fmt.Fprintf(&b, "🎯 TP1: %s (+6%%)\n", price(tp1))
	fmt.Fprintf(&b, "🎯 TP2: %s (+12%%)\n\n", price(tp2))
	fmt.Fprintf(&b, "%s %s breakout\n", mark(v.Short.Fired()), tf(v.Short.Interval))
	fmt.Fprintf(&b, "%s %s breakout\n\n", mark(v.Long.Fired()), tf(v.Long.Interval))
	fmt.Fprintf(&b, "💪 Strength: %d/100 (%s)\n", v.Strength.Score, v.Strength.Recommendation)
	fmt.Fprintf(&b, "📏 EMA20 distance: %+.2f%%\n", v.Strength.EMADistancePct)
	fmt.Fprintf(&b, "📊 Volume: %sx avg\n\n", f2(v.Strength.VolumeRatio))
	b.WriteString("⚠️ Not financial advice. Manage your risk.")
	return b.String()
}

func formatChecks(c models.TimeframeChecks) string {
	return fmt.Sprintf(
		"%s:\n"+
			"  %s above EMA20\n"+
			"  %s EMA20 rising\n"+
			"  %s resistance breakout\n"+
			"  %s volume 1.5-2.0x\n"+
			"  %s close above resistance\n"+
			"  %s momentum candle\n",
		tf(c.Interval),
		mark(c.AboveEMA), mark(c.EMARising), mark(c.ResistanceBreakout),
		mark(c.VolumeSurge), mark(c.CloseAboveResistance), mark(c.MomentumCandle),
	)
}

// formatVerdictReport полный разбор для /test
func formatVerdictReport(v models.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧪 Analysis: %s\n\n", v.Symbol)
	if v.Reason != "" {
		fmt.Fprintf(&b, "⚠️ %s\n", v.Reason)
		return b.String()
	}
	fmt.Fprintf(&b, "Price: %s\n", f2(v.Price))
	fmt.Fprintf(&b, "Fired: %s %s\n\n", mark(v.Fired), v.Grade)
	b.WriteString(formatChecks(v.Short))
	b.WriteString(formatChecks(v.Long))

	e := v.Extras
	fmt.Fprintf(&b, "\nExtras (%d/4):\n", e.Count())
	fmt.Fprintf(&b, "  %s RSI %s\n", mark(e.RSIBullish), f2(e.RSI))
	fmt.Fprintf(&b, "  %s volume 2x\n", mark(e.VolumeDouble))
	fmt.Fprintf(&b, "  %s above SMA200 (%+.2f%%)\n", mark(e.AboveSMA200), e.SMA200DistPct)
	fmt.Fprintf(&b, "  %s bullish candle\n", mark(e.Bullish))

	lv := v.Levels
	fmt.Fprintf(&b, "\nRisk-adjusted levels:\n")
	fmt.Fprintf(&b, "  Entry %s | Stop %s\n", price(lv.Entry), price(lv.StopLoss))
	fmt.Fprintf(&b, "  TP1 %s | TP2 %s | TP3 %s\n", price(lv.TP1), price(lv.TP2), price(lv.TP3))
	fmt.Fprintf(&b, "  R:R %s\n", f2(lv.RiskReward))

	fmt.Fprintf(&b, "\n💪 Strength %d/100 (%s)", v.Strength.Score, v.Strength.Recommendation)
	return b.String()
}

func formatRecent(entries []models.HistoryEntry, header, empty string) string {
	if len(entries) == 0 {
		return empty
	}
	var b strings.Builder
	b.WriteString(header)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n• %s  %s", e.Symbol, e.DateShort())
	}
	return b.String()
}

func formatCoins(symbols []string) string {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = strings.TrimSuffix(s, "USDT")
	}
	return strings.Join(names, ", ")
}

func formatPlans() string {
	var b strings.Builder
	for _, p := range models.Plans {
		fmt.Fprintf(&b, "\n• %s: $%s / %d days", planTitle(p.ID), f2(p.Price), p.DurationDays)
	}
	return b.String()
}

func planTitle(id string) string {
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

func formatPlanDetails(p models.Plan) string {
	return fmt.Sprintf("💎 %s plan\n\n💵 Price: $%s\n📅 Duration: %d days\n\nChoose a payment method:",
		planTitle(p.ID), f2(p.Price), p.DurationDays)
}

func formatPaymentAddress(p models.Plan, method, address string) string {
	return fmt.Sprintf("💳 %s plan via %s\n\n💵 Amount: $%s\n📮 Address:\n%s\n\n"+
		"After paying send:\n/paid %s <transaction_hash>",
		planTitle(p.ID), strings.ToUpper(method), f2(p.Price), address, strings.ToUpper(method))
}

func formatPaymentRequest(p models.PendingPayment) string {
	return fmt.Sprintf("💳 New Payment Verification Request:\n\n"+
		"User: %s\nMethod: %s\nTX Hash: %s\nTime: %s\n\nUse: /verify %s to approve",
		p.UserID, p.Method, p.TxHash, p.SubmittedAt.Format("2006-01-02 15:04:05"), p.UserID)
}

func formatPending(pending []models.PendingPayment) string {
	if len(pending) == 0 {
		return "No pending payments."
	}
	var b strings.Builder
	b.WriteString("💳 Pending Payments:\n")
	for _, p := range pending {
		fmt.Fprintf(&b, "\nUser: %s\nMethod: %s\nTX: %s\nSubmitted: %s\n",
			p.UserID, p.Method, p.TxHash, p.SubmittedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

const listLimit = 10

func formatUserList(st accessservice.Stats, free, paid []string) string {
	var b strings.Builder
	b.WriteString("👥 User Statistics:\n\n")
	fmt.Fprintf(&b, "🆓 Free Users: %d/%d\n", st.Free, st.Capacity)
	fmt.Fprintf(&b, "💎 Premium Users: %d\n", st.Paid)
	fmt.Fprintf(&b, "📊 Total Active: %d\n", st.Total)

	if len(free) > 0 {
		b.WriteString("\n🆓 Free Users:\n")
		for _, id := range free[:min(len(free), listLimit)] {
			fmt.Fprintf(&b, "• %s\n", id)
		}
		if len(free) > listLimit {
			fmt.Fprintf(&b, "... and %d more\n", len(free)-listLimit)
		}
	}
	if len(paid) > 0 {
		b.WriteString("\n💎 Premium Users:\n")
		for _, id := range paid {
			fmt.Fprintf(&b, "• %s\n", id)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatFreeStats(st accessservice.Stats) string {
	status := "AVAILABLE"
	if st.FreeRemaining() == 0 {
		status = "FULL"
	}
	return fmt.Sprintf("🆓 Free Tier Status:\n\nUsed: %d/%d\nRemaining: %d\nStatus: %s\n\n💎 Premium Users: %d",
		st.Free, st.Capacity, st.FreeRemaining(), status, st.Paid)
}

func formatAdmins(admins []string, mainAdmin string) string {
	var b strings.Builder
	b.WriteString("👑 Current Admins:\n\n")
	for _, id := range admins {
		if id == mainAdmin {
			fmt.Fprintf(&b, "• %s (Main Admin) 👑\n", id)
			continue
		}
		fmt.Fprintf(&b, "• %s 🛠️\n", id)
	}
	fmt.Fprintf(&b, "\n📊 Total Admins: %d", len(admins))
	return b.String()
}

type expiring struct {
	userID string
	days   int
}

// dashboard данные для /admin
type dashboard struct {
	stats        accessservice.Stats
	pending      []models.PendingPayment
	expiring     []expiring
	signalsToday int
	pairs        int
	scanEvery    time.Duration
}

func formatDashboard(d dashboard) string {
	var b strings.Builder
	b.WriteString("🛠️ ADMIN DASHBOARD\n━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	b.WriteString("📊 BOT STATUS:\n")
	fmt.Fprintf(&b, "• Signals sent today: %d\n", d.signalsToday)
	fmt.Fprintf(&b, "• Monitoring: %d USDT pairs\n", d.pairs)
	fmt.Fprintf(&b, "• Scan frequency: every %s\n\n", every(d.scanEvery))

	b.WriteString("👥 USER STATISTICS:\n")
	fmt.Fprintf(&b, "• Free users: %d/%d\n", d.stats.Free, d.stats.Capacity)
	fmt.Fprintf(&b, "• Premium users: %d\n", d.stats.Paid)
	fmt.Fprintf(&b, "• Total active: %d\n", d.stats.Total)
	fmt.Fprintf(&b, "• Free slots remaining: %d\n\n", d.stats.FreeRemaining())

	b.WriteString("⏰ SUBSCRIPTIONS:\n")
	if len(d.expiring) == 0 {
		b.WriteString("• Nothing expires within 7 days\n\n")
	} else {
		fmt.Fprintf(&b, "• Expiring within 7 days: %d\n", len(d.expiring))
		for _, e := range d.expiring[:min(len(d.expiring), 3)] {
			fmt.Fprintf(&b, "  - User %s: %d days\n", e.userID, e.days)
		}
		b.WriteString("\n")
	}

	b.WriteString("💳 PENDING PAYMENTS:\n")
	if len(d.pending) == 0 {
		b.WriteString("• No pending payments\n\n")
	} else {
		fmt.Fprintf(&b, "• Total pending: %d\n", len(d.pending))
		for _, p := range d.pending[:min(len(d.pending), 3)] {
			fmt.Fprintf(&b, "  - User %s: %s\n", p.UserID, p.Method)
		}
		b.WriteString("\n")
	}

	b.WriteString("🛠️ ADMIN COMMANDS:\n" +
		"• /adduser <user_id> [days] • /removeuser <user_id>\n" +
		"• /verify <user_id> [days] • /pending\n" +
		"• /listusers • /freestats • /stats • /profiles\n" +
		"• /test [symbol] • /restart\n" +
		"• /addadmin <user_id> • /removeadmin <user_id> • /listadmins\n\n")
	fmt.Fprintf(&b, "👑 Current Admins: %d", d.stats.Admins)
	return b.String()
}

func formatProfileStats(st models.ProfileStats) string {
	return fmt.Sprintf("📈 Usage Statistics:\n\n"+
		"👥 Total users: %d\n"+
		"📅 Active this week: %d\n"+
		"☀️ Active today: %d\n"+
		"⌨️ Commands handled: %d\n"+
		"📡 Signals sent: %d\n"+
		"📬 Deliveries: %d",
		st.TotalUsers, st.WeeklyActive, st.DailyActive, st.TotalCommands, st.TotalSignalsSent, st.TotalDeliveries)
}

func formatProfiles(profiles []models.UserProfile) string {
	if len(profiles) == 0 {
		return "👤 No user profiles yet."
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].LastActivity.After(profiles[j].LastActivity)
	})
	var b strings.Builder
	b.WriteString("👤 User Profiles:\n")
	for _, p := range profiles {
		name := strings.TrimSpace(p.FirstName + " " + p.LastName)
		if p.Username != "" {
			name = strings.TrimSpace(name + " @" + p.Username)
		}
		fmt.Fprintf(&b, "\n• %s %s\n  cmds %d | signals %d | week %d | last %s\n",
			p.UserID, name, p.TotalCommands, p.SignalsReceived, p.WeekActivity,
			p.LastActivity.Format("01/02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}
