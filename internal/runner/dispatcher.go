package runner

import (
	"context"
	"runtime/debug"
	"time"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	accessservice "signal_bot/internal/modules/access/service"
	cooldownservice "signal_bot/internal/modules/cooldown/service"
	healthservice "signal_bot/internal/modules/health/service"
	historyservice "signal_bot/internal/modules/history/service"
	stateservice "signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

// Notifier транспорт сигналов и системных уведомлений
type Notifier interface {
	Broadcast(ctx context.Context, userIDs []string, text string) int
	RenderSignal(v models.Verdict) string
	NotifyExpired(ctx context.Context, userID string)
}

// ProfileLogger журнал сигналов в профильной базе. Ошибки не фатальны.
type ProfileLogger interface {
	LogSignal(ctx context.Context, symbol, message string, sentTo int) error
	IncSignalsReceived(ctx context.Context, userIDs []string) error
}

type Options struct {
	Symbols       []string
	PairsPerCycle int
	CycleInterval time.Duration
	PollInterval  time.Duration
	RestartDelay  time.Duration
	ErrorBackoff  time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Symbols:       cfg.Market.Symbols,
		PairsPerCycle: cfg.PairsPerCycle,
		CycleInterval: cfg.CycleInterval,
		PollInterval:  cfg.PollInterval,
		RestartDelay:  cfg.RestartDelay,
		ErrorBackoff:  cfg.ErrorBackoff,
	}
}

func (o *Options) applyDefaults() {
	if o.PairsPerCycle <= 0 {
		o.PairsPerCycle = 1
	}
	if o.CycleInterval <= 0 {
		o.CycleInterval = 15 * time.Minute
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 5 * time.Second
	}
	if o.RestartDelay <= 0 {
		o.RestartDelay = 3 * time.Second
	}
	if o.ErrorBackoff <= 0 {
		o.ErrorBackoff = 10 * time.Second
	}
}

type Deps struct {
	Analyzer *Analyzer
	Notifier Notifier
	Access   *accessservice.Controller
	Cooldown *cooldownservice.Tracker
	History  *historyservice.History
	Profiles ProfileLogger
	Store    stateservice.Store
	Restart  *RestartSignal
	Metrics  *metrics.Metrics
	Health   *healthservice.State
}

// Dispatcher цикл мониторинга: раз в CycleInterval берёт следующую пачку символов по кругу,
// прогоняет детектор и рассылает сработавшие сигналы.
// Все поля ниже принадлежат горутине цикла.
type Dispatcher struct {
	opts Options
	Deps
	now func() time.Time

	cursor int
	sent   map[string]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

func NewDispatcher(opts Options, deps Deps) *Dispatcher {
	opts.applyDefaults()
	return &Dispatcher{
		opts: opts,
		Deps: deps,
		now:  time.Now,
		sent: make(map[string]struct{}),
	}
}

// WithClock подменяет часы (тесты).
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

func (d *Dispatcher) Cursor() int { return d.cursor }

// Restore поднимает курсор после рестарта
func (d *Dispatcher) Restore(ctx context.Context) error {
	if d.Store == nil {
		return nil
	}
	var cursor int
	ok, err := d.Store.Load(ctx, stateservice.KeyCursor, &cursor)
	if err != nil || !ok {
		return err
	}
	if cursor < 0 || cursor >= len(d.opts.Symbols) {
		cursor = 0
	}
	d.cursor = cursor
	return nil
}

// RunCycle один проход: sweep подписок, пачка символов, сдвиг курсора.
func (d *Dispatcher) RunCycle(ctx context.Context) {
	started := d.now()
	span, ctx := tracing.StartSpan(ctx, "dispatcher.cycle", map[string]any{"cursor": d.cursor})
	defer span.Finish()

	d.sweepExpired(ctx)

	batch := d.selectBatch()
	for _, symbol := range batch {
		if ctx.Err() != nil {
			break
		}
		d.processSymbol(ctx, symbol)
	}
	d.advanceCursor(ctx, len(batch))

	st := d.Access.Stats()
	d.Metrics.Users(st.Free, st.Paid, st.Admins)
	d.Metrics.ObserveCycle(d.now().Sub(started))
	d.Health.TouchCycle(d.now())
	logger.Debug("[DISPATCH] cycle done batch=%v next=%d", batch, d.cursor)
}

func (d *Dispatcher) sweepExpired(ctx context.Context) {
	for _, userID := range d.Access.SweepExpired() {
		logger.Info("[DISPATCH] subscription expired user=%s", userID)
		d.Notifier.NotifyExpired(ctx, userID)
	}
}

func (d *Dispatcher) selectBatch() []string {
	n := len(d.opts.Symbols)
	if n == 0 {
		return nil
	}
	if d.cursor >= n {
		d.cursor = 0
	}
	end := min(d.cursor+d.opts.PairsPerCycle, n)
	return d.opts.Symbols[d.cursor:end]
}

func (d *Dispatcher) advanceCursor(ctx context.Context, n int) {
	d.cursor += n
	if d.cursor >= len(d.opts.Symbols) {
		d.cursor = 0
	}
	if d.Store == nil {
		return
	}
	if err := d.Store.Save(ctx, stateservice.KeyCursor, d.cursor); err != nil {
		logger.Warn("[DISPATCH] persist cursor: %v", err)
	}
}

// processSymbol паника по одному символу не роняет цикл
func (d *Dispatcher) processSymbol(ctx context.Context, symbol string) {
	defer func() {
		if r := recover(); r != nil {
			d.Metrics.Panic("dispatcher")
			logger.Error("[DISPATCH] %s panic: %v\n%s", symbol, r, debug.Stack())
		}
	}()

	if d.Cooldown.IsCoolingDown(symbol) {
		logger.Debug("[DISPATCH] %s cooling down, %s left", symbol, d.Cooldown.Remaining(symbol))
		return
	}

	span, ctx := tracing.StartSpan(ctx, "dispatcher.symbol", map[string]any{"symbol": symbol})
	v, err := d.Analyzer.Analyze(ctx, symbol)
	tracing.Finish(span, err)
	d.Metrics.Checked()
	if err != nil {
		logger.Warn("[DISPATCH] %s: %v", symbol, err)
		return
	}

	if !v.Fired {
		delete(d.sent, symbol)
		if v.Reason != "" {
			logger.Debug("[DISPATCH] %s no signal: %s", symbol, v.Reason)
		}
		return
	}
	if _, dup := d.sent[symbol]; dup {
		logger.Debug("[DISPATCH] %s still firing, already sent", symbol)
		return
	}
	d.fire(ctx, v)
}

func (d *Dispatcher) fire(ctx context.Context, v models.Verdict) {
	text := d.Notifier.RenderSignal(v)
	recipients := d.Access.Recipients()

	delivered := 0
	if len(recipients) > 0 {
		delivered = d.Notifier.Broadcast(ctx, recipients, text)
	}
	d.Metrics.Fired(string(v.Grade), len(recipients), delivered)
	logger.Info("[SIGNAL] %s grade=%s score=%d delivered=%d/%d",
		v.Symbol, v.Grade, v.Strength.Score, delivered, len(recipients))

	// никому не дошло: без кулдауна и истории, повторим в следующий раз
	if delivered == 0 {
		return
	}

	d.sent[v.Symbol] = struct{}{}
	d.History.Add(v.Symbol, text, d.now())
	d.Cooldown.Start(v.Symbol)

	if d.Profiles == nil {
		return
	}
	if err := d.Profiles.LogSignal(ctx, v.Symbol, text, delivered); err != nil {
		logger.Warn("[DISPATCH] log signal %s: %v", v.Symbol, err)
	}
	if err := d.Profiles.IncSignalsReceived(ctx, recipients); err != nil {
		logger.Warn("[DISPATCH] signals received %s: %v", v.Symbol, err)
	}
}
