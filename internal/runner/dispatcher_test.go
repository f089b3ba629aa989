package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"signal_bot/internal/models"
	accessservice "signal_bot/internal/modules/access/service"
	cooldownservice "signal_bot/internal/modules/cooldown/service"
	historyservice "signal_bot/internal/modules/history/service"
	stateservice "signal_bot/internal/modules/state/service"
	strategyservice "signal_bot/internal/modules/strategy/service"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	m.Run()
}

var t0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func rising(n int) []models.Candle {
	out := make([]models.Candle, 0, n)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)*0.1
		out = append(out, models.Candle{
			OpenTime: t0.Add(time.Duration(i) * 4 * time.Hour),
			Open:     c - 0.05,
			High:     c + 0.1,
			Low:      c - 0.15,
			Close:    c,
			Volume:   1000,
		})
	}
	return out
}

// breakout 29 спокойных свечей и пробойная с объёмом x1.75
func breakout() []models.Candle {
	cs := rising(29)
	prev := cs[len(cs)-1]
	return append(cs, models.Candle{
		OpenTime: prev.OpenTime.Add(4 * time.Hour),
		Open:     prev.Close,
		High:     prev.Close + 3.7,
		Low:      prev.Close - 0.1,
		Close:    prev.Close + 3.2,
		Volume:   1750,
	})
}

func flat(n int) []models.Candle {
	out := make([]models.Candle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Candle{
			OpenTime: t0.Add(time.Duration(i) * 24 * time.Hour),
			Open:     100, High: 101, Low: 99, Close: 100, Volume: 1000,
		})
	}
	return out
}

type fakeSource struct {
	mu     sync.Mutex
	firing map[string]bool
	panics map[string]bool
	err    error
	calls  int
}

func (f *fakeSource) Fetch(_ context.Context, symbol string, interval models.Interval, _ int) ([]models.Candle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panics[symbol] {
		panic("provider exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	if interval == models.Interval1d {
		return flat(30), nil
	}
	if f.firing[symbol] {
		return breakout(), nil
	}
	return rising(30), nil
}

func (f *fakeSource) setFiring(symbol string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.firing[symbol] = v
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type broadcast struct {
	ids  []string
	text string
}

type fakeNotifier struct {
	mu         sync.Mutex
	deliver    bool
	broadcasts []broadcast
	expired    []string
}

func (n *fakeNotifier) Broadcast(_ context.Context, ids []string, text string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, broadcast{ids: append([]string(nil), ids...), text: text})
	if !n.deliver {
		return 0
	}
	return len(ids)
}

func (n *fakeNotifier) RenderSignal(v models.Verdict) string {
	return "SIGNAL " + v.Symbol + " " + string(v.Grade)
}

func (n *fakeNotifier) NotifyExpired(_ context.Context, userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.expired = append(n.expired, userID)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.broadcasts)
}

type signalLog struct {
	symbol string
	sentTo int
}

type fakeProfiles struct {
	signals  []signalLog
	received []string
}

func (p *fakeProfiles) LogSignal(_ context.Context, symbol, _ string, sentTo int) error {
	p.signals = append(p.signals, signalLog{symbol: symbol, sentTo: sentTo})
	return nil
}

func (p *fakeProfiles) IncSignalsReceived(_ context.Context, ids []string) error {
	p.received = append(p.received, ids...)
	return nil
}

type fixture struct {
	clk      *fakeClock
	src      *fakeSource
	notifier *fakeNotifier
	profiles *fakeProfiles
	access   *accessservice.Controller
	cooldown *cooldownservice.Tracker
	history  *historyservice.History
	store    *stateservice.Memory
	restart  *RestartSignal
}

func newFixture() *fixture {
	clk := &fakeClock{t: t0}
	return &fixture{
		clk:      clk,
		src:      &fakeSource{firing: map[string]bool{}, panics: map[string]bool{}},
		notifier: &fakeNotifier{deliver: true},
		profiles: &fakeProfiles{},
		access:   accessservice.NewController("1", 100, nil).WithClock(clk.Now),
		cooldown: cooldownservice.NewTracker(48*time.Hour, nil).WithClock(clk.Now),
		history:  historyservice.NewHistory(5, nil),
		store:    stateservice.NewMemory(),
		restart:  NewRestartSignal(),
	}
}

func (f *fixture) dispatcher(opts Options) *Dispatcher {
	return NewDispatcher(opts, Deps{
		Analyzer: NewAnalyzer(f.src, strategyservice.NewDetector("", ""), 250),
		Notifier: f.notifier,
		Access:   f.access,
		Cooldown: f.cooldown,
		History:  f.history,
		Profiles: f.profiles,
		Store:    f.store,
		Restart:  f.restart,
	}).WithClock(f.clk.Now)
}

func TestDispatcherEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.access.JoinFreeTier("u1"))
	f.src.setFiring("XUSDT", true)

	d := f.dispatcher(Options{Symbols: []string{"XUSDT"}})

	// 1-й цикл: сигнал уходит main admin и free-пользователю
	d.RunCycle(ctx)
	require.Len(t, f.notifier.broadcasts, 1)
	b := f.notifier.broadcasts[0]
	require.ElementsMatch(t, []string{"1", "u1"}, b.ids)
	require.Equal(t, "SIGNAL XUSDT single", b.text)

	require.Equal(t, 1, f.history.Len())
	require.Equal(t, "XUSDT", f.history.Recent()[0].Symbol)
	require.True(t, t0.Equal(f.history.Recent()[0].FiredAt))
	require.True(t, f.cooldown.IsCoolingDown("XUSDT"))
	require.Equal(t, []signalLog{{symbol: "XUSDT", sentTo: 2}}, f.profiles.signals)
	require.ElementsMatch(t, []string{"1", "u1"}, f.profiles.received)
	require.Equal(t, 2, f.src.Calls())

	// 2-й цикл через 15 минут: кулдаун, даже свечи не запрашиваются
	f.clk.Advance(15 * time.Minute)
	d.RunCycle(ctx)
	require.Len(t, f.notifier.broadcasts, 1)
	require.Equal(t, 2, f.src.Calls())

	// окно кончилось, но символ всё ещё в sent
	f.clk.Advance(48 * time.Hour)
	d.RunCycle(ctx)
	require.False(t, f.cooldown.IsCoolingDown("XUSDT"))
	require.Len(t, f.notifier.broadcasts, 1)

	// перестал срабатывать, затем сработал снова
	f.src.setFiring("XUSDT", false)
	d.RunCycle(ctx)
	f.src.setFiring("XUSDT", true)
	d.RunCycle(ctx)
	require.Len(t, f.notifier.broadcasts, 2)
	require.Equal(t, 2, f.history.Len())
}

func TestDispatcherZeroDeliveries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.notifier.deliver = false
	f.src.setFiring("XUSDT", true)

	d := f.dispatcher(Options{Symbols: []string{"XUSDT"}})
	d.RunCycle(ctx)

	require.Len(t, f.notifier.broadcasts, 1)
	require.Zero(t, f.history.Len())
	require.False(t, f.cooldown.IsCoolingDown("XUSDT"))
	require.Empty(t, f.profiles.signals)

	// повтор на следующем цикле
	f.notifier.deliver = true
	d.RunCycle(ctx)
	require.Len(t, f.notifier.broadcasts, 2)
	require.Equal(t, 1, f.history.Len())
	require.True(t, f.cooldown.IsCoolingDown("XUSDT"))
}

func TestDispatcherCutoverSendsToPaidOnly(t *testing.T) {
	f := newFixture()
	// main admin засеян как paid без срока: 100 free + 1 paid это уже над порогом
	for i := 0; i < 100; i++ {
		require.NoError(t, f.access.JoinFreeTier(fmt.Sprintf("f%d", i)))
	}
	f.src.setFiring("XUSDT", true)

	d := f.dispatcher(Options{Symbols: []string{"XUSDT"}})
	d.RunCycle(context.Background())

	require.Len(t, f.notifier.broadcasts, 1)
	require.Equal(t, []string{"1"}, f.notifier.broadcasts[0].ids)
	require.Equal(t, 1, f.history.Len())
}

func TestDispatcherRoundRobinCursor(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	symbols := []string{"AUSDT", "BUSDT", "CUSDT"}

	d := f.dispatcher(Options{Symbols: symbols, PairsPerCycle: 2})
	require.Equal(t, []string{"AUSDT", "BUSDT"}, d.selectBatch())
	d.RunCycle(ctx)
	require.Equal(t, 2, d.Cursor())

	require.Equal(t, []string{"CUSDT"}, d.selectBatch())
	d.RunCycle(ctx)
	require.Equal(t, 0, d.Cursor(), "cursor wraps to zero")

	d.RunCycle(ctx)
	require.Equal(t, 2, d.Cursor())

	restored := f.dispatcher(Options{Symbols: symbols, PairsPerCycle: 2})
	require.NoError(t, restored.Restore(ctx))
	require.Equal(t, 2, restored.Cursor())

	// список символов сократился: курсор вне диапазона сбрасывается
	shorter := f.dispatcher(Options{Symbols: symbols[:1]})
	require.NoError(t, shorter.Restore(ctx))
	require.Equal(t, 0, shorter.Cursor())
}

func TestDispatcherSweepNotifiesExpired(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.access.GrantPaid("p1", 1))
	f.clk.Advance(25 * time.Hour)

	d := f.dispatcher(Options{Symbols: []string{"XUSDT"}})
	d.RunCycle(context.Background())

	require.Equal(t, []string{"p1"}, f.notifier.expired)
	require.False(t, f.access.HasAccess("p1"))
}

func TestDispatcherSurvivesSymbolPanicAndFetchError(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.src.panics["BOOMUSDT"] = true
	f.src.setFiring("XUSDT", true)

	d := f.dispatcher(Options{Symbols: []string{"BOOMUSDT", "XUSDT"}, PairsPerCycle: 2})
	require.NotPanics(t, func() { d.RunCycle(ctx) })
	require.Len(t, f.notifier.broadcasts, 1)
	require.Equal(t, "SIGNAL XUSDT single", f.notifier.broadcasts[0].text)

	f.src.err = errors.New("all providers down")
	f.clk.Advance(49 * time.Hour)
	require.NotPanics(t, func() { d.RunCycle(ctx) })
	require.Len(t, f.notifier.broadcasts, 1)
}

func TestAnalyzerWrapsFetchError(t *testing.T) {
	src := &fakeSource{firing: map[string]bool{}, err: errors.New("down")}
	a := NewAnalyzer(src, strategyservice.NewDetector("", ""), 0)

	v, err := a.Analyze(context.Background(), "XUSDT")
	require.Error(t, err)
	require.ErrorIs(t, err, src.err)
	require.Equal(t, "XUSDT", v.Symbol)
	require.False(t, v.Fired)
}

func TestRunRestartsOnRequest(t *testing.T) {
	f := newFixture()
	d := NewDispatcher(Options{
		Symbols:       []string{"XUSDT"},
		CycleInterval: time.Hour,
		PollInterval:  5 * time.Millisecond,
		RestartDelay:  10 * time.Millisecond,
	}, Deps{
		Analyzer: NewAnalyzer(f.src, strategyservice.NewDetector("", ""), 250),
		Notifier: f.notifier,
		Access:   f.access,
		Cooldown: cooldownservice.NewTracker(time.Hour, nil),
		History:  f.history,
		Store:    f.store,
		Restart:  f.restart,
	})

	d.Start(context.Background())
	defer d.Stop()

	require.Eventually(t, func() bool { return f.src.Calls() == 2 }, time.Second, 5*time.Millisecond)

	// цикл спит час; рестарт запускает новый цикл сразу после RestartDelay
	f.restart.RequestRestart()
	require.Eventually(t, func() bool { return f.src.Calls() == 4 }, time.Second, 5*time.Millisecond)
	require.False(t, f.restart.Requested())
}

func TestRestartSignalConsume(t *testing.T) {
	r := NewRestartSignal()
	require.False(t, r.consume())
	r.RequestRestart()
	require.True(t, r.Requested())
	require.True(t, r.consume())
	require.False(t, r.consume())

	var nilSignal *RestartSignal
	require.False(t, nilSignal.consume())
}
