package service

import (
	"context"
	"testing"
	"time"

	stateservice "signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMain(m *testing.M) {
	logger.InitNop()
	m.Run()
}

func TestCooldownWindow(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker(48*time.Hour, nil).WithClock(clk.Now)

	require.False(t, tr.IsCoolingDown("BTCUSDT"))

	tr.Start("BTCUSDT")
	require.True(t, tr.IsCoolingDown("BTCUSDT"))
	require.False(t, tr.IsCoolingDown("ETHUSDT"))

	clk.Advance(47 * time.Hour)
	require.True(t, tr.IsCoolingDown("BTCUSDT"))

	// ровно на границе окно ещё активно
	clk.Advance(time.Hour)
	require.True(t, tr.IsCoolingDown("BTCUSDT"))

	clk.Advance(time.Second)
	require.False(t, tr.IsCoolingDown("BTCUSDT"))
	require.Equal(t, 0, tr.Active())
}

func TestCooldownRestartResetsWindow(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker(48*time.Hour, nil).WithClock(clk.Now)

	tr.Start("SOLUSDT")
	clk.Advance(40 * time.Hour)
	tr.Start("SOLUSDT")

	clk.Advance(40 * time.Hour)
	require.True(t, tr.IsCoolingDown("SOLUSDT"), "window restarts from the second call")
	require.Equal(t, 8*time.Hour, tr.Remaining("SOLUSDT"))

	clk.Advance(8*time.Hour + time.Second)
	require.False(t, tr.IsCoolingDown("SOLUSDT"))
	require.Zero(t, tr.Remaining("SOLUSDT"))
}

func TestCooldownPersistence(t *testing.T) {
	ctx := context.Background()
	st := stateservice.NewMemory()
	clk := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	tr := NewTracker(48*time.Hour, st).WithClock(clk.Now)
	tr.Start("XRPUSDT")
	tr.Start("ADAUSDT")

	clk.Advance(24 * time.Hour)
	restored := NewTracker(48*time.Hour, st).WithClock(clk.Now)
	require.NoError(t, restored.Restore(ctx))
	require.True(t, restored.IsCoolingDown("XRPUSDT"))
	require.True(t, restored.IsCoolingDown("ADAUSDT"))
	require.Equal(t, 2, restored.Active())

	// после окна restore ничего не поднимает
	clk.Advance(25 * time.Hour)
	late := NewTracker(48*time.Hour, st).WithClock(clk.Now)
	require.NoError(t, late.Restore(ctx))
	require.Equal(t, 0, late.Active())
}
