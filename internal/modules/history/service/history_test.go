package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	stateservice "signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	m.Run()
}

func TestHistoryRing(t *testing.T) {
	h := NewHistory(5, nil)
	base := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		h.Add(fmt.Sprintf("S%dUSDT", i), fmt.Sprintf("msg %d", i), base.Add(time.Duration(i)*time.Hour))
	}

	got := h.Recent()
	require.Len(t, got, 5)
	require.Equal(t, "S5USDT", got[0].Symbol, "newest first")
	require.Equal(t, "S1USDT", got[4].Symbol, "oldest kept")
	for _, e := range got {
		require.NotEqual(t, "S0USDT", e.Symbol, "oldest evicted")
	}
	require.Equal(t, "01/02 20:04", got[0].DateShort())
}

func TestHistoryRecentIsCopy(t *testing.T) {
	h := NewHistory(5, nil)
	h.Add("BTCUSDT", "m", time.Now())

	got := h.Recent()
	got[0].Symbol = "mutated"
	require.Equal(t, "BTCUSDT", h.Recent()[0].Symbol)
}

func TestHistorySince(t *testing.T) {
	h := NewHistory(5, nil)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	h.Add("A", "", day.Add(-time.Hour))
	h.Add("B", "", day.Add(time.Hour))
	h.Add("C", "", day.Add(2*time.Hour))

	require.Equal(t, 2, h.Since(day))
	require.Equal(t, 3, h.Len())
}

func TestHistoryRestore(t *testing.T) {
	st := stateservice.NewMemory()
	h := NewHistory(5, st)
	for i := 0; i < 3; i++ {
		h.Add(fmt.Sprintf("S%d", i), "m", time.Date(2026, 1, 1, i, 0, 0, 0, time.UTC))
	}

	r := NewHistory(2, st)
	require.NoError(t, r.Restore(context.Background()))
	got := r.Recent()
	require.Len(t, got, 2)
	require.Equal(t, "S2", got[0].Symbol)
	require.Equal(t, "S1", got[1].Symbol)
}
