package health

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"signal_bot/internal/modules/health/service"

	"github.com/stretchr/testify/require"
)

func TestMuxProbes(t *testing.T) {
	state := service.NewState()
	reg := NewRegistry()
	m := NewMetrics(reg)
	m.Checked()

	mux := NewMux(Config{Addr: ":0", MaxCycleAge: time.Minute}, state, reg)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	require.Equal(t, http.StatusOK, get("/livez").Code)
	require.Equal(t, http.StatusServiceUnavailable, get("/readyz").Code)

	state.SetReady(true)
	state.TouchCycle(time.Now())
	require.Equal(t, http.StatusOK, get("/readyz").Code)

	state.TouchCycle(time.Now().Add(-time.Hour))
	require.Equal(t, http.StatusServiceUnavailable, get("/readyz").Code, "stale cycle")

	rec := get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"cycles":2`)

	rec = get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "signalbot_symbols_checked_total 1"))
}
