package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.Fetch("binance", true)
		m.Fired("both", 3, 2)
		m.Command("/start")
		m.Panic("dispatcher")
		m.Users(1, 2, 3)
		m.Started()
		m.Checked()
	})
}

func TestFiredCountsDeliveries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Fired("single", 5, 3)
	m.Fetch("coingecko", false)

	require.Equal(t, 3.0, testutil.ToFloat64(m.Deliveries))
	require.Equal(t, 2.0, testutil.ToFloat64(m.DeliveryErrors))
	require.Equal(t, 5.0, testutil.ToFloat64(m.Recipients))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SignalsFired.WithLabelValues("single")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("coingecko", "error")))
}
