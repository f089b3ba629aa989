package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics все коллекторы бота. Методы безопасны для nil-получателя, чтобы тесты обходились без реестра.
type Metrics struct {
	FetchTotal      *prometheus.CounterVec // provider, result
	CycleDuration   prometheus.Histogram
	SymbolsChecked  prometheus.Counter
	SignalsFired    *prometheus.CounterVec // grade
	Deliveries      prometheus.Counter
	DeliveryErrors  prometheus.Counter
	CommandsTotal   *prometheus.CounterVec // command
	PanicsTotal     *prometheus.CounterVec // component
	Recipients      prometheus.Gauge
	UsersByTier     *prometheus.GaugeVec // tier
	DispatcherStart prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_candle_fetch_total",
			Help: "Candle fetches by provider and result",
		}, []string{"provider", "result"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signalbot_cycle_duration_seconds",
			Help:    "Dispatcher cycle duration without sleep",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
		SymbolsChecked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_symbols_checked_total",
			Help: "Symbols evaluated by the detector",
		}),
		SignalsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_signals_fired_total",
			Help: "Signals broadcast, by grade",
		}, []string{"grade"}),
		Deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_deliveries_total",
			Help: "Successful signal deliveries",
		}),
		DeliveryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_delivery_errors_total",
			Help: "Failed signal deliveries",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_commands_total",
			Help: "Telegram commands handled",
		}, []string{"command"}),
		PanicsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signalbot_panics_total",
			Help: "Recovered panics by component",
		}, []string{"component"}),
		Recipients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signalbot_broadcast_recipients",
			Help: "Recipients of the last broadcast",
		}),
		UsersByTier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signalbot_users",
			Help: "Users by access tier",
		}, []string{"tier"}),
		DispatcherStart: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signalbot_dispatcher_starts_total",
			Help: "Dispatcher loop (re)starts",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.FetchTotal,
			m.CycleDuration,
			m.SymbolsChecked,
			m.SignalsFired,
			m.Deliveries,
			m.DeliveryErrors,
			m.CommandsTotal,
			m.PanicsTotal,
			m.Recipients,
			m.UsersByTier,
			m.DispatcherStart,
		)
	}
	return m
}

func (m *Metrics) Fetch(provider string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.FetchTotal.WithLabelValues(provider, result).Inc()
}

func (m *Metrics) ObserveCycle(d time.Duration) {
	if m == nil {
		return
	}
	m.CycleDuration.Observe(d.Seconds())
}

func (m *Metrics) Checked() {
	if m == nil {
		return
	}
	m.SymbolsChecked.Inc()
}

func (m *Metrics) Fired(grade string, recipients, delivered int) {
	if m == nil {
		return
	}
	m.SignalsFired.WithLabelValues(grade).Inc()
	m.Recipients.Set(float64(recipients))
	m.Deliveries.Add(float64(delivered))
	if failed := recipients - delivered; failed > 0 {
		m.DeliveryErrors.Add(float64(failed))
	}
}

func (m *Metrics) Command(name string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) Panic(component string) {
	if m == nil {
		return
	}
	m.PanicsTotal.WithLabelValues(component).Inc()
}

func (m *Metrics) Users(free, paid, admins int) {
	if m == nil {
		return
	}
	m.UsersByTier.WithLabelValues("free").Set(float64(free))
	m.UsersByTier.WithLabelValues("paid").Set(float64(paid))
	m.UsersByTier.WithLabelValues("admin").Set(float64(admins))
}

func (m *Metrics) Started() {
	if m == nil {
		return
	}
	m.DispatcherStart.Inc()
}
