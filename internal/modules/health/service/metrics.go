package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK               = "ok"
	OutcomeRetrievalError   = "retrieval_error"
	OutcomeInsufficientData = "insufficient_data"
	OutcomeInvalidConfig    = "invalid_config"
	OutcomeInternal         = "internal_error"
)

type Metrics struct {
	Registry *prometheus.Registry

	cycles   *prometheus.CounterVec
	signals  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics — свой реестр, без глобального DefaultRegisterer.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_cycles_total",
			Help: "Evaluation cycles by symbol and outcome",
		}, []string{"symbol", "outcome"}),
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_signals_total",
			Help: "Signal events emitted, by kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signal_bot_cycle_duration_seconds",
			Help:    "Fetch + evaluate + present duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"symbol"}),
	}
	m.Registry.MustRegister(m.cycles, m.signals, m.duration)
	return m
}

func (m *Metrics) ObserveCycle(symbol, outcome string, took time.Duration) {
	m.cycles.WithLabelValues(symbol, outcome).Inc()
	m.duration.WithLabelValues(symbol).Observe(took.Seconds())
}

func (m *Metrics) CountSignal(kind string) {
	m.signals.WithLabelValues(kind).Inc()
}
