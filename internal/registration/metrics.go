package registration

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes used as the "result" label.
const (
	ResultSuccess   = "success"
	ResultRejected  = "rejected"
	ResultTransport = "transport_error"
)

// Metrics contains Prometheus metrics for registration calls.
type Metrics struct {
	registrations *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewMetrics creates registration metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcpwiz_registrations_total",
				Help: "Total number of target registration calls",
			},
			[]string{"category", "kind", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcpwiz_registration_duration_seconds",
				Help:    "Duration of target registration calls",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"category"},
		),
	}
}

func (m *Metrics) observe(category, kind, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(category, kind, result).Inc()
	m.duration.WithLabelValues(category).Observe(elapsed.Seconds())
}
