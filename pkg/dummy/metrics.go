package dummy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records upstream request counts and latencies per endpoint.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dummy_feeds",
				Name:      "upstream_requests_total",
				Help:      "Upstream API requests by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dummy_feeds",
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream API request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

func (m *Metrics) observe(endpoint string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, Outcome(err)).Inc()
	m.latency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
