package http

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks request outcomes across the API surface.
type Metrics struct {
	FetchTotal       *prometheus.CounterVec
	ScanTotal        *prometheus.CounterVec
	CompletionsTotal *prometheus.CounterVec
	SessionsActive   prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics registers and returns the API metrics. Registration happens
// once per process; later calls return the same collectors.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			FetchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "readmegen",
				Subsystem: "api",
				Name:      "fetch_total",
				Help:      "Remote repository fetches by outcome.",
			}, []string{"outcome"}),
			ScanTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "readmegen",
				Subsystem: "api",
				Name:      "scan_total",
				Help:      "Local directory scans by outcome.",
			}, []string{"outcome"}),
			CompletionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "readmegen",
				Subsystem: "api",
				Name:      "completions_total",
				Help:      "LLM completions by kind and outcome.",
			}, []string{"kind", "outcome"}),
			SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "readmegen",
				Subsystem: "api",
				Name:      "sessions_active",
				Help:      "Sessions currently held in memory.",
			}),
		}
	})
	return metrics
}

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)
