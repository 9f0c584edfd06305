package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	computeLatency *prometheus.HistogramVec
	refreshRuns    *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	subscribers    prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_signal_cache_hits_total",
				Help: "Signal cache hits by signal kind",
			},
			[]string{"kind"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_signal_cache_misses_total",
				Help: "Signal cache misses by signal kind",
			},
			[]string{"kind"},
		),
		computeLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_signal_compute_seconds",
				Help:    "Signal computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		refreshRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_refresh_runs_total",
				Help: "Background refresh cycles by outcome",
			},
			[]string{"outcome"},
		),
		transitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_recommendation_transitions_total",
				Help: "Detected recommendation transitions by symbol",
			},
			[]string{"symbol"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_provider_errors_total",
				Help: "Upstream provider errors by provider",
			},
			[]string{"provider"},
		),
		subscribers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stockpulse_ws_subscribers",
				Help: "Currently connected WebSocket clients",
			},
		),
	}
}

// RecordCacheHit records a signal cache hit.
func (r *Recorder) RecordCacheHit(kind string) {
	r.cacheHits.WithLabelValues(kind).Inc()
}

// RecordCacheMiss records a signal cache miss.
func (r *Recorder) RecordCacheMiss(kind string) {
	r.cacheMisses.WithLabelValues(kind).Inc()
}

// RecordComputeLatency records signal computation latency in seconds.
func (r *Recorder) RecordComputeLatency(kind string, seconds float64) {
	r.computeLatency.WithLabelValues(kind).Observe(seconds)
}

// RecordRefreshRun records a completed refresh cycle.
func (r *Recorder) RecordRefreshRun(outcome string) {
	r.refreshRuns.WithLabelValues(outcome).Inc()
}

// RecordTransition records a recommendation transition.
func (r *Recorder) RecordTransition(symbol string) {
	r.transitions.WithLabelValues(symbol).Inc()
}

// RecordProviderError records an upstream provider failure.
func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

// SetSubscribers sets the connected WebSocket client count.
func (r *Recorder) SetSubscribers(n int) {
	r.subscribers.Set(float64(n))
}
