// Package metrics exposes Prometheus metrics for HTTP traffic and the
// extraction pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// Extraction outcomes used as the "outcome" label.
const (
	OutcomeDone       = "done"
	OutcomeError      = "error"
	OutcomeInProgress = "in_progress"
)

// Collector holds all Prometheus metrics of the service on a private registry.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Extraction metrics
	ExtractionRuns     *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
	ExtractsInserted   prometheus.Counter
	ExtractsDuplicate  prometheus.Counter
	UpstreamBreaker    *prometheus.GaugeVec
}

// New creates a collector whose metric names are prefixed with namespace.
func New(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ExtractionRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extraction_runs_total",
				Help:      "Extraction runs by outcome",
			},
			[]string{"outcome"},
		),
		ExtractionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "extraction_duration_seconds",
				Help:      "Wall time of an extraction run, including upstream polling",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		ExtractsInserted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extracts_inserted_total",
				Help:      "Extracts stored by extraction runs",
			},
		),
		ExtractsDuplicate: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extracts_duplicate_total",
				Help:      "Candidate quotes skipped because their content hash already existed",
			},
		),
		UpstreamBreaker: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "upstream_breaker_state",
				Help:      "Circuit breaker state of upstream calls (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.ExtractionRuns,
		c.ExtractionDuration,
		c.ExtractsInserted,
		c.ExtractsDuplicate,
		c.UpstreamBreaker,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry (used by tests).
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveHTTP records one finished request.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveExtraction records the outcome of one extraction run.
func (c *Collector) ObserveExtraction(outcome string, res domain.ExtractionResult, d time.Duration) {
	c.ExtractionRuns.WithLabelValues(outcome).Inc()
	c.ExtractionDuration.Observe(d.Seconds())
	c.ExtractsInserted.Add(float64(res.Extracted))
	c.ExtractsDuplicate.Add(float64(res.Duplicates))
}

// SetBreakerState publishes a circuit breaker state (0 closed, 1 half-open, 2 open).
func (c *Collector) SetBreakerState(name string, state int) {
	c.UpstreamBreaker.WithLabelValues(name).Set(float64(state))
}
