// Package metrics registers munin's Prometheus collectors directly
// against prometheus/client_golang (promauto/promhttp), the way
// location-service's cmd/main.go wires metrics — not through the
// teacher's go-shared metrics wrapper, which lives in an unfetchable
// private module.
package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hove-io/munin/internal/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector munin-api registers, namespaced the way
// the teacher namespaces location-service's collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PrefixPassHits  prometheus.Counter
	FuzzyPassRuns   prometheus.Counter
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
}

// New registers munin's collectors against the default Prometheus
// registry. Call once per process; promauto panics on double-registration,
// matching the teacher's single-call-site discipline in initMetrics.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer is New against an explicit registerer, so tests (and
// any process that needs more than one Metrics instance) avoid colliding
// on the global default registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	const namespace = "munin"
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled, by route and status.",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds, by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		PrefixPassHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "search",
				Name:      "prefix_pass_hits_total",
				Help:      "Autocomplete requests satisfied by the prefix pass alone.",
			},
		),
		FuzzyPassRuns: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "search",
				Name:      "fuzzy_pass_runs_total",
				Help:      "Autocomplete requests that fell through to the fuzzy pass.",
			},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "hits_total",
				Help:      "Response cache hits.",
			},
		),
		CacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "misses_total",
				Help:      "Response cache misses.",
			},
		),
	}
}

// CounterBridge snapshots a search.Coordinator's cumulative
// pass counters into the corresponding Prometheus counters. Coordinator
// tracks plain int64 totals rather than its own collectors (spec.md §8
// property 5 only asks that the split be "observable"); this bridges
// that running total into Prometheus by adding the delta since the last
// observation.
type CounterBridge struct {
	m          *Metrics
	lastPrefix int64
	lastFuzzy  int64
}

func NewCounterBridge(m *Metrics) *CounterBridge {
	return &CounterBridge{m: m}
}

func (b *CounterBridge) Observe(c *search.Counters) {
	if c == nil {
		return
	}
	if delta := c.PrefixPassHits - b.lastPrefix; delta > 0 {
		b.m.PrefixPassHits.Add(float64(delta))
		b.lastPrefix = c.PrefixPassHits
	}
	if delta := c.FuzzyPassRuns - b.lastFuzzy; delta > 0 {
		b.m.FuzzyPassRuns.Add(float64(delta))
		b.lastFuzzy = c.FuzzyPassRuns
	}
}

// Middleware records request count and latency per route, mirroring the
// shape of the teacher's gin instrumentation (method-agnostic route
// label, status code label).
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(m.RequestDuration.WithLabelValues(c.FullPath()))
		c.Next()
		timer.ObserveDuration()
		m.RequestsTotal.WithLabelValues(c.FullPath(), http.StatusText(c.Writer.Status())).Inc()
	}
}

// Handler exposes the registered collectors the same way the teacher
// mounts /metrics: gin.WrapH(promhttp.Handler()).
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
