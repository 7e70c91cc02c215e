package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Timer measures one operation; Stop records the elapsed time
type Timer interface {
	Stop()
}

// Metrics holds the gateway's Prometheus collectors. Every observation is
// also forwarded to the CloudWatch publisher when one is attached.
//
// Labels:
//   - query events: event (query_count, query_success, query_errors), query
//   - upstream: operation (get_object, get_posts, ...), outcome (success, error)
//   - enrichment: kind (comment, like), outcome (enriched, unenriched)
type Metrics struct {
	registry *prometheus.Registry

	queryEvents      *prometheus.CounterVec
	queryDuration    *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	enrichmentTotal  *prometheus.CounterVec

	publisher *CloudWatchPublisher
}

// NewMetrics creates and registers all collectors on a private registry
func NewMetrics(namespace string, publisher *CloudWatchPublisher) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queryEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "events_total",
				Help:      "Query bus events by event and query type",
			},
			[]string{"event", "query"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Query handling time in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"query"},
		),
		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "requests_total",
				Help:      "Graph API calls by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "duration_seconds",
				Help:      "Graph API call latency in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		enrichmentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "enrichment",
				Name:      "items_total",
				Help:      "Enrichment outcomes by item kind",
			},
			[]string{"kind", "outcome"},
		),
		publisher: publisher,
	}

	m.registry.MustRegister(
		m.queryEvents,
		m.queryDuration,
		m.upstreamTotal,
		m.upstreamDuration,
		m.enrichmentTotal,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Increment counts a query bus event
func (m *Metrics) Increment(metric, label string) {
	m.queryEvents.WithLabelValues(metric, label).Inc()
	m.publisher.Add(metric, 1, UnitCount, Dimension{"Query", label})
}

// StartTimer starts timing a query
func (m *Metrics) StartTimer(metric, label string) Timer {
	return &timer{start: time.Now(), observe: func(d time.Duration) {
		m.queryDuration.WithLabelValues(label).Observe(d.Seconds())
		m.publisher.Add(metric, float64(d.Milliseconds()), UnitMilliseconds, Dimension{"Query", label})
	}}
}

// ObserveUpstream records one Graph API call
func (m *Metrics) ObserveUpstream(operation string, ok bool, duration time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	m.upstreamTotal.WithLabelValues(operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.publisher.Add("UpstreamLatency", float64(duration.Milliseconds()), UnitMilliseconds,
		Dimension{"Operation", operation}, Dimension{"Outcome", outcome})
}

// RecordEnrichment records one enrichment outcome
func (m *Metrics) RecordEnrichment(kind string, enriched bool) {
	outcome := "enriched"
	if !enriched {
		outcome = "unenriched"
	}
	m.enrichmentTotal.WithLabelValues(kind, outcome).Inc()
	m.publisher.Add("Enrichment", 1, UnitCount, Dimension{"Kind", kind}, Dimension{"Outcome", outcome})
}

type timer struct {
	start   time.Time
	observe func(time.Duration)
}

func (t *timer) Stop() {
	t.observe(time.Since(t.start))
}
