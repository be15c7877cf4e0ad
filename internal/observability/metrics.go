package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/matchday-feed/internal/domain/upsert"
	"github.com/riskibarqy/matchday-feed/internal/platform/resilience"
)

const metricsNamespace = "matchday"

// ScrapeMetrics records one observation per pipeline cycle. It owns its
// registry so tests and multiple instances do not collide on the global one.
type ScrapeMetrics struct {
	registry    *prometheus.Registry
	cycles      *prometheus.CounterVec
	rowsWritten *prometheus.CounterVec
	rowErrors   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	circuitOpen *prometheus.GaugeVec
	transitions *prometheus.CounterVec
}

// CacheStats is implemented by caches that count lookups.
type CacheStats interface {
	Stats() (hits, misses uint64)
}

func NewScrapeMetrics() *ScrapeMetrics {
	m := &ScrapeMetrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scrape",
			Name:      "cycles_total",
			Help:      "Completed scrape cycles by domain and data source (live or mock).",
		}, []string{"domain", "outcome"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scrape",
			Name:      "rows_written_total",
			Help:      "Rows persisted by scrape cycles.",
		}, []string{"domain"}),
		rowErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scrape",
			Name:      "row_errors_total",
			Help:      "Rows rejected or failed during persistence.",
		}, []string{"domain"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "scrape",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of a scrape cycle from fetch to persistence.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"domain"}),
		circuitOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "scrape",
			Name:      "circuit_open",
			Help:      "1 while fetches to the upstream host are short-circuited.",
		}, []string{"host"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scrape",
			Name:      "circuit_transitions_total",
			Help:      "Circuit breaker state changes per upstream host.",
		}, []string{"host", "to"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cycles,
		m.rowsWritten,
		m.rowErrors,
		m.duration,
		m.circuitOpen,
		m.transitions,
	)
	return m
}

func (m *ScrapeMetrics) ObserveCycle(domain, source string, result upsert.Result, elapsed time.Duration) {
	m.cycles.WithLabelValues(domain, source).Inc()
	m.rowsWritten.WithLabelValues(domain).Add(float64(result.Written))
	m.rowErrors.WithLabelValues(domain).Add(float64(result.Failed))
	m.duration.WithLabelValues(domain).Observe(elapsed.Seconds())
}

// ObserveCircuit matches resilience.StateChangeFunc.
func (m *ScrapeMetrics) ObserveCircuit(host string, _, to resilience.CircuitState) {
	m.transitions.WithLabelValues(host, string(to)).Inc()
	open := 0.0
	if to == resilience.CircuitStateOpen {
		open = 1
	}
	m.circuitOpen.WithLabelValues(host).Set(open)
}

// RegisterCache exposes hit and miss counters of a read cache under name.
func (m *ScrapeMetrics) RegisterCache(name string, cache CacheStats) error {
	labels := prometheus.Labels{"cache": name}
	hits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "cache",
		Name:        "hits_total",
		Help:        "Read cache lookups served from memory.",
		ConstLabels: labels,
	}, func() float64 {
		h, _ := cache.Stats()
		return float64(h)
	})
	misses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   metricsNamespace,
		Subsystem:   "cache",
		Name:        "misses_total",
		Help:        "Read cache lookups that went to the store.",
		ConstLabels: labels,
	}, func() float64 {
		_, miss := cache.Stats()
		return float64(miss)
	})
	if err := m.registry.Register(hits); err != nil {
		return err
	}
	return m.registry.Register(misses)
}

func (m *ScrapeMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
