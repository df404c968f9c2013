package monitoring

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Metrics holds all Prometheus metrics of a mount session
type Metrics struct {
	registry *prometheus.Registry

	// Content metrics
	FetchesTotal  *prometheus.CounterVec
	WarmDuration  *prometheus.HistogramVec
	SourcesWarmed prometheus.Gauge
	SitePanics    *prometheus.CounterVec

	// Filesystem metrics
	OperationsTotal *prometheus.CounterVec

	// Status server metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	startTime time.Time

	// Snapshot for the status API
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current totals for the status API and the exit summary
type Snapshot struct {
	Fetches       int64   `json:"fetches"`
	FetchFailures int64   `json:"fetch_failures"`
	Warmed        int64   `json:"warmed"`
	WarmSeconds   float64 `json:"warm_seconds"`
	Operations    int64   `json:"operations"`
	Uptime        float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector with its own registry so several
// sessions can coexist in one process
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "horoscopefs_fetches_total",
				Help: "Total number of horoscope fetches by outcome",
			},
			[]string{"source", "type", "outcome"},
		),
		WarmDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "horoscopefs_warm_duration_seconds",
				Help:    "Time taken to fetch every content type of a source",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"source"},
		),
		SourcesWarmed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "horoscopefs_sources_warmed",
				Help: "Number of sources whose content is cached",
			},
		),
		SitePanics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "horoscopefs_site_panics_total",
				Help: "Total number of content providers that panicked while warming",
			},
			[]string{"source"},
		),

		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "horoscopefs_operations_total",
				Help: "Total number of filesystem operations by path kind",
			},
			[]string{"op", "kind"},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "horoscopefs_http_requests_total",
				Help: "Total number of status server requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "horoscopefs_http_request_duration_seconds",
				Help:    "Status server request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "horoscopefs_uptime_seconds",
			Help: "Time since the filesystem was started",
		},
		func() float64 {
			return time.Since(m.startTime).Seconds()
		},
	)

	return m
}

// Registry returns the registry all metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFetch records the outcome of one content type fetch
func (m *Metrics) RecordFetch(source horoscope.Source, t horoscope.ContentType, outcome string) {
	m.FetchesTotal.WithLabelValues(source.String(), t.String(), outcome).Inc()

	m.mu.Lock()
	m.snapshot.Fetches++
	if outcome == OutcomeError {
		m.snapshot.FetchFailures++
	}
	m.mu.Unlock()
}

// RecordWarm records a source whose content was built
func (m *Metrics) RecordWarm(source horoscope.Source, elapsed time.Duration) {
	m.WarmDuration.WithLabelValues(source.String()).Observe(elapsed.Seconds())
	m.SourcesWarmed.Inc()

	m.mu.Lock()
	m.snapshot.Warmed++
	m.snapshot.WarmSeconds += elapsed.Seconds()
	m.mu.Unlock()
}

// RecordPanic records a content provider that panicked
func (m *Metrics) RecordPanic(source horoscope.Source) {
	m.SitePanics.WithLabelValues(source.String()).Inc()
}

// RecordOperation records a dispatched filesystem operation
func (m *Metrics) RecordOperation(op, kind string) {
	m.OperationsTotal.WithLabelValues(op, kind).Inc()

	m.mu.Lock()
	m.snapshot.Operations++
	m.mu.Unlock()
}

// RecordHTTPRequest records a status server request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Snapshot returns the current totals
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.Uptime = time.Since(m.startTime).Seconds()
	return s
}
