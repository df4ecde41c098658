package providers

import (
	"petcare/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(method, endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(key string, duration time.Duration)
	IncPersistenceFailures(key string)
	SetRecordsTotal(store string, count int)
	IncScans(scanType string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	persistenceFailures *prometheus.CounterVec
	recordsTotal        *prometheus.GaugeVec
	scansTotal          *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(method, endpoint string, status int) {
	m.requestsTotal.WithLabelValues(method, endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(key string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(key).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceFailures(key string) {
	m.persistenceFailures.WithLabelValues(key).Inc()
}

func (m *MetricsProvider) SetRecordsTotal(store string, count int) {
	m.recordsTotal.WithLabelValues(store).Set(float64(count))
}

func (m *MetricsProvider) IncScans(scanType string) {
	m.scansTotal.WithLabelValues(scanType).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petcare_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "petcare_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "petcare_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "petcare_persistence_duration_seconds",
			Help:    "Duration of document writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"key"}),

		persistenceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_persistence_failures_total",
			Help: "Document writes that failed after all retries",
		}, []string{"key"}),

		recordsTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "petcare_records_total",
			Help: "Number of records held by each store",
		}, []string{"store"}),

		scansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "petcare_scans_total",
			Help: "Completed health scans by type",
		}, []string{"type"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_, _ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncPersistenceFailures(_ string)                      {}
func (n *noopMetrics) SetRecordsTotal(_ string, _ int)                      {}
func (n *noopMetrics) IncScans(_ string)                                    {}
