package providers

import (
	"scorekeeper/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	ObserveBackupDuration(duration time.Duration)
	IncBackupsTotal(result string)
	IncRestoresTotal(result string)
	SetSnapshotsTotal(count int)
	IncGuestLinks(outcome string)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backupDuration  prometheus.Histogram
	backupsTotal    *prometheus.CounterVec
	restoresTotal   *prometheus.CounterVec
	snapshotsTotal  prometheus.Gauge
	guestLinksTotal *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveBackupDuration(duration time.Duration) {
	m.backupDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncBackupsTotal(result string) {
	m.backupsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncRestoresTotal(result string) {
	m.restoresTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) SetSnapshotsTotal(count int) {
	m.snapshotsTotal.Set(float64(count))
}

func (m *MetricsProvider) IncGuestLinks(outcome string) {
	m.guestLinksTotal.WithLabelValues(outcome).Inc()
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
			Name: "scorekeeper_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scorekeeper_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		backupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "scorekeeper_backup_duration_seconds",
			Help:    "Duration of backup creation in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		backupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_backups_total",
			Help: "Total number of backup runs by result",
		}, []string{"result"}),

		restoresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_restores_total",
			Help: "Total number of restore runs by result",
		}, []string{"result"}),

		snapshotsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scorekeeper_snapshots",
			Help: "Number of snapshot files kept on disk",
		}),

		guestLinksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_guest_links_total",
			Help: "Guest link operations by outcome",
		}, []string{"outcome"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) ObserveBackupDuration(_ time.Duration)            {}
func (n *noopMetrics) IncBackupsTotal(_ string)                         {}
func (n *noopMetrics) IncRestoresTotal(_ string)                        {}
func (n *noopMetrics) SetSnapshotsTotal(_ int)                          {}
func (n *noopMetrics) IncGuestLinks(_ string)                           {}
