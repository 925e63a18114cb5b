package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Probe metrics
	ProbesTotal   *prometheus.CounterVec
	ProbeDuration *prometheus.HistogramVec
	ProbeInFlight prometheus.Gauge
	ProbeRejected prometheus.Counter
	StaleResults  prometheus.Counter

	// Permission metrics
	PermissionQueries *prometheus.CounterVec
	VerdictsTotal     *prometheus.CounterVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec
	ServiceErrors   *prometheus.CounterVec

	// Catalog metrics
	CatalogTargets prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ProbesTotal       int64   `json:"probes_total"`
	ProbesFailed      int64   `json:"probes_failed"`
	ActiveConnections int64   `json:"active_connections"`
	TotalDuration     float64 `json:"-"` // sum of all request durations
	RequestCount      int64   `json:"-"` // count for averaging
	AvgLatencySeconds float64 `json:"avg_latency_seconds"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscope_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lanscope_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lanscope_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lanscope_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Probe metrics
		ProbesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscope_probes_total",
				Help: "Total number of completed probes",
			},
			[]string{"phase", "zone"},
		),
		ProbeDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lanscope_probe_duration_seconds",
				Help:    "Probe round-trip duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"zone"},
		),
		ProbeInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lanscope_probe_in_flight",
				Help: "Whether a probe is currently pending (0 or 1)",
			},
		),
		ProbeRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lanscope_probe_rejected_total",
				Help: "Submissions rejected because a probe was already pending",
			},
		),
		StaleResults: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lanscope_probe_stale_results_total",
				Help: "Probe completions discarded because their submission was superseded",
			},
		),

		// Permission metrics
		PermissionQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscope_permission_queries_total",
				Help: "Total number of permission refreshes by resulting state",
			},
			[]string{"state", "supported"},
		),
		VerdictsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscope_browser_verdicts_total",
				Help: "Browser support verdicts by family",
			},
			[]string{"family", "likely_supported"},
		),

		// Service metrics
		ServiceCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscope_service_calls_total",
				Help: "Total number of service calls",
			},
			[]string{"service", "method", "status"},
		),
		ServiceDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lanscope_service_duration_seconds",
				Help:    "Service call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"service", "method"},
		),
		ServiceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscope_service_errors_total",
				Help: "Total number of service errors",
			},
			[]string{"service", "method", "error_type"},
		),

		// Catalog metrics
		CatalogTargets: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lanscope_catalog_targets",
				Help: "Number of targets in the catalog",
			},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lanscope_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscope_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "lanscope_uptime_seconds",
				Help: "Gateway uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordProbe records a completed probe
func (m *Metrics) RecordProbe(phase, zone string, duration time.Duration) {
	m.ProbesTotal.WithLabelValues(phase, zone).Inc()
	m.ProbeDuration.WithLabelValues(zone).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.ProbesTotal++
	if phase == "failed" {
		m.snapshot.ProbesFailed++
	}
	m.mu.Unlock()
}

// SetProbeInFlight flags whether a probe is pending
func (m *Metrics) SetProbeInFlight(pending bool) {
	if pending {
		m.ProbeInFlight.Set(1)
	} else {
		m.ProbeInFlight.Set(0)
	}
}

// IncProbeRejected counts a submission rejected while pending
func (m *Metrics) IncProbeRejected() {
	m.ProbeRejected.Inc()
}

// IncStaleResult counts a discarded superseded completion
func (m *Metrics) IncStaleResult() {
	m.StaleResults.Inc()
}

// RecordPermissionQuery records a permission refresh
func (m *Metrics) RecordPermissionQuery(state string, supported bool) {
	m.PermissionQueries.WithLabelValues(state, boolLabel(supported)).Inc()
}

// RecordVerdict records a browser support verdict
func (m *Metrics) RecordVerdict(family string, likelySupported bool) {
	m.VerdictsTotal.WithLabelValues(family, boolLabel(likelySupported)).Inc()
}

// RecordServiceCall records a service call
func (m *Metrics) RecordServiceCall(service, method, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, method, status).Inc()
	m.ServiceDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordServiceError records a service error
func (m *Metrics) RecordServiceError(service, method, errorType string) {
	m.ServiceErrors.WithLabelValues(service, method, errorType).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetCatalogTargets sets the number of cataloged targets
func (m *Metrics) SetCatalogTargets(count int) {
	m.CatalogTargets.Set(float64(count))
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
