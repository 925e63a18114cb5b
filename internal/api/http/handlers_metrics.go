package http

import (
	"time"

	"github.com/probelab/lanscope/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackProbeOperation tracks probe lifecycle operations
func (hm *HandlerMetrics) TrackProbeOperation(operation string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start)
		hm.metrics.RecordServiceCall("probe_lifecycle", operation, "success", duration)
	}
}

// TrackPermissionOperation tracks permission reader operations
func (hm *HandlerMetrics) TrackPermissionOperation(operation string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start)
		hm.metrics.RecordServiceCall("permission_reader", operation, "success", duration)
	}
}

// TrackCatalogOperation tracks target catalog operations
func (hm *HandlerMetrics) TrackCatalogOperation(operation string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start)
		hm.metrics.RecordServiceCall("target_catalog", operation, "success", duration)
	}
}

// TrackServiceOperation tracks service registry operations
func (hm *HandlerMetrics) TrackServiceOperation(operation string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start)
		hm.metrics.RecordServiceCall("service_registry", operation, "success", duration)
	}
}
