package monitoring

import "time"

// Snapshot returns current metric values for the JSON metrics endpoint.
// Prometheus owns the full exposition format; this is the demo page's
// lightweight view.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.RequestCount > 0 {
		snap.AvgLatencySeconds = snap.TotalDuration / float64(snap.RequestCount)
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
