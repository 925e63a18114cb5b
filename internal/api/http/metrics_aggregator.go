package http

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/stat"

	"github.com/probelab/lanscope/internal/infrastructure/monitoring"
	"github.com/probelab/lanscope/internal/infrastructure/resilience"
	"github.com/probelab/lanscope/internal/shared/types"
)

// maxLatencySamples bounds the in-memory probe latency window.
const maxLatencySamples = 512

// MetricsAggregator serves the JSON metrics views and proxies device health
// with circuit breaker protection
type MetricsAggregator struct {
	metrics    *monitoring.Metrics
	deviceURL  string
	httpClient *http.Client
	breaker    *resilience.Breaker

	mu        sync.Mutex
	latencies []float64
}

// NewMetricsAggregator creates a metrics aggregator with circuit breaker
func NewMetricsAggregator(metrics *monitoring.Metrics, deviceURL string) *MetricsAggregator {
	// Persistent HTTP client for device health collection
	httpClient := &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	breaker := resilience.New("device-health", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			// Trip after 3 consecutive failures (device health is non-critical)
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &MetricsAggregator{
		metrics:    metrics,
		deviceURL:  deviceURL,
		httpClient: httpClient,
		breaker:    breaker,
	}
}

// Observe records terminal probe durations for the latency aggregate.
// Wired as a lifecycle watcher.
func (ma *MetricsAggregator) Observe(outcome types.RequestOutcome) {
	if !outcome.Phase.Terminal() {
		return
	}

	ma.mu.Lock()
	ma.latencies = append(ma.latencies, outcome.DurationMS)
	if len(ma.latencies) > maxLatencySamples {
		ma.latencies = ma.latencies[len(ma.latencies)-maxLatencySamples:]
	}
	ma.mu.Unlock()
}

// GetJSONMetrics returns the gateway metrics snapshot for the demo page
func (ma *MetricsAggregator) GetJSONMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":      time.Now(),
		"gateway":        ma.metrics.Snapshot(),
		"device_breaker": ma.breaker.Snapshot(),
	})
}

// GetProbeStats returns an aggregate over recent probe round-trip times
func (ma *MetricsAggregator) GetProbeStats(c *gin.Context) {
	ma.mu.Lock()
	samples := make([]float64, len(ma.latencies))
	copy(samples, ma.latencies)
	ma.mu.Unlock()

	if len(samples) == 0 {
		c.JSON(http.StatusOK, gin.H{"samples": 0})
		return
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	// StdDev needs two samples; NaN is not encodable as JSON.
	var stddev float64
	if len(samples) > 1 {
		stddev = stat.StdDev(samples, nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"samples":   len(samples),
		"mean_ms":   stat.Mean(samples, nil),
		"stddev_ms": stddev,
		"min_ms":    sorted[0],
		"max_ms":    sorted[len(sorted)-1],
		"p50_ms":    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		"p90_ms":    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		"p99_ms":    stat.Quantile(0.99, stat.Empirical, sorted, nil),
	})
}

// ProxyDeviceHealth proxies the companion device's echo endpoint with
// circuit breaker protection
func (ma *MetricsAggregator) ProxyDeviceHealth(c *gin.Context) {
	if ma.deviceURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "no companion device configured",
		})
		return
	}

	result, err := ma.breaker.Execute(func() (interface{}, error) {
		resp, err := ma.httpClient.Get(ma.deviceURL)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("device returned status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		// Try to parse as JSON
		var echo map[string]interface{}
		if err := sonic.Unmarshal(body, &echo); err == nil {
			return map[string]interface{}{"format": "json", "data": echo}, nil
		}

		// Return as text if not JSON
		return map[string]interface{}{"format": "text", "data": string(body)}, nil
	})

	if err == resilience.ErrCircuitOpen {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "device unavailable: circuit breaker open",
		})
		return
	}

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": fmt.Sprintf("device unavailable: %v", err),
		})
		return
	}

	payload := result.(map[string]interface{})
	c.JSON(http.StatusOK, gin.H{
		"format": payload["format"],
		"device": payload["data"],
	})
}
