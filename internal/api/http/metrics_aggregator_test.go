package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/lanscope/internal/infrastructure/monitoring"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Prometheus collectors register against the default registry, so the
// test binary constructs Metrics exactly once.
var sharedMetrics = monitoring.NewMetrics()

func statsRequest(t *testing.T, ma *MetricsAggregator, handler gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET(path, handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestObserveKeepsTerminalSamplesOnly(t *testing.T) {
	ma := NewMetricsAggregator(sharedMetrics, "")

	ma.Observe(types.RequestOutcome{Phase: types.PhasePending})
	ma.Observe(types.RequestOutcome{Phase: types.PhaseSucceeded, DurationMS: 12.5})
	ma.Observe(types.RequestOutcome{Phase: types.PhaseFailed, DurationMS: 30})

	ma.mu.Lock()
	defer ma.mu.Unlock()
	require.Len(t, ma.latencies, 2)
	assert.Equal(t, 12.5, ma.latencies[0])
	assert.Equal(t, float64(30), ma.latencies[1])
}

func TestObserveBoundsWindow(t *testing.T) {
	ma := NewMetricsAggregator(sharedMetrics, "")

	for i := 0; i < maxLatencySamples+10; i++ {
		ma.Observe(types.RequestOutcome{Phase: types.PhaseSucceeded, DurationMS: float64(i)})
	}

	ma.mu.Lock()
	defer ma.mu.Unlock()
	require.Len(t, ma.latencies, maxLatencySamples)
	// Oldest samples fall off the front.
	assert.Equal(t, float64(10), ma.latencies[0])
}

func TestGetProbeStatsEmpty(t *testing.T) {
	ma := NewMetricsAggregator(sharedMetrics, "")

	w := statsRequest(t, ma, ma.GetProbeStats, "/metrics/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, float64(0), resp["samples"])
	assert.NotContains(t, resp, "mean_ms")
}

func TestGetProbeStatsSingleSample(t *testing.T) {
	ma := NewMetricsAggregator(sharedMetrics, "")
	ma.Observe(types.RequestOutcome{Phase: types.PhaseSucceeded, DurationMS: 42})

	w := statsRequest(t, ma, ma.GetProbeStats, "/metrics/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, float64(1), resp["samples"])
	assert.Equal(t, float64(42), resp["mean_ms"])
	assert.Equal(t, float64(0), resp["stddev_ms"])
}

func TestGetProbeStatsAggregates(t *testing.T) {
	ma := NewMetricsAggregator(sharedMetrics, "")
	for _, ms := range []float64{10, 20, 30, 40} {
		ma.Observe(types.RequestOutcome{Phase: types.PhaseSucceeded, DurationMS: ms})
	}

	w := statsRequest(t, ma, ma.GetProbeStats, "/metrics/probe")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, float64(4), resp["samples"])
	assert.Equal(t, float64(25), resp["mean_ms"])
	assert.Equal(t, float64(10), resp["min_ms"])
	assert.Equal(t, float64(40), resp["max_ms"])
	assert.Greater(t, resp["stddev_ms"], float64(0))
}

func TestGetJSONMetrics(t *testing.T) {
	ma := NewMetricsAggregator(sharedMetrics, "")

	w := statsRequest(t, ma, ma.GetJSONMetrics, "/metrics/json")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Contains(t, resp, "gateway")
	assert.Contains(t, resp, "device_breaker")

	breaker := resp["device_breaker"].(map[string]interface{})
	assert.Equal(t, "closed", breaker["state"])
}

func TestProxyDeviceHealthNoDevice(t *testing.T) {
	ma := NewMetricsAggregator(sharedMetrics, "")

	w := statsRequest(t, ma, ma.ProxyDeviceHealth, "/metrics/device")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "no companion device configured", resp["error"])
}

func TestProxyDeviceHealthJSON(t *testing.T) {
	device := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","device_name":"echo"}`))
	}))
	defer device.Close()

	ma := NewMetricsAggregator(sharedMetrics, device.URL)

	w := statsRequest(t, ma, ma.ProxyDeviceHealth, "/metrics/device")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "json", resp["format"])

	data := resp["device"].(map[string]interface{})
	assert.Equal(t, "echo", data["device_name"])
}

func TestProxyDeviceHealthText(t *testing.T) {
	device := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain and healthy"))
	}))
	defer device.Close()

	ma := NewMetricsAggregator(sharedMetrics, device.URL)

	w := statsRequest(t, ma, ma.ProxyDeviceHealth, "/metrics/device")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "text", resp["format"])
	assert.Equal(t, "plain and healthy", resp["device"])
}

func TestProxyDeviceHealthBreakerOpens(t *testing.T) {
	device := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer device.Close()

	ma := NewMetricsAggregator(sharedMetrics, device.URL)

	// Three consecutive failures trip the breaker.
	for i := 0; i < 3; i++ {
		w := statsRequest(t, ma, ma.ProxyDeviceHealth, "/metrics/device")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp map[string]interface{}
		decodeBody(t, w, &resp)
		assert.Contains(t, resp["error"], "device returned status 500")
	}

	w := statsRequest(t, ma, ma.ProxyDeviceHealth, "/metrics/device")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "device unavailable: circuit breaker open", resp["error"])
}
