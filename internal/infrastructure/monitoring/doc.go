/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the gateway,
tracking HTTP requests, probe completions, permission queries, browser
verdicts, and stream connections.

# Features

- HTTP request metrics (latency, throughput, size)
- Probe metrics (duration by zone, in-flight flag, rejected and stale counts)
- Permission query metrics (resulting state, capability support)
- Browser verdict metrics (family, likely support)
- Service call metrics (duration, errors)
- WebSocket connection metrics
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordProbe("succeeded", "loopback", elapsed)
	metrics.SetProbeInFlight(false)

	// Time operations
	timer := monitoring.NewTimer(metrics, "probe", "submit")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
