// Package main is the entry point for the lanscope gateway.
//
// The gateway backs the local-network-access demo page: it tracks the
// browser's permission state from client reports, runs single-shot probes
// against LAN targets, and streams both over a WebSocket.
//
// Architecture:
//
//	Demo page (browser) → Gateway → Companion device (echo server)
//
// The server provides:
//   - REST API for permission snapshots and probe lifecycle
//   - Browser capability classification
//   - Preset target catalog
//   - WebSocket streaming of probe and permission events
//   - Prometheus metrics and rate limiting
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./lanscope -port 8000 -device http://127.0.0.1:8081
//
//	# Development mode (colored logs, debug level)
//	./lanscope -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
