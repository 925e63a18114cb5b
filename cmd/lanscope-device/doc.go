// Package main is the entry point for the lanscope companion device.
//
// The device is a small echo server meant to sit on the LAN side of the
// demo. It answers preflights with the private network access headers and
// echoes every other request back as JSON, so the demo page has a
// well-behaved target to probe.
//
// Responses carry the device's advertised identity:
//   - Private-Network-Access-Name: human-readable device name
//   - Private-Network-Access-ID: stable MAC-shaped identifier
//
// Usage:
//
//	./lanscope-device -port 8081 -name kitchen-printer
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
