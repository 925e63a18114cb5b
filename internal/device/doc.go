// Package device implements the companion echo server: a tiny HTTP
// endpoint meant to sit on the local network and answer the demo's
// probes.
//
// Every response carries the Private Network Access headers a preflight
// needs (Access-Control-Allow-Private-Network plus the device's
// advertised name and ID), so a browser pointed straight at the device
// passes the permission gate. OPTIONS gets 204 with headers only; every
// other method gets a JSON echo of what the device saw, which the demo
// renders to show exactly which headers crossed the network.
package device
