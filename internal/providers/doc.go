// Package providers implements the tool providers behind the service
// registry.
//
// Each provider wraps one shared component and exposes it through the
// standardized Definition/Execute interface, so the demo page can drive
// everything through a single execute endpoint.
//
// Available providers:
//   - Support: browser capability classification and the threshold matrix
//   - Permission: permission snapshot queries and reads
//   - Probe: submit/status/clear for the single-request fetch lifecycle
//   - Targets: preset-target catalog CRUD and stats
//
// Provider interface:
//   - Definition(): returns service metadata and tool definitions
//   - Execute(): executes a tool with parameters and context
package providers
