// Package types provides shared data structures for the lanscope backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - BrowserVerdict: Likely-support assessment for a browser identity
//   - PermissionSnapshot: Normalized local-network-access permission state
//   - RequestOutcome: Result of the single-probe fetch lifecycle
//   - AddressSpace: Network zone vocabulary for probe hints
//   - Target: Preset probe target from the catalog
//   - Service: Service provider definition
//   - Tool: Callable tool definition within a service
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - ClientReport: Browser-side capability report
//   - ProbeRequest: Probe submission
//   - ExecuteRequest: Service tool execution
//   - StreamMessage: WebSocket communication
//
// Example Usage:
//
//	outcome := types.RequestOutcome{
//	    Phase:   types.PhaseFailed,
//	    Message: "HTTP 404: Not Found",
//	}
package types
