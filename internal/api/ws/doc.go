// Package ws provides the WebSocket state stream for the demo page.
//
// Connected clients receive a hello message carrying their assigned client
// ID plus the current probe outcome and permission snapshot, then live
// updates as either changes. The stream is read-mostly; clients only send
// keep-alives and status requests.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//   - status: Request the current outcome and snapshot
//
// Message Types (Server → Client):
//   - hello: Connection accepted, carries client_id and initial state
//   - probe: Probe lifecycle transition
//   - permission: Permission snapshot refreshed
//   - pong: Keep-alive reply
//   - status: Reply to a status request
//   - error: Unrecognized client message
//
// Example Usage:
//
//	handler := ws.NewHandler(lifecycle, reader, logger, metrics)
//	router.GET("/api/stream", handler.HandleConnection)
package ws
