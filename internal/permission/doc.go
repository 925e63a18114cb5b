// Package permission normalizes raw local-network-access permission query
// results into a single PermissionSnapshot owned by a Reader.
//
// The gateway has no browser of its own: the demo page performs the actual
// navigator.permissions.query call and reports the outcome (capability
// presence, rejection message, state, secure-context flag) in a
// ClientReport. A Querier turns that report into a QueryResult; the Reader
// folds the result, the browser verdict, and the secure-context flag into
// the snapshot that every other component reads.
//
// Failure-path contract:
//
//   - capability absent: state denied, reason "Permissions API not
//     available"
//   - query rejected:    state denied, reason "local-network-access
//     permission not recognized by browser" (the underlying error is
//     logged, never surfaced)
//   - success but insecure context: reported state kept, reason "HTTPS
//     required (not in secure context)"
//
// Simulated queriers exist so the pipeline can be exercised from curl
// without any browser participating.
package permission
