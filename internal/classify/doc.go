// Package classify maps browser identities to local-network-access support
// verdicts.
//
// Detection is user-agent sniffing against a static version table, which is
// inherently best-effort. The package keeps that heuristic behind a narrow
// surface (Classify, ParseUserAgent, Matrix) so callers never touch UA
// strings directly and the heuristic can be swapped for a feature probe
// without touching them.
package classify
