package permission

import (
	"context"
	"errors"

	"github.com/probelab/lanscope/internal/shared/types"
)

// Name is the permission identifier the demo page passes to
// navigator.permissions.query.
const Name = "local-network-access"

// QueryResult is the raw outcome of one permission query before
// normalization. Exactly one of the three shapes applies: capability
// absent (Available false), query rejected (Err set), or success (State
// set).
type QueryResult struct {
	Available bool
	Err       error
	State     types.PermissionState
}

// Querier resolves a ClientReport into a raw query result. Implementations
// either trust the report (the real browser path) or ignore it entirely
// (simulated hosts).
type Querier interface {
	Query(ctx context.Context, report types.ClientReport) QueryResult
}

// ClientQuerier trusts the demo page's own account of its permission
// query. This is the production path: the browser ran the query, we only
// normalize what it saw.
type ClientQuerier struct{}

func (ClientQuerier) Query(_ context.Context, report types.ClientReport) QueryResult {
	if !report.APIAvailable {
		return QueryResult{Available: false}
	}
	if report.QueryError != "" {
		return QueryResult{Available: true, Err: errors.New(report.QueryError)}
	}

	state := report.State
	if state == "" {
		// An available API that reported nothing behaves like a fresh
		// browser.
		state = types.PermissionPrompt
	}
	return QueryResult{Available: true, State: state}
}

// StaticQuerier returns a fixed result regardless of the report. Backs the
// simulated PERMISSION_MODE values so curl sessions can walk every branch.
type StaticQuerier struct {
	Available bool
	Err       error
	State     types.PermissionState
}

func (s StaticQuerier) Query(context.Context, types.ClientReport) QueryResult {
	return QueryResult{Available: s.Available, Err: s.Err, State: s.State}
}

// ForMode maps a configured permission mode to its querier. "client" is
// the pass-through default; unknown modes also fall back to it.
func ForMode(mode string) Querier {
	switch mode {
	case "absent":
		return StaticQuerier{Available: false}
	case "granted":
		return StaticQuerier{Available: true, State: types.PermissionGranted}
	case "prompt":
		return StaticQuerier{Available: true, State: types.PermissionPrompt}
	case "denied":
		return StaticQuerier{Available: true, State: types.PermissionDenied}
	default:
		return ClientQuerier{}
	}
}
