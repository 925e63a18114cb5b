package permission

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/probelab/lanscope/internal/classify"
	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Normalized reasons for the two capability failure shapes and the
// insecure-context warning. These are user-facing and stable.
const (
	reasonAPIUnavailable  = "Permissions API not available"
	reasonNotRecognized   = "local-network-access permission not recognized by browser"
	reasonInsecureContext = "HTTPS required (not in secure context)"
)

// Recorder receives permission metrics. A nil Recorder disables recording.
type Recorder interface {
	RecordPermissionQuery(state string, supported bool)
	RecordVerdict(family string, likelySupported bool)
}

// Watcher observes snapshot refreshes. Callbacks run outside the reader
// lock on the refreshing goroutine and must not block for long.
type Watcher func(types.PermissionSnapshot)

// Reader owns the permission snapshot slot. Refresh replaces the whole
// value under the lock; Current hands out the latest copy. Readers never
// see a partially-updated snapshot.
type Reader struct {
	querier Querier
	log     *logging.Logger
	rec     Recorder
	timeNow func() time.Time

	mu       sync.RWMutex
	snapshot types.PermissionSnapshot
	watchers []Watcher
}

// NewReader creates a reader in the "not yet known" state.
func NewReader(querier Querier, log *logging.Logger, rec Recorder) *Reader {
	if log == nil {
		log = logging.NewNop()
	}
	return &Reader{
		querier: querier,
		log:     log.Component("permission"),
		rec:     rec,
		timeNow: time.Now,
		snapshot: types.PermissionSnapshot{
			State: types.PermissionUnknown,
		},
	}
}

// Refresh runs one query against the report, normalizes the result, and
// installs it as the current snapshot. Query rejections are logged at
// debug level and never propagate; every path yields a valid snapshot.
func (r *Reader) Refresh(ctx context.Context, report types.ClientReport) types.PermissionSnapshot {
	verdict := r.verdictFor(report)
	result := r.querier.Query(ctx, report)

	snapshot := types.PermissionSnapshot{
		SecureContext: report.SecureContext,
		CheckedAt:     r.timeNow(),
		Support: types.SupportAssessment{
			Verdict: &verdict,
		},
	}

	switch {
	case !result.Available:
		snapshot.State = types.PermissionDenied
		snapshot.Support.Supported = false
		snapshot.Support.Reason = reasonAPIUnavailable

	case result.Err != nil:
		r.log.Debug("permission query rejected", zap.Error(result.Err))
		snapshot.State = types.PermissionDenied
		snapshot.Support.Supported = false
		snapshot.Support.Reason = reasonNotRecognized

	default:
		snapshot.State = result.State
		snapshot.Support.Supported = true
		if !report.SecureContext {
			snapshot.Support.Reason = reasonInsecureContext
		}
	}

	r.mu.Lock()
	r.snapshot = snapshot
	watchers := make([]Watcher, len(r.watchers))
	copy(watchers, r.watchers)
	r.mu.Unlock()

	for _, w := range watchers {
		w(snapshot)
	}

	if r.rec != nil {
		r.rec.RecordPermissionQuery(string(snapshot.State), snapshot.Support.Supported)
		r.rec.RecordVerdict(classify.Family(verdict.Name), verdict.LikelySupported)
	}

	r.log.Debug("permission snapshot refreshed",
		zap.String("state", string(snapshot.State)),
		zap.Bool("secure_context", snapshot.SecureContext),
		zap.Bool("supported", snapshot.Support.Supported))

	return snapshot
}

// Current returns the latest snapshot. Before the first Refresh the state
// is unknown and Known() reports false.
func (r *Reader) Current() types.PermissionSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Watch registers a refresh observer.
func (r *Reader) Watch(w Watcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watchers = append(r.watchers, w)
}

// verdictFor prefers the explicitly reported identity and falls back to
// parsing the User-Agent header.
func (r *Reader) verdictFor(report types.ClientReport) types.BrowserVerdict {
	if report.BrowserName != "" {
		return classify.Classify(report.BrowserName, report.BrowserVersion)
	}
	return classify.ClassifyIdentity(classify.ParseUserAgent(report.UserAgent))
}
