package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/shared/types"
)

type recordedQuery struct {
	state     string
	supported bool
}

type fakeRecorder struct {
	queries  []recordedQuery
	families []string
}

func (f *fakeRecorder) RecordPermissionQuery(state string, supported bool) {
	f.queries = append(f.queries, recordedQuery{state, supported})
}

func (f *fakeRecorder) RecordVerdict(family string, _ bool) {
	f.families = append(f.families, family)
}

func newTestReader(q Querier) *Reader {
	return NewReader(q, logging.NewNop(), nil)
}

func TestReaderCapabilityAbsent(t *testing.T) {
	reader := newTestReader(StaticQuerier{Available: false})

	// The secure-context flag must not change the absent-capability shape.
	for _, secure := range []bool{true, false} {
		snapshot := reader.Refresh(context.Background(), types.ClientReport{
			BrowserName:    "Chrome",
			BrowserVersion: "142",
			SecureContext:  secure,
		})

		assert.Equal(t, types.PermissionDenied, snapshot.State)
		assert.False(t, snapshot.Support.Supported)
		assert.Equal(t, "Permissions API not available", snapshot.Support.Reason)
		assert.Equal(t, secure, snapshot.SecureContext)
	}
}

func TestReaderQueryRejected(t *testing.T) {
	reader := newTestReader(StaticQuerier{
		Available: true,
		Err:       errors.New("TypeError: unknown permission name"),
	})

	snapshot := reader.Refresh(context.Background(), types.ClientReport{
		BrowserName:    "Chrome",
		BrowserVersion: "141",
		SecureContext:  true,
	})

	assert.Equal(t, types.PermissionDenied, snapshot.State)
	assert.False(t, snapshot.Support.Supported)
	assert.Equal(t, "local-network-access permission not recognized by browser", snapshot.Support.Reason)
}

func TestReaderSuccessSecure(t *testing.T) {
	reader := newTestReader(StaticQuerier{Available: true, State: types.PermissionGranted})

	snapshot := reader.Refresh(context.Background(), types.ClientReport{
		BrowserName:    "Chrome",
		BrowserVersion: "142",
		SecureContext:  true,
	})

	assert.Equal(t, types.PermissionGranted, snapshot.State)
	assert.True(t, snapshot.Support.Supported)
	assert.Empty(t, snapshot.Support.Reason)
	assert.True(t, snapshot.SecureContext)
}

func TestReaderSuccessInsecureContext(t *testing.T) {
	reader := newTestReader(StaticQuerier{Available: true, State: types.PermissionPrompt})

	snapshot := reader.Refresh(context.Background(), types.ClientReport{
		BrowserName:    "Chrome",
		BrowserVersion: "142",
		SecureContext:  false,
	})

	// State survives, but the assessment carries the HTTPS warning.
	assert.Equal(t, types.PermissionPrompt, snapshot.State)
	assert.True(t, snapshot.Support.Supported)
	assert.Equal(t, "HTTPS required (not in secure context)", snapshot.Support.Reason)
}

func TestReaderVerdictEmbedded(t *testing.T) {
	reader := newTestReader(StaticQuerier{Available: true, State: types.PermissionPrompt})

	snapshot := reader.Refresh(context.Background(), types.ClientReport{
		BrowserName:    "Edge",
		BrowserVersion: "143",
		SecureContext:  true,
	})

	require.NotNil(t, snapshot.Support.Verdict)
	assert.Equal(t, "Edge", snapshot.Support.Verdict.Name)
	assert.Equal(t, 143, snapshot.Support.Verdict.Version)
	assert.True(t, snapshot.Support.Verdict.LikelySupported)
}

func TestReaderVerdictFromUserAgent(t *testing.T) {
	reader := newTestReader(StaticQuerier{Available: true, State: types.PermissionPrompt})

	snapshot := reader.Refresh(context.Background(), types.ClientReport{
		UserAgent:     "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
		SecureContext: true,
	})

	require.NotNil(t, snapshot.Support.Verdict)
	assert.Equal(t, "Chrome", snapshot.Support.Verdict.Name)
	assert.True(t, snapshot.Support.Verdict.LikelySupported)
}

func TestReaderCurrentBeforeAndAfterRefresh(t *testing.T) {
	reader := newTestReader(StaticQuerier{Available: true, State: types.PermissionGranted})

	initial := reader.Current()
	assert.False(t, initial.Known())
	assert.Equal(t, types.PermissionUnknown, initial.State)

	reader.Refresh(context.Background(), types.ClientReport{SecureContext: true})

	current := reader.Current()
	assert.True(t, current.Known())
	assert.Equal(t, types.PermissionGranted, current.State)
	assert.False(t, current.CheckedAt.IsZero())
}

func TestReaderNotifiesWatchers(t *testing.T) {
	reader := newTestReader(StaticQuerier{Available: true, State: types.PermissionGranted})

	var seen []types.PermissionSnapshot
	reader.Watch(func(s types.PermissionSnapshot) {
		seen = append(seen, s)
	})

	reader.Refresh(context.Background(), types.ClientReport{
		BrowserName:    "Chrome",
		BrowserVersion: "142",
		SecureContext:  true,
	})
	reader.Refresh(context.Background(), types.ClientReport{
		BrowserName:    "Firefox",
		BrowserVersion: "131",
		SecureContext:  true,
	})

	require.Len(t, seen, 2)
	assert.Equal(t, types.PermissionGranted, seen[0].State)
	assert.Equal(t, "Chrome", seen[0].Support.Verdict.Name)
	assert.Equal(t, "Firefox", seen[1].Support.Verdict.Name)
}

func TestReaderRecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	reader := NewReader(StaticQuerier{Available: true, State: types.PermissionGranted}, logging.NewNop(), rec)

	reader.Refresh(context.Background(), types.ClientReport{
		BrowserName:    "Edge",
		BrowserVersion: "143",
		SecureContext:  true,
	})

	require.Len(t, rec.queries, 1)
	assert.Equal(t, recordedQuery{state: "granted", supported: true}, rec.queries[0])
	require.Len(t, rec.families, 1)
	assert.Equal(t, "edge", rec.families[0])
}

func TestClientQuerier(t *testing.T) {
	q := ClientQuerier{}

	t.Run("capability_absent", func(t *testing.T) {
		result := q.Query(context.Background(), types.ClientReport{APIAvailable: false})
		assert.False(t, result.Available)
	})

	t.Run("query_error", func(t *testing.T) {
		result := q.Query(context.Background(), types.ClientReport{
			APIAvailable: true,
			QueryError:   "unknown permission",
		})
		assert.True(t, result.Available)
		require.Error(t, result.Err)
	})

	t.Run("success", func(t *testing.T) {
		result := q.Query(context.Background(), types.ClientReport{
			APIAvailable: true,
			State:        types.PermissionDenied,
		})
		assert.True(t, result.Available)
		assert.NoError(t, result.Err)
		assert.Equal(t, types.PermissionDenied, result.State)
	})

	t.Run("success_without_state", func(t *testing.T) {
		result := q.Query(context.Background(), types.ClientReport{APIAvailable: true})
		assert.Equal(t, types.PermissionPrompt, result.State)
	})
}

func TestForMode(t *testing.T) {
	report := types.ClientReport{APIAvailable: true, State: types.PermissionGranted}

	tests := []struct {
		mode      string
		available bool
		state     types.PermissionState
	}{
		{"absent", false, ""},
		{"granted", true, types.PermissionGranted},
		{"prompt", true, types.PermissionPrompt},
		{"denied", true, types.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			result := ForMode(tt.mode).Query(context.Background(), report)
			assert.Equal(t, tt.available, result.Available)
			assert.Equal(t, tt.state, result.State)
		})
	}

	t.Run("client_default", func(t *testing.T) {
		result := ForMode("client").Query(context.Background(), report)
		assert.True(t, result.Available)
		assert.Equal(t, types.PermissionGranted, result.State)

		// Unknown modes behave like client mode.
		assert.Equal(t, result, ForMode("bogus").Query(context.Background(), report))
	})
}
