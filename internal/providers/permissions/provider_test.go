package permissions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/permission"
	"github.com/probelab/lanscope/internal/shared/types"
)

func newTestProvider() *Provider {
	reader := permission.NewReader(permission.ClientQuerier{}, logging.NewNop(), nil)
	return NewProvider(reader)
}

func TestDefinition(t *testing.T) {
	def := newTestProvider().Definition()
	assert.Equal(t, "permission", def.ID)
	assert.Equal(t, types.CategoryPermission, def.Category)
	assert.Len(t, def.Tools, 2)
}

func TestQueryTool(t *testing.T) {
	p := newTestProvider()

	result, err := p.Execute(context.Background(), "permission.query", map[string]interface{}{
		"browser_name":    "Chrome",
		"browser_version": "142",
		"secure_context":  true,
		"api_available":   true,
		"state":           "granted",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	snapshot, ok := result.Data["snapshot"].(types.PermissionSnapshot)
	require.True(t, ok)
	assert.Equal(t, types.PermissionGranted, snapshot.State)
	assert.True(t, snapshot.Support.Supported)
}

func TestQueryToolCapabilityAbsent(t *testing.T) {
	p := newTestProvider()

	result, err := p.Execute(context.Background(), "permission.query", map[string]interface{}{
		"api_available": false,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	snapshot := result.Data["snapshot"].(types.PermissionSnapshot)
	assert.Equal(t, types.PermissionDenied, snapshot.State)
	assert.Equal(t, "Permissions API not available", snapshot.Support.Reason)
}

func TestQueryToolUsesContextUserAgent(t *testing.T) {
	p := newTestProvider()
	ua := "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

	result, err := p.Execute(context.Background(), "permission.query", map[string]interface{}{
		"api_available":  true,
		"secure_context": true,
		"state":          "prompt",
	}, &types.Context{UserAgent: &ua})
	require.NoError(t, err)

	snapshot := result.Data["snapshot"].(types.PermissionSnapshot)
	require.NotNil(t, snapshot.Support.Verdict)
	assert.Equal(t, "Chrome", snapshot.Support.Verdict.Name)
}

func TestCurrentTool(t *testing.T) {
	p := newTestProvider()

	result, err := p.Execute(context.Background(), "permission.current", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, false, result.Data["known"])

	_, err = p.Execute(context.Background(), "permission.query", map[string]interface{}{
		"api_available": true,
		"state":         "granted",
	}, nil)
	require.NoError(t, err)

	result, err = p.Execute(context.Background(), "permission.current", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, true, result.Data["known"])
}

func TestUnknownTool(t *testing.T) {
	p := newTestProvider()

	result, err := p.Execute(context.Background(), "permission.nope", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
