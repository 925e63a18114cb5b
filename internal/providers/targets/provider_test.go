package targets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/lanscope/internal/catalog"
	"github.com/probelab/lanscope/internal/shared/types"
)

func newTestProvider() *Provider {
	return NewProvider(catalog.NewManager("", nil))
}

func execute(t *testing.T, p *Provider, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	return result
}

func TestDefinition(t *testing.T) {
	def := newTestProvider().Definition()
	assert.Equal(t, "targets", def.ID)
	assert.Equal(t, types.CategoryTargets, def.Category)
	assert.Len(t, def.Tools, 5)
}

func TestSaveAndGet(t *testing.T) {
	p := newTestProvider()

	result := execute(t, p, "targets.save", map[string]interface{}{
		"name":           "Printer",
		"url":            "http://192.168.0.5/",
		"expected_space": "private",
	})
	require.True(t, result.Success)

	saved := result.Data["target"].(types.Target)
	require.NotEmpty(t, saved.ID)

	got := execute(t, p, "targets.get", map[string]interface{}{"id": saved.ID})
	require.True(t, got.Success)
	target := got.Data["target"].(*types.Target)
	assert.Equal(t, "Printer", target.Name)
	assert.Equal(t, types.SpacePrivate, target.ExpectedSpace)
}

func TestSaveValidation(t *testing.T) {
	p := newTestProvider()

	result := execute(t, p, "targets.save", map[string]interface{}{"url": "http://10.0.0.1/"})
	assert.False(t, result.Success)

	result = execute(t, p, "targets.save", map[string]interface{}{"name": "NoURL"})
	assert.False(t, result.Success)

	result = execute(t, p, "targets.save", map[string]interface{}{
		"name":           "Bad",
		"url":            "http://10.0.0.1/",
		"expected_space": "intranet",
	})
	assert.False(t, result.Success)
}

func TestListFiltered(t *testing.T) {
	p := newTestProvider()

	execute(t, p, "targets.save", map[string]interface{}{"name": "A", "url": "http://10.0.0.1/", "expected_space": "private"})
	execute(t, p, "targets.save", map[string]interface{}{"name": "B", "url": "http://127.0.0.1/", "expected_space": "loopback"})

	all := execute(t, p, "targets.list", map[string]interface{}{})
	require.True(t, all.Success)
	assert.Equal(t, 2, all.Data["count"])

	private := execute(t, p, "targets.list", map[string]interface{}{"space": "private"})
	assert.Equal(t, 1, private.Data["count"])
}

func TestDeleteTool(t *testing.T) {
	p := newTestProvider()

	saved := execute(t, p, "targets.save", map[string]interface{}{"name": "A", "url": "http://10.0.0.1/"})
	id := saved.Data["target"].(types.Target).ID

	result := execute(t, p, "targets.delete", map[string]interface{}{"id": id})
	require.True(t, result.Success)

	result = execute(t, p, "targets.delete", map[string]interface{}{"id": id})
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "not found")
}

func TestStatsTool(t *testing.T) {
	p := newTestProvider()

	execute(t, p, "targets.save", map[string]interface{}{"name": "A", "url": "http://10.0.0.1/", "expected_space": "private"})

	result := execute(t, p, "targets.stats", nil)
	require.True(t, result.Success)

	stats := result.Data["stats"].(types.CatalogStats)
	assert.Equal(t, 1, stats.TotalTargets)
}

func TestUnknownTool(t *testing.T) {
	result := execute(t, newTestProvider(), "targets.nope", nil)
	assert.False(t, result.Success)
}
