package support

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/lanscope/internal/shared/types"
)

func TestDefinition(t *testing.T) {
	def := NewProvider().Definition()
	assert.Equal(t, "support", def.ID)
	assert.Equal(t, types.CategorySupport, def.Category)
	assert.Len(t, def.Tools, 3)
}

func TestClassifyTool(t *testing.T) {
	p := NewProvider()

	result, err := p.Execute(context.Background(), "support.classify", map[string]interface{}{
		"name":    "Chrome",
		"version": "142",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	verdict, ok := result.Data["verdict"].(types.BrowserVerdict)
	require.True(t, ok)
	assert.True(t, verdict.LikelySupported)
	assert.Equal(t, 142, verdict.Version)
}

func TestClassifyToolRequiresName(t *testing.T) {
	p := NewProvider()

	result, err := p.Execute(context.Background(), "support.classify", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
}

func TestDetectTool(t *testing.T) {
	p := NewProvider()
	const chromeUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

	t.Run("explicit_param", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "support.detect", map[string]interface{}{
			"user_agent": chromeUA,
		}, nil)
		require.NoError(t, err)
		require.True(t, result.Success)

		verdict := result.Data["verdict"].(types.BrowserVerdict)
		assert.Equal(t, "Chrome", verdict.Name)
		assert.True(t, verdict.LikelySupported)
	})

	t.Run("falls_back_to_context", func(t *testing.T) {
		ua := chromeUA
		result, err := p.Execute(context.Background(), "support.detect", map[string]interface{}{}, &types.Context{UserAgent: &ua})
		require.NoError(t, err)
		require.True(t, result.Success)
	})

	t.Run("no_agent_anywhere", func(t *testing.T) {
		result, err := p.Execute(context.Background(), "support.detect", map[string]interface{}{}, nil)
		require.NoError(t, err)
		assert.False(t, result.Success)
	})
}

func TestMatrixTool(t *testing.T) {
	p := NewProvider()

	result, err := p.Execute(context.Background(), "support.matrix", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Data["matrix"])
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider()

	result, err := p.Execute(context.Background(), "support.nope", nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}
