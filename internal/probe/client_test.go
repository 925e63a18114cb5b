package probe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/probelab/lanscope/internal/infrastructure/resilience"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(testProbeConfig())

	require.NotNil(t, c.Resty)
	require.NotNil(t, c.Limiter)
	require.NotNil(t, c.Breaker)

	assert.Equal(t, resilience.StateClosed, c.BreakerState())
	assert.True(t, c.Limiter.Allow(), "limiter should start unlimited")

	snap := c.BreakerSnapshot()
	assert.Equal(t, "probe-target", snap.Name)
	assert.Equal(t, "closed", snap.State)
}

func TestClientRateLimit(t *testing.T) {
	c := NewClient(testProbeConfig())

	c.SetRateLimit(2)
	assert.Equal(t, rate.Limit(2), c.Limiter.Limit())

	c.SetRateLimit(0)
	assert.Equal(t, rate.Inf, c.Limiter.Limit())
}

func TestClientRequest(t *testing.T) {
	c := NewClient(testProbeConfig())

	req, err := c.Request(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, req)
}

func TestClientSetTimeout(t *testing.T) {
	c := NewClient(testProbeConfig())

	c.SetTimeout(2 * time.Second)
	assert.Equal(t, 2*time.Second, c.Resty.GetClient().Timeout)
}
