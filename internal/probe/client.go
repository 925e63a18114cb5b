package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/probelab/lanscope/internal/infrastructure/config"
	"github.com/probelab/lanscope/internal/infrastructure/resilience"
)

// HintHeader carries the caller's address-space hint on outbound probes.
// Targets that do not understand it ignore it; that is not an error.
const HintHeader = "Target-Address-Space"

// Client wraps resty with rate limiting and a circuit breaker for probe
// traffic. Retries default to zero because a probe is a single observation;
// retrying would hide exactly the failures the demo exists to show.
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Breaker *resilience.Breaker
	Mu      sync.RWMutex
}

// NewClient creates a probe HTTP client from configuration
func NewClient(cfg config.ProbeConfig) *Client {
	// Build the transport through retryablehttp so connection pooling
	// matches the rest of the stack; retry count stays caller-controlled.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryCount
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil // Disable logging

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout()).
		SetRetryCount(cfg.RetryCount).
		SetHeader("User-Agent", "lanscope-probe/1.0")

	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	// Local targets flap while people unplug and reconfigure them, so the
	// breaker trips late: the probe panel should show failures, not mask
	// them behind an open circuit.
	breaker := resilience.New("probe-target", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 10
		},
	})

	return &Client{
		Resty:   restyClient,
		Limiter: rate.NewLimiter(rate.Inf, 0), // Unlimited by default
		Breaker: breaker,
	}
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		c.Limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// SetTimeout configures request timeout
func (c *Client) SetTimeout(duration time.Duration) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetTimeout(duration)
}

// Request creates a new request with rate limiting and circuit breaker
// protection
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	// Check circuit breaker state first
	if c.Breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}

	// Wait for rate limiter
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.R().SetContext(ctx), nil
}

// ExecuteWithBreaker executes an HTTP operation with circuit breaker
// protection
func (c *Client) ExecuteWithBreaker(fn func() (*resty.Response, error)) (*resty.Response, error) {
	result, err := c.Breaker.Execute(func() (interface{}, error) {
		return fn()
	})

	if err != nil {
		return nil, err
	}

	return result.(*resty.Response), nil
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.Breaker.State()
}

// BreakerSnapshot returns circuit breaker statistics
func (c *Client) BreakerSnapshot() resilience.Snapshot {
	return c.Breaker.Snapshot()
}
