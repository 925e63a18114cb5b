package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/probelab/lanscope/internal/probe"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Provider exposes the single-request probe lifecycle as tools.
type Provider struct {
	lifecycle *probe.Lifecycle
}

// NewProvider creates a probe provider around the shared lifecycle.
func NewProvider(lifecycle *probe.Lifecycle) *Provider {
	return &Provider{lifecycle: lifecycle}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "probe",
		Name:        "Network Probe",
		Description: "Fire-and-forget fetches against local network targets",
		Category:    types.CategoryProbe,
		Capabilities: []string{
			"submit",
			"status",
			"clear",
		},
		Tools: []types.Tool{
			{
				ID:          "probe.submit",
				Name:        "Submit Probe",
				Description: "Start a probe; at most one runs at a time",
				Parameters: []types.Parameter{
					{Name: "url", Type: "string", Description: "Target URL", Required: true},
					{Name: "address_space", Type: "string", Description: "Expected target address space hint", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "probe.status",
				Name:        "Probe Status",
				Description: "Current lifecycle outcome",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "probe.clear",
				Name:        "Clear Probe",
				Description: "Reset to idle; an unresolved probe's result is discarded",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a probe operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "probe.submit":
		return p.submit(ctx, params)
	case "probe.status":
		return p.status()
	case "probe.clear":
		return p.clear()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) submit(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return failure("url parameter required")
	}
	space, _ := params["address_space"].(string)

	seq, err := p.lifecycle.Submit(ctx, url, types.AddressSpace(space))
	if err != nil {
		if errors.Is(err, probe.ErrProbeInFlight) {
			return failure("a probe is already in flight")
		}
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"sequence": seq,
		"outcome":  p.lifecycle.Outcome(),
	})
}

func (p *Provider) status() (*types.Result, error) {
	return success(map[string]interface{}{"outcome": p.lifecycle.Outcome()})
}

func (p *Provider) clear() (*types.Result, error) {
	p.lifecycle.Clear()
	return success(map[string]interface{}{
		"cleared": true,
		"outcome": p.lifecycle.Outcome(),
	})
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
