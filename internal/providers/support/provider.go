package support

import (
	"context"
	"fmt"

	"github.com/probelab/lanscope/internal/classify"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Provider exposes browser capability classification as tools.
type Provider struct{}

// NewProvider creates a support provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "support",
		Name:        "Browser Support",
		Description: "Classify browsers for local network access support",
		Category:    types.CategorySupport,
		Capabilities: []string{
			"classify",
			"detect",
			"matrix",
		},
		Tools: []types.Tool{
			{
				ID:          "support.classify",
				Name:        "Classify Browser",
				Description: "Judge local network access support from a browser name and version",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Browser name", Required: true},
					{Name: "version", Type: "string", Description: "Version string, major or dotted", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "support.detect",
				Name:        "Detect Browser",
				Description: "Derive identity from a User-Agent header and classify it",
				Parameters: []types.Parameter{
					{Name: "user_agent", Type: "string", Description: "User-Agent value (defaults to the caller's)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "support.matrix",
				Name:        "Support Matrix",
				Description: "Version thresholds per browser family",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
		},
	}
}

// Execute runs a support operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "support.classify":
		return p.classify(params)
	case "support.detect":
		return p.detect(params, appCtx)
	case "support.matrix":
		return p.matrix()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) classify(params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name parameter required")
	}
	version, _ := params["version"].(string)

	verdict := classify.Classify(name, version)
	return success(map[string]interface{}{"verdict": verdict})
}

func (p *Provider) detect(params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	ua, _ := params["user_agent"].(string)
	if ua == "" && appCtx != nil && appCtx.UserAgent != nil {
		ua = *appCtx.UserAgent
	}
	if ua == "" {
		return failure("user_agent parameter required")
	}

	identity := classify.ParseUserAgent(ua)
	verdict := classify.ClassifyIdentity(identity)
	return success(map[string]interface{}{
		"identity": identity,
		"verdict":  verdict,
	})
}

func (p *Provider) matrix() (*types.Result, error) {
	return success(map[string]interface{}{"matrix": classify.Matrix()})
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
