package permissions

import (
	"context"
	"fmt"

	"github.com/probelab/lanscope/internal/permission"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Provider exposes the permission snapshot reader as tools.
type Provider struct {
	reader *permission.Reader
}

// NewProvider creates a permission provider around the shared reader.
func NewProvider(reader *permission.Reader) *Provider {
	return &Provider{reader: reader}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "permission",
		Name:        "Permission Status",
		Description: "Read and refresh the local network access permission snapshot",
		Category:    types.CategoryPermission,
		Capabilities: []string{
			"query",
			"current",
		},
		Tools: []types.Tool{
			{
				ID:          "permission.query",
				Name:        "Query Permission",
				Description: "Normalize a reported permission query into a fresh snapshot",
				Parameters: []types.Parameter{
					{Name: "user_agent", Type: "string", Description: "Reporting browser's User-Agent", Required: false},
					{Name: "browser_name", Type: "string", Description: "Explicit browser name", Required: false},
					{Name: "browser_version", Type: "string", Description: "Explicit browser version", Required: false},
					{Name: "secure_context", Type: "boolean", Description: "window.isSecureContext", Required: false},
					{Name: "api_available", Type: "boolean", Description: "navigator.permissions.query present", Required: false},
					{Name: "query_error", Type: "string", Description: "Rejection message, when the query threw", Required: false},
					{Name: "state", Type: "string", Description: "Reported state: granted, prompt, or denied", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "permission.current",
				Name:        "Current Snapshot",
				Description: "Latest snapshot without running a query",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a permission operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "permission.query":
		return p.query(ctx, params, appCtx)
	case "permission.current":
		return p.current()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) query(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	report := reportFromParams(params)
	if report.UserAgent == "" && appCtx != nil && appCtx.UserAgent != nil {
		report.UserAgent = *appCtx.UserAgent
	}

	snapshot := p.reader.Refresh(ctx, report)
	return success(map[string]interface{}{"snapshot": snapshot})
}

func (p *Provider) current() (*types.Result, error) {
	snapshot := p.reader.Current()
	return success(map[string]interface{}{
		"snapshot": snapshot,
		"known":    snapshot.Known(),
	})
}

// reportFromParams maps loosely-typed tool params onto a ClientReport.
func reportFromParams(params map[string]interface{}) types.ClientReport {
	var report types.ClientReport
	report.UserAgent, _ = params["user_agent"].(string)
	report.BrowserName, _ = params["browser_name"].(string)
	report.BrowserVersion, _ = params["browser_version"].(string)
	report.SecureContext, _ = params["secure_context"].(bool)
	report.APIAvailable, _ = params["api_available"].(bool)
	report.QueryError, _ = params["query_error"].(string)
	if state, ok := params["state"].(string); ok {
		report.State = types.PermissionState(state)
	}
	return report
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
