package targets

import (
	"context"
	"errors"
	"fmt"

	"github.com/probelab/lanscope/internal/catalog"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Provider exposes the preset-target catalog as tools.
type Provider struct {
	manager *catalog.Manager
}

// NewProvider creates a targets provider around the shared catalog.
func NewProvider(manager *catalog.Manager) *Provider {
	return &Provider{manager: manager}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "targets",
		Name:        "Target Catalog",
		Description: "Preset local network probe targets",
		Category:    types.CategoryTargets,
		Capabilities: []string{
			"list",
			"get",
			"save",
			"delete",
			"stats",
		},
		Tools: []types.Tool{
			{
				ID:          "targets.list",
				Name:        "List Targets",
				Description: "List catalog targets, optionally by address space",
				Parameters: []types.Parameter{
					{Name: "space", Type: "string", Description: "Filter by expected address space", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "targets.get",
				Name:        "Get Target",
				Description: "Fetch one target by ID",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Target ID", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "targets.save",
				Name:        "Save Target",
				Description: "Create or update a catalog target",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Target ID (assigned when empty)", Required: false},
					{Name: "name", Type: "string", Description: "Display name", Required: true},
					{Name: "url", Type: "string", Description: "Target URL", Required: true},
					{Name: "expected_space", Type: "string", Description: "Expected address space", Required: false},
					{Name: "description", Type: "string", Description: "Free-form notes", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "targets.delete",
				Name:        "Delete Target",
				Description: "Remove a target from the catalog",
				Parameters: []types.Parameter{
					{Name: "id", Type: "string", Description: "Target ID", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "targets.stats",
				Name:        "Catalog Stats",
				Description: "Catalog totals by address space",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a catalog operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "targets.list":
		return p.list(params)
	case "targets.get":
		return p.get(params)
	case "targets.save":
		return p.save(params)
	case "targets.delete":
		return p.delete(params)
	case "targets.stats":
		return p.stats()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) list(params map[string]interface{}) (*types.Result, error) {
	var filter *types.AddressSpace
	if raw, ok := params["space"].(string); ok && raw != "" {
		space := types.AddressSpace(raw)
		filter = &space
	}

	targets := p.manager.List(filter)
	return success(map[string]interface{}{
		"targets": targets,
		"count":   len(targets),
	})
}

func (p *Provider) get(params map[string]interface{}) (*types.Result, error) {
	id, ok := params["id"].(string)
	if !ok || id == "" {
		return failure("id parameter required")
	}

	target, err := p.manager.Get(id)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"target": target})
}

func (p *Provider) save(params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name parameter required")
	}
	url, ok := params["url"].(string)
	if !ok || url == "" {
		return failure("url parameter required")
	}

	target := types.Target{Name: name, URL: url}
	target.ID, _ = params["id"].(string)
	target.Description, _ = params["description"].(string)
	if raw, ok := params["expected_space"].(string); ok {
		target.ExpectedSpace = types.AddressSpace(raw)
	}

	if err := p.manager.Save(&target); err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"target": target})
}

func (p *Provider) delete(params map[string]interface{}) (*types.Result, error) {
	id, ok := params["id"].(string)
	if !ok || id == "" {
		return failure("id parameter required")
	}

	if err := p.manager.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return failure(fmt.Sprintf("target not found: %s", id))
		}
		return failure(err.Error())
	}
	return success(map[string]interface{}{"deleted": true})
}

func (p *Provider) stats() (*types.Result, error) {
	return success(map[string]interface{}{"stats": p.manager.Stats()})
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
