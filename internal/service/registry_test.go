package service

import (
	"context"
	"testing"

	"github.com/probelab/lanscope/internal/shared/types"
)

type mockProvider struct {
	id string
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing",
		Category:     types.CategoryProbe,
		Capabilities: []string{"submit", "clear"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"result": "success"},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := r.Get("test"); !ok {
		t.Error("Service should be registered")
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test"})

	r.Unregister("test")
	if _, ok := r.Get("test"); ok {
		t.Error("Service should be unregistered")
	}

	// Unregistering an unknown ID is a no-op.
	r.Unregister("ghost")
}

func TestList(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	services := r.List(nil)
	if len(services) != 2 {
		t.Errorf("Expected 2 services, got %d", len(services))
	}
	if services[0].ID != "test1" || services[1].ID != "test2" {
		t.Errorf("Expected stable ID ordering, got %s, %s", services[0].ID, services[1].ID)
	}

	cat := types.CategoryProbe
	filtered := r.List(&cat)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 probe services, got %d", len(filtered))
	}

	other := types.CategoryTargets
	if len(r.List(&other)) != 0 {
		t.Error("Expected no targets services")
	}
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "probe"})

	results := r.Discover("probe submit clear", 5)
	if len(results) == 0 {
		t.Fatal("Should discover probe service")
	}

	if results[0].ID != "probe" {
		t.Errorf("Expected probe service, got %s", results[0].ID)
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test"})

	ctx := context.Background()
	result, err := r.Execute(ctx, "test.test", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected successful execution")
	}
}

func TestExecuteUnknownService(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "ghost.tool", nil, nil)
	if err == nil {
		t.Fatal("Expected error for unknown service")
	}
	if result.Success {
		t.Error("Result should not be successful")
	}

	if _, err := r.Execute(context.Background(), "noseparator", nil, nil); err == nil {
		t.Error("Expected error for malformed tool ID")
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	stats := r.Stats()
	totalServices := stats["total_services"].(int)
	if totalServices != 2 {
		t.Errorf("Expected 2 total services, got %d", totalServices)
	}

	totalTools := stats["total_tools"].(int)
	if totalTools != 2 {
		t.Errorf("Expected 2 total tools, got %d", totalTools)
	}
}
