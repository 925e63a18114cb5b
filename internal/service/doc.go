// Package service provides the provider registry behind the tool API.
//
// Providers publish a Definition (service plus tool metadata) and an
// Execute entry point; the registry routes dotted tool IDs
// ("probe.submit", "targets.list") to the owning provider. Discovery
// scores definitions against a free-text intent so the demo page can
// offer tool suggestions.
//
// Example usage:
//
//	registry := service.NewRegistry()
//	registry.Register(probeProvider)
//	result, err := registry.Execute(ctx, "probe.submit", params, appCtx)
package service
