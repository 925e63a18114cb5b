package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/probelab/lanscope/internal/shared/types"
)

// schemaSubjects maps exposed schema names to the wire types they describe.
func schemaSubjects() map[string]interface{} {
	return map[string]interface{}{
		"browser_verdict":     types.BrowserVerdict{},
		"client_report":       types.ClientReport{},
		"execute_request":     types.ExecuteRequest{},
		"permission_snapshot": types.PermissionSnapshot{},
		"probe_request":       types.ProbeRequest{},
		"request_outcome":     types.RequestOutcome{},
		"service":             types.Service{},
		"stream_message":      types.StreamMessage{},
		"target":              types.Target{},
	}
}

// reflectSchema builds a JSON Schema (Draft 2020-12) for one wire type.
func reflectSchema(v interface{}) *jsonschema.Schema {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	return reflector.Reflect(v)
}

// ListSchemas returns the available schema names plus the active
// address-space vocabulary, so clients see the value set in force.
func (h *Handlers) ListSchemas(c *gin.Context) {
	subjects := schemaSubjects()
	names := make([]string, 0, len(subjects))
	for name := range subjects {
		names = append(names, name)
	}
	sort.Strings(names)

	c.JSON(http.StatusOK, gin.H{
		"schemas":        names,
		"vocabulary":     h.lifecycle.Vocabulary(),
		"address_spaces": types.SpacesFor(h.lifecycle.Vocabulary()),
	})
}

// GetSchema returns the JSON Schema for one wire type
func (h *Handlers) GetSchema(c *gin.Context) {
	name := c.Param("name")
	subject, ok := schemaSubjects()[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown schema: " + name})
		return
	}

	c.JSON(http.StatusOK, reflectSchema(subject))
}
