package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/probelab/lanscope/internal/catalog"
	"github.com/probelab/lanscope/internal/classify"
	"github.com/probelab/lanscope/internal/device"
	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/permission"
	"github.com/probelab/lanscope/internal/probe"
	"github.com/probelab/lanscope/internal/service"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	lifecycle *probe.Lifecycle
	reader    *permission.Reader
	catalog   *catalog.Manager
	registry  *service.Registry
	identity  device.Identity
	deviceURL string
	log       *logging.Logger
	track     *HandlerMetrics
}

// NewHandlers creates a new handler set
func NewHandlers(
	lifecycle *probe.Lifecycle,
	reader *permission.Reader,
	catalogManager *catalog.Manager,
	registry *service.Registry,
	identity device.Identity,
	deviceURL string,
	log *logging.Logger,
	track *HandlerMetrics,
) *Handlers {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handlers{
		lifecycle: lifecycle,
		reader:    reader,
		catalog:   catalogManager,
		registry:  registry,
		identity:  identity,
		deviceURL: deviceURL,
		log:       log.Component("api"),
		track:     track,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "lanscope gateway",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"probe_phase":      h.lifecycle.Outcome().Phase,
		"permission_known": h.reader.Current().Known(),
		"service_registry": h.registry.Stats(),
		"catalog":          h.catalog.Stats(),
	})
}

// Status returns the full demo state in one round trip: the permission
// snapshot, the probe outcome, the active address-space vocabulary and
// the companion device identity.
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"permission": h.reader.Current(),
		"probe":      h.lifecycle.Outcome(),
		"vocabulary": h.lifecycle.Vocabulary(),
		"spaces":     types.SpacesFor(h.lifecycle.Vocabulary()),
		"device": gin.H{
			"name": h.identity.Name,
			"id":   h.identity.ID,
			"url":  h.deviceURL,
		},
	})
}

// RefreshPermission recomputes the permission snapshot from a client report
func (h *Handlers) RefreshPermission(c *gin.Context) {
	if h.track != nil {
		defer h.track.TrackPermissionOperation("refresh")()
	}

	var report types.ClientReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := h.reader.Refresh(c.Request.Context(), report)

	c.JSON(http.StatusOK, gin.H{"permission": snapshot})
}

// SubmitProbe starts one probe; 409 while another is in flight
func (h *Handlers) SubmitProbe(c *gin.Context) {
	if h.track != nil {
		defer h.track.TrackProbeOperation("submit")()
	}

	var req types.ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seq, err := h.lifecycle.Submit(c.Request.Context(), req.URL, req.AddressSpace)
	if errors.Is(err, probe.ErrProbeInFlight) {
		c.JSON(http.StatusConflict, gin.H{"error": "a probe is already in flight"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"sequence": seq,
		"outcome":  h.lifecycle.Outcome(),
	})
}

// GetProbe returns the current probe outcome
func (h *Handlers) GetProbe(c *gin.Context) {
	c.JSON(http.StatusOK, h.lifecycle.Outcome())
}

// ClearProbe resets the probe slot to idle
func (h *Handlers) ClearProbe(c *gin.Context) {
	if h.track != nil {
		defer h.track.TrackProbeOperation("clear")()
	}

	h.lifecycle.Clear()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"outcome": h.lifecycle.Outcome(),
	})
}

// Support classifies an explicit browser name and version, or the caller's
// own User-Agent when no name is given
func (h *Handlers) Support(c *gin.Context) {
	name := c.Query("name")
	version := c.Query("version")

	var verdict types.BrowserVerdict
	if name == "" {
		verdict = classify.ClassifyIdentity(classify.ParseUserAgent(c.GetHeader("User-Agent")))
	} else {
		verdict = classify.Classify(name, version)
	}

	c.JSON(http.StatusOK, verdict)
}

// SupportMatrix returns the support threshold table
func (h *Handlers) SupportMatrix(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"matrix": classify.Matrix()})
}

// ListTargets lists catalog targets, optionally filtered by address space
func (h *Handlers) ListTargets(c *gin.Context) {
	var space *types.AddressSpace
	if spaceStr := c.Query("space"); spaceStr != "" {
		s := types.AddressSpace(spaceStr)
		if !types.ValidSpace(s, h.lifecycle.Vocabulary()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown address space: " + spaceStr})
			return
		}
		space = &s
	}

	c.JSON(http.StatusOK, gin.H{
		"targets": h.catalog.List(space),
		"stats":   h.catalog.Stats(),
	})
}

// SaveTarget creates or updates a catalog target
func (h *Handlers) SaveTarget(c *gin.Context) {
	if h.track != nil {
		defer h.track.TrackCatalogOperation("save")()
	}

	var target types.Target
	if err := c.ShouldBindJSON(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.Save(&target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"target":  target,
	})
}

// GetTarget returns one catalog target by ID
func (h *Handlers) GetTarget(c *gin.Context) {
	target, err := h.catalog.Get(c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, target)
}

// DeleteTarget removes one catalog target by ID
func (h *Handlers) DeleteTarget(c *gin.Context) {
	if h.track != nil {
		defer h.track.TrackCatalogOperation("delete")()
	}

	id := c.Param("id")
	err := h.catalog.Delete(id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"target_id": id,
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		if !validCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + categoryStr})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	if h.track != nil {
		defer h.track.TrackServiceOperation("execute")()
	}

	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userAgent := c.GetHeader("User-Agent")
	remoteAddr := c.ClientIP()
	appCtx := &types.Context{
		ClientID:   req.ClientID,
		RemoteAddr: &remoteAddr,
		UserAgent:  &userAgent,
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func validCategory(cat types.Category) bool {
	switch cat {
	case types.CategorySupport, types.CategoryPermission, types.CategoryProbe, types.CategoryTargets:
		return true
	}
	return false
}
