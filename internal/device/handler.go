package device

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/probelab/lanscope/internal/addrspace"
	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/probe"
	"github.com/probelab/lanscope/internal/shared/types"
)

// Response headers the device sets on every answer.
const (
	headerAllowPrivateNetwork = "Access-Control-Allow-Private-Network"
	headerDeviceName          = "Private-Network-Access-Name"
	headerDeviceID            = "Private-Network-Access-ID"
)

// Handler answers preflight and echo requests for every path and method.
type Handler struct {
	identity Identity
	log      *logging.Logger
	timeNow  func() time.Time
	started  time.Time
}

// NewHandler creates the catch-all echo handler.
func NewHandler(identity Identity, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handler{
		identity: identity,
		log:      log,
		timeNow:  time.Now,
		started:  time.Now(),
	}
}

// echoResponse describes one request as the device received it.
type echoResponse struct {
	Message       string              `json:"message"`
	Device        Identity            `json:"device"`
	Method        string              `json:"method"`
	Path          string              `json:"path"`
	Query         string              `json:"query,omitempty"`
	RemoteZone    types.AddressSpace  `json:"remote_zone"`
	Hint          string              `json:"hint,omitempty"`
	Headers       []types.HeaderEntry `json:"headers"`
	UptimeSeconds float64             `json:"uptime_seconds"`
	Time          time.Time           `json:"time"`
}

// Echo is the single route: OPTIONS gets 204 with consent headers only,
// everything else a JSON account of the request. The echoed header list
// runs through the same filter the probe applies to responses, so both
// sides of the demo show the identical header subset.
func (h *Handler) Echo(c *gin.Context) {
	h.applyHeaders(c)

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	now := h.timeNow()
	c.JSON(http.StatusOK, echoResponse{
		Message:       "lanscope device echo",
		Device:        h.identity,
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Query:         c.Request.URL.RawQuery,
		RemoteZone:    addrspace.ZoneOfAddr(c.Request.RemoteAddr),
		Hint:          c.GetHeader(probe.HintHeader),
		Headers:       probe.FilterHeaders(c.Request.Header),
		UptimeSeconds: now.Sub(h.started).Seconds(),
		Time:          now,
	})
}

// applyHeaders sets the CORS and Private Network Access consent headers.
// The wildcard origin is deliberate: the device consents to any page that
// survived the browser's own permission gate.
func (h *Handler) applyHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, "+probe.HintHeader)
	c.Header("Access-Control-Expose-Headers", headerDeviceName+", "+headerDeviceID)
	c.Header(headerAllowPrivateNetwork, "true")
	c.Header(headerDeviceName, h.identity.Name)
	c.Header(headerDeviceID, h.identity.ID)
}
