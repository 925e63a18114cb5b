package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/probelab/lanscope/internal/probe"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	// AllowPrivateNetwork answers the Private Network Access preflight
	// so browsers let pages probe the gateway across address spaces.
	AllowPrivateNetwork bool
	MaxAge              time.Duration
}

// DefaultCORSConfig returns the gateway CORS configuration. The demo page
// may be hosted anywhere on the LAN, so the wildcard origin stays; the
// probe hint header must be allowed or probing preflights fail.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Accept",
			"Origin",
			"Cache-Control",
			"X-Requested-With",
			probe.HintHeader,
		},
		AllowPrivateNetwork: true,
		MaxAge:              12 * time.Hour,
	}
}

// CORS creates a CORS middleware with the provided configuration.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	base := cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
		AllowHeaders: cfg.AllowHeaders,
		MaxAge:       cfg.MaxAge,
	})

	if !cfg.AllowPrivateNetwork {
		return base
	}

	return func(c *gin.Context) {
		// Set before the base handler: preflights abort inside it.
		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Private-Network", "true")
		}
		base(c)
	}
}
