package device

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/probelab/lanscope/internal/infrastructure/config"
	"github.com/probelab/lanscope/internal/infrastructure/logging"
)

// Server is the companion device process: one catch-all gin engine
// wrapped in transparent gzip.
type Server struct {
	cfg      config.DeviceConfig
	log      *logging.Logger
	identity Identity
	http     *http.Server
}

// NewServer assembles the device server from its configuration.
func NewServer(cfg config.DeviceConfig, log *logging.Logger, development bool) (*Server, error) {
	if log == nil {
		log = logging.NewNop()
	}
	log = log.Component("device")

	identity, err := NewIdentity(cfg.Name, cfg.ID, cfg.Secret)
	if err != nil {
		return nil, err
	}

	if !development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := NewHandler(identity, log)
	// Every path and method lands in the echo handler.
	router.NoRoute(handler.Echo)

	return &Server{
		cfg:      cfg,
		log:      log,
		identity: identity,
		http: &http.Server{
			Addr:              cfg.Host + ":" + cfg.Port,
			Handler:           gzhttp.GzipHandler(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Identity returns the advertised identity.
func (s *Server) Identity() Identity {
	return s.identity
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.log.Info("Starting device server",
		zap.String("addr", s.http.Addr),
		zap.String("device_name", s.identity.Name),
		zap.String("device_id", s.identity.ID),
	)

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down device server...")
	defer s.log.Sync()
	return s.http.Shutdown(ctx)
}
