package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/probelab/lanscope/internal/api/http"
	"github.com/probelab/lanscope/internal/api/middleware"
	"github.com/probelab/lanscope/internal/api/ws"
	"github.com/probelab/lanscope/internal/catalog"
	"github.com/probelab/lanscope/internal/device"
	"github.com/probelab/lanscope/internal/infrastructure/config"
	"github.com/probelab/lanscope/internal/infrastructure/logging"
	"github.com/probelab/lanscope/internal/infrastructure/monitoring"
	"github.com/probelab/lanscope/internal/infrastructure/tracing"
	"github.com/probelab/lanscope/internal/permission"
	"github.com/probelab/lanscope/internal/probe"
	permissionsProvider "github.com/probelab/lanscope/internal/providers/permissions"
	probeProvider "github.com/probelab/lanscope/internal/providers/probe"
	supportProvider "github.com/probelab/lanscope/internal/providers/support"
	targetsProvider "github.com/probelab/lanscope/internal/providers/targets"
	"github.com/probelab/lanscope/internal/service"
)

// Server wraps the gateway HTTP server and its dependencies
type Server struct {
	router    *gin.Engine
	lifecycle *probe.Lifecycle
	reader    *permission.Reader
	catalog   *catalog.Manager
	registry  *service.Registry
	logger    *logging.Logger
	config    *config.Config
	metrics   *monitoring.Metrics
	httpSrv   *http.Server
}

// New creates a new gateway server instance
func New(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing lanscope gateway",
		zap.String("port", cfg.Server.Port),
		zap.String("device_url", cfg.Device.URL),
		zap.String("permission_mode", cfg.Permission.Mode),
		zap.String("vocabulary", cfg.Probe.SpaceVocabulary),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	logger.Info("Performance monitoring initialized")

	// Initialize request tracing
	tracer := tracing.New("gateway", logger.Logger)

	// Initialize probe lifecycle
	probeClient := probe.NewClient(cfg.Probe)
	lifecycle := probe.NewLifecycle(probeClient, cfg.Probe, logger, metrics)

	// Initialize permission reader. The querier decides where snapshots come
	// from: client reports in normal operation, simulated host states for
	// curl-driven demos.
	querier := permission.ForMode(cfg.Permission.Mode)
	reader := permission.NewReader(querier, logger, metrics)

	// Initialize target catalog
	catalogManager := catalog.NewManager(cfg.Catalog.Dir, metrics)
	seeder := catalog.NewSeeder(catalogManager, cfg.Catalog.Dir, logger)
	if err := seeder.Seed(); err != nil {
		logger.Warn("Failed to load stored targets", zap.Error(err))
	}
	if cfg.Catalog.SeedEnabled {
		if err := seeder.SeedDefaults(cfg.Device.URL); err != nil {
			logger.Warn("Failed to seed default targets", zap.Error(err))
		}
	}

	// Initialize service registry
	serviceRegistry := service.NewRegistry()
	registerProviders(serviceRegistry, lifecycle, reader, catalogManager, logger)

	// Device identity announced in probe responses
	identity, err := device.NewIdentity(cfg.Device.Name, cfg.Device.ID, cfg.Device.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive device identity: %w", err)
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(middleware.Recovery(logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handler metrics wrapper
	handlerMetrics := apihttp.NewHandlerMetrics(metrics)

	// Create handlers
	handlers := apihttp.NewHandlers(lifecycle, reader, catalogManager, serviceRegistry,
		identity, cfg.Device.URL, logger, handlerMetrics)
	wsHandler := ws.NewHandler(lifecycle, reader, logger, metrics)

	// Serve the demo page
	router.Static("/demo", cfg.Server.WebDir)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/api/status", handlers.Status)

	// Permission reader
	router.POST("/api/permission/refresh", handlers.RefreshPermission)

	// Probe lifecycle
	router.POST("/api/probe", handlers.SubmitProbe)
	router.GET("/api/probe", handlers.GetProbe)
	router.DELETE("/api/probe", handlers.ClearProbe)

	// Browser capability classifier
	router.GET("/api/support", handlers.Support)
	router.GET("/api/support/matrix", handlers.SupportMatrix)

	// Target catalog
	router.GET("/api/targets", handlers.ListTargets)
	router.POST("/api/targets", handlers.SaveTarget)
	router.GET("/api/targets/:id", handlers.GetTarget)
	router.DELETE("/api/targets/:id", handlers.DeleteTarget)

	// Service registry
	router.GET("/api/services", handlers.ListServices)
	router.POST("/api/services/execute", handlers.ExecuteService)

	// Wire schemas
	router.GET("/api/schema", handlers.ListSchemas)
	router.GET("/api/schema/:name", handlers.GetSchema)

	// Page diagnostics
	router.POST("/api/logs", handlers.StreamLogs)

	// WebSocket state stream
	router.GET("/api/stream", wsHandler.HandleConnection)

	// Create metrics aggregator and feed it probe outcomes
	aggregator := apihttp.NewMetricsAggregator(metrics, cfg.Device.URL)
	lifecycle.Watch(aggregator.Observe)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/metrics/json", aggregator.GetJSONMetrics)
	router.GET("/metrics/probe", aggregator.GetProbeStats)
	router.GET("/metrics/device", aggregator.ProxyDeviceHealth)

	logger.Info("Gateway initialized successfully")

	return &Server{
		router:    router,
		lifecycle: lifecycle,
		reader:    reader,
		catalog:   catalogManager,
		registry:  serviceRegistry,
		logger:    logger,
		config:    cfg,
		metrics:   metrics,
		httpSrv: &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpSrv.Addr))

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	// Sync logger before exit
	s.logger.Sync()

	return nil
}

func registerProviders(
	registry *service.Registry,
	lifecycle *probe.Lifecycle,
	reader *permission.Reader,
	catalogManager *catalog.Manager,
	logger *logging.Logger,
) {
	logger.Info("Registering service providers...")

	if err := registry.Register(supportProvider.NewProvider()); err != nil {
		logger.Warn("Failed to register support provider", zap.Error(err))
	}
	if err := registry.Register(permissionsProvider.NewProvider(reader)); err != nil {
		logger.Warn("Failed to register permissions provider", zap.Error(err))
	}
	if err := registry.Register(probeProvider.NewProvider(lifecycle)); err != nil {
		logger.Warn("Failed to register probe provider", zap.Error(err))
	}
	if err := registry.Register(targetsProvider.NewProvider(catalogManager)); err != nil {
		logger.Warn("Failed to register targets provider", zap.Error(err))
	}
}
