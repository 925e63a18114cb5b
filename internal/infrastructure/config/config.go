package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// validate is shared across calls; Validator instances cache struct metadata.
var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Device     DeviceConfig
	Probe      ProbeConfig
	Permission PermissionConfig
	Catalog    CatalogConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds gateway HTTP server configuration.
type ServerConfig struct {
	Port   string `envconfig:"PORT" default:"8000"`
	Host   string `envconfig:"HOST" default:"0.0.0.0"`
	WebDir string `envconfig:"WEB_DIR" default:"web"`
}

// DeviceConfig holds the companion device echo server configuration. URL is
// the gateway-side address used when proxying device health.
type DeviceConfig struct {
	Port   string `envconfig:"DEVICE_PORT" default:"8081"`
	Host   string `envconfig:"DEVICE_HOST" default:"0.0.0.0"`
	Name   string `envconfig:"DEVICE_NAME" default:"lanscope-demo-device"`
	ID     string `envconfig:"DEVICE_ID" default:""`
	Secret string `envconfig:"DEVICE_SECRET" default:"lanscope-dev"`
	URL    string `envconfig:"DEVICE_URL" default:"http://127.0.0.1:8081"`
}

// ProbeConfig holds the single-request probe lifecycle configuration.
// RetryCount defaults to 0 because probes are deliberately single-shot.
type ProbeConfig struct {
	TimeoutSeconds     int    `envconfig:"PROBE_TIMEOUT_SECONDS" default:"30" validate:"gte=1"`
	RetryCount         int    `envconfig:"PROBE_RETRY_COUNT" default:"0" validate:"gte=0"`
	RejectWhilePending bool   `envconfig:"PROBE_REJECT_WHILE_PENDING" default:"true"`
	MaxBodyBytes       int64  `envconfig:"PROBE_MAX_BODY_BYTES" default:"1048576" validate:"gte=1024"`
	SpaceVocabulary    string `envconfig:"ADDRESS_SPACE_VOCABULARY" default:"full" validate:"oneof=full reduced"`
}

// Timeout returns the probe timeout as a duration.
func (p ProbeConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// PermissionConfig selects where permission query results come from.
// "client" trusts the demo page's reports; the other modes simulate a host
// environment so the demo works from curl or non-capable browsers.
type PermissionConfig struct {
	Mode string `envconfig:"PERMISSION_MODE" default:"client" validate:"oneof=client absent granted prompt denied"`
}

// CatalogConfig holds the preset-target catalog configuration.
type CatalogConfig struct {
	Dir         string `envconfig:"TARGETS_DIR" default:"./targets"`
	SeedEnabled bool   `envconfig:"TARGETS_SEED_ENABLED" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks cross-field constraints the env tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:   "8000",
			Host:   "0.0.0.0",
			WebDir: "web",
		},
		Device: DeviceConfig{
			Port:   "8081",
			Host:   "0.0.0.0",
			Name:   "lanscope-demo-device",
			Secret: "lanscope-dev",
			URL:    "http://127.0.0.1:8081",
		},
		Probe: ProbeConfig{
			TimeoutSeconds:     30,
			RetryCount:         0,
			RejectWhilePending: true,
			MaxBodyBytes:       1 << 20,
			SpaceVocabulary:    "full",
		},
		Permission: PermissionConfig{
			Mode: "client",
		},
		Catalog: CatalogConfig{
			Dir:         "./targets",
			SeedEnabled: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
