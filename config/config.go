// Package config loads the service configuration from a YAML or JSON file
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Registry RegistryConfig `json:"registry"`
	Rotation RotationConfig `json:"rotation"`
	Lock     LockConfig     `json:"lock"`
	Metrics  MetricsConfig  `json:"metrics"`
	Fleet    FleetConfig    `json:"fleet"`
}

// ServerConfig configures the planning API server.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// RegistryConfig configures the crew registry source and its cache.
type RegistryConfig struct {
	BaseURL      string        `json:"base_url"`
	Timeout      time.Duration `json:"timeout"`
	CachePath    string        `json:"cache_path"`
	CacheMaxAge  time.Duration `json:"cache_max_age"`
	RefreshEvery time.Duration `json:"refresh_every"`
}

// RotationConfig configures the scheduling computation.
type RotationConfig struct {
	HorizonMonths int `json:"horizon_months"`
}

// LockConfig configures the locked-rotation store.
type LockConfig struct {
	Path string `json:"path"`
}

// MetricsConfig configures the observability sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    int    `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// FleetConfig points at an optional rotation-group override file.
type FleetConfig struct {
	GroupsPath string `json:"groups_path"`
}

// SetDefaults fills unset fields with working defaults.
func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Registry.Timeout <= 0 {
		c.Registry.Timeout = 30 * time.Second
	}
	if c.Registry.CachePath == "" {
		c.Registry.CachePath = "registry_cache.db"
	}
	if c.Registry.CacheMaxAge <= 0 {
		c.Registry.CacheMaxAge = 48 * time.Hour
	}
	if c.Registry.RefreshEvery <= 0 {
		c.Registry.RefreshEvery = 24 * time.Hour
	}
	if c.Rotation.HorizonMonths <= 0 {
		c.Rotation.HorizonMonths = 36
	}
	if c.Lock.Path == "" {
		c.Lock.Path = "locks.db"
	}
	if c.Metrics.PrometheusPort == 0 {
		c.Metrics.PrometheusPort = 2112
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Registry.BaseURL == "" {
		return fmt.Errorf("registry.base_url is required")
	}
	if c.Rotation.HorizonMonths < 1 {
		return fmt.Errorf("rotation.horizon_months must be positive")
	}
	if c.Metrics.InfluxEnabled && c.Metrics.InfluxURL == "" {
		return fmt.Errorf("metrics.influx_url is required when influx is enabled")
	}
	return nil
}

// Load reads the configuration file at path. Environment variables prefixed
// with K_ override file values, with __ separating nesting levels, e.g.
// K_REGISTRY__BASE_URL.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
