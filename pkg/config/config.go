// Package config loads and validates the server configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/safesphere/saferoute/pkg/validation"
)

// Config is the top-level server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Engine  EngineConfig  `yaml:"engine"`
	Feed    FeedConfig    `yaml:"feed"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// EngineConfig configures routing and risk computation.
type EngineConfig struct {
	CostMode            string        `yaml:"cost_mode"`
	RiskPenaltyFactor   float64       `yaml:"risk_penalty_factor"`
	InterpolationK      int           `yaml:"interpolation_k"`
	MaxIterations       int           `yaml:"max_iterations"`
	QueryDeadline       time.Duration `yaml:"query_deadline"`
	SampleStride        int           `yaml:"sample_stride"`
	ReferenceDistanceKm float64       `yaml:"reference_distance_km"`
	ZoneTTL             time.Duration `yaml:"zone_ttl"`
	ExpirySweepInterval time.Duration `yaml:"expiry_sweep_interval"`
}

// FeedConfig configures the incident feed subscriber.
type FeedConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Topic   string `yaml:"topic"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Engine: EngineConfig{
			CostMode:            "pure_risk",
			RiskPenaltyFactor:   50.0,
			InterpolationK:      3,
			MaxIterations:       100000,
			QueryDeadline:       2 * time.Second,
			SampleStride:        3,
			ReferenceDistanceKm: 3.0,
			ZoneTTL:             2 * time.Hour,
			ExpirySweepInterval: time.Minute,
		},
		Feed: FeedConfig{
			Enabled: false,
			URL:     "tcp://127.0.0.1:5555",
			Topic:   "incidents",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = def.Server.ListenAddr
	}
	cfg.Server.ReadTimeout = validation.DefaultOrDuration(cfg.Server.ReadTimeout, def.Server.ReadTimeout)
	cfg.Server.WriteTimeout = validation.DefaultOrDuration(cfg.Server.WriteTimeout, def.Server.WriteTimeout)
	cfg.Server.ShutdownTimeout = validation.DefaultOrDuration(cfg.Server.ShutdownTimeout, def.Server.ShutdownTimeout)

	if cfg.Engine.CostMode == "" {
		cfg.Engine.CostMode = def.Engine.CostMode
	}
	cfg.Engine.RiskPenaltyFactor = validation.DefaultOrFloat(cfg.Engine.RiskPenaltyFactor, def.Engine.RiskPenaltyFactor)
	cfg.Engine.InterpolationK = validation.DefaultOrInt(cfg.Engine.InterpolationK, def.Engine.InterpolationK)
	cfg.Engine.MaxIterations = validation.DefaultOrInt(cfg.Engine.MaxIterations, def.Engine.MaxIterations)
	cfg.Engine.QueryDeadline = validation.DefaultOrDuration(cfg.Engine.QueryDeadline, def.Engine.QueryDeadline)
	cfg.Engine.SampleStride = validation.DefaultOrInt(cfg.Engine.SampleStride, def.Engine.SampleStride)
	cfg.Engine.ReferenceDistanceKm = validation.DefaultOrFloat(cfg.Engine.ReferenceDistanceKm, def.Engine.ReferenceDistanceKm)
	cfg.Engine.ZoneTTL = validation.DefaultOrDuration(cfg.Engine.ZoneTTL, def.Engine.ZoneTTL)
	cfg.Engine.ExpirySweepInterval = validation.DefaultOrDuration(cfg.Engine.ExpirySweepInterval, def.Engine.ExpirySweepInterval)

	if cfg.Feed.URL == "" {
		cfg.Feed.URL = def.Feed.URL
	}
	if cfg.Feed.Topic == "" {
		cfg.Feed.Topic = def.Feed.Topic
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("Server.ListenAddr", c.Server.ListenAddr).
		MinDuration("Server.ShutdownTimeout", c.Server.ShutdownTimeout, time.Second).
		OneOf("Engine.CostMode", c.Engine.CostMode, []string{"pure_risk", "distance_weighted"}).
		PositiveFloat("Engine.RiskPenaltyFactor", c.Engine.RiskPenaltyFactor).
		Positive("Engine.InterpolationK", c.Engine.InterpolationK).
		Positive("Engine.MaxIterations", c.Engine.MaxIterations).
		MinDuration("Engine.QueryDeadline", c.Engine.QueryDeadline, 10*time.Millisecond).
		Positive("Engine.SampleStride", c.Engine.SampleStride).
		PositiveFloat("Engine.ReferenceDistanceKm", c.Engine.ReferenceDistanceKm).
		When(c.Feed.Enabled, func(cv *validation.ConfigValidator) {
			cv.Required("Feed.URL", c.Feed.URL)
			cv.Required("Feed.Topic", c.Feed.Topic)
		}).
		Validate()
}
