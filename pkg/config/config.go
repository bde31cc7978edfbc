package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/tasklist/pkg/observability"
	"github.com/platinummonkey/tasklist/pkg/storage"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "TASKLIST_"

// FileEnvVar names the optional YAML file applied between defaults and env
const FileEnvVar = EnvPrefix + "CONFIG_FILE"

// Config holds all application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server" envPrefix:"SERVER_"`
	Storage       storage.Config      `yaml:"storage" envPrefix:"STORAGE_"`
	Auth          AuthConfig          `yaml:"auth" envPrefix:"AUTH_"`
	Observability ObservabilityConfig `yaml:"observability" envPrefix:"OBSERVABILITY_"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" env:"HOST"`
	Port            string        `yaml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`

	// Directory served for unmatched paths; empty disables it
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`

	// Health/metrics server (separate port for probes and scraping)
	HealthPort string `yaml:"health_port" env:"HEALTH_PORT"`
}

// AuthConfig holds credential settings
type AuthConfig struct {
	TokenSecret string        `yaml:"token_secret" env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
	TokenIssuer string        `yaml:"token_issuer" env:"TOKEN_ISSUER"`
	HashCost    int           `yaml:"hash_cost" env:"HASH_COST"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       string                   `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat      string                   `yaml:"log_format" env:"LOG_FORMAT"`
	MetricsEnabled bool                     `yaml:"metrics_enabled" env:"METRICS_ENABLED"`
	OTel           observability.OTelConfig `yaml:"otel" envPrefix:"OTEL_"`
}

// DefaultConfig returns the configuration used when nothing is set. The
// token secret has no default.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8001",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    1 << 20,
			HealthPort:      "9090",
		},
		Storage: storage.DefaultConfig(),
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
			HashCost: 8,
		},
		Observability: ObservabilityConfig{
			LogLevel:       "info",
			LogFormat:      observability.FormatJSON,
			MetricsEnabled: true,
			OTel: observability.OTelConfig{
				Endpoint:    "localhost:4317",
				ServiceName: "tasklist",
				Insecure:    true,
			},
		},
	}
}

// LoadConfig loads configuration from the process environment
func LoadConfig() (*Config, error) {
	return Load(env.ToMap(os.Environ()))
}

// Load builds configuration from defaults, then the YAML file named by
// TASKLIST_CONFIG_FILE (if any), then TASKLIST_* variables in environ
func Load(environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()

	if path := environ[FileEnvVar]; path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Server.HealthPort == "" {
		return errors.New("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return errors.New("server port and health port must be different")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}

	if !storage.SupportedDriver(c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver: %s (must be %s, %s or %s)",
			c.Storage.Driver, storage.DriverSQLite3, storage.DriverSQLite, storage.DriverPostgres)
	}
	if c.Storage.DSN == "" {
		return errors.New("storage DSN is required")
	}

	if c.Auth.TokenSecret == "" {
		return errors.New("auth token secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth token ttl must be positive")
	}
	if c.Auth.HashCost < bcrypt.MinCost || c.Auth.HashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth hash cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if _, err := logrus.ParseLevel(c.Observability.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.Observability.LogFormat {
	case observability.FormatJSON, observability.FormatText:
	default:
		return fmt.Errorf("invalid log format: %s", c.Observability.LogFormat)
	}

	if c.Observability.OTel.Enabled {
		if c.Observability.OTel.Endpoint == "" {
			return errors.New("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTel.ServiceName == "" {
			return errors.New("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// Addr returns the API listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// HealthAddr returns the ops listen address
func (s ServerConfig) HealthAddr() string {
	return s.Host + ":" + s.HealthPort
}
