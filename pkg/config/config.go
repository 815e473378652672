// Package config loads server configuration from an optional YAML file with
// environment variable overrides. Environment always wins, so containerized
// deployments can run without a config file at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openvenue/wayfinder/pkg/validation"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// CORSOrigins is the list of allowed cross-origin hosts. Empty means
	// cross-origin requests are disabled.
	CORSOrigins []string `yaml:"cors_origins"`
}

// DatabaseConfig configures the PostgreSQL connection pool.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the configuration used when neither file nor environment
// provides a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConns: 25,
			MinConns: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path (skipped when path is empty or the file
// does not exist), applies environment overrides, validates and returns the
// result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the loaded values.
func (c *Config) applyEnv() {
	if v := os.Getenv("WAYFINDER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("WAYFINDER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.Server.CORSOrigins = origins
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("DATABASE_MAX_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Database.MaxConns = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate implements validation.Validatable.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("Server.Host", c.Server.Host).
		RangeInt("Server.Port", c.Server.Port, 1, 65535).
		MinDuration("Server.ShutdownTimeout", c.Server.ShutdownTimeout, time.Second).
		Required("Database.URL", c.Database.URL).
		Positive("Database.MaxConns", c.Database.MaxConns).
		NonNegative("Database.MinConns", c.Database.MinConns).
		Custom("Database.MinConns", func() error {
			if c.Database.MinConns > c.Database.MaxConns {
				return fmt.Errorf("min_conns %d exceeds max_conns %d", c.Database.MinConns, c.Database.MaxConns)
			}
			return nil
		}).
		OneOf("Logging.Level", c.Logging.Level, []string{"debug", "info", "warn", "error"}).
		Validate()
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
