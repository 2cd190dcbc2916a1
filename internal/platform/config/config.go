// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Auth      AuthConfig      `koanf:"auth"`
	Health    HealthConfig    `koanf:"health"`
	Seed      SeedConfig      `koanf:"seed"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string          `koanf:"host"`
	Port           int             `koanf:"port"`
	ReadTimeout    time.Duration   `koanf:"read_timeout"`
	WriteTimeout   time.Duration   `koanf:"write_timeout"`
	IdleTimeout    time.Duration   `koanf:"idle_timeout"`
	RequestTimeout time.Duration   `koanf:"request_timeout"`
	RateLimit      RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig holds the per-client token bucket. A zero RPS disables
// rate limiting. TrustProxy keys buckets on X-Forwarded-For instead of the
// peer address and must only be set behind a proxy that overwrites it.
type RateLimitConfig struct {
	RPS        float64 `koanf:"rps"`
	Burst      int     `koanf:"burst"`
	TrustProxy bool    `koanf:"trust_proxy"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// AuthConfig holds password hashing settings.
type AuthConfig struct {
	BcryptCost int `koanf:"bcrypt_cost"`
}

// HealthConfig holds readiness check settings.
type HealthConfig struct {
	CheckTimeout time.Duration `koanf:"check_timeout"`
}

// SeedConfig controls loading of initial fixtures into the domain store.
type SeedConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
