package config

import (
	"fmt"
	"time"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Entry    EntryConfig
	Resolve  ResolveConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port      string
	ServerURL string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// EntryConfig holds configuration for the external project site
type EntryConfig struct {
	BaseURL       string
	QueryEndpoint string
}

// ResolveConfig holds group-resolution configuration
type ResolveConfig struct {
	MaxConcurrent int
	UseQueryAPI   bool
	TokenCacheTTL time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level string
}

// New creates a new config with the given parameters
func New(port, serverURL, dbPath, baseURL, queryEndpoint string, maxConcurrent int, useQueryAPI bool, tokenCacheTTL time.Duration, logLevel string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      port,
			ServerURL: serverURL,
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Entry: EntryConfig{
			BaseURL:       baseURL,
			QueryEndpoint: queryEndpoint,
		},
		Resolve: ResolveConfig{
			MaxConcurrent: maxConcurrent,
			UseQueryAPI:   useQueryAPI,
			TokenCacheTTL: tokenCacheTTL,
		},
		Logging: LoggingConfig{
			Level: logLevel,
		},
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Server.ServerURL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.Entry.BaseURL == "" {
		return fmt.Errorf("entry base URL cannot be empty")
	}

	if c.Resolve.UseQueryAPI && c.Entry.QueryEndpoint == "" {
		return fmt.Errorf("query endpoint cannot be empty when the query API is enabled")
	}

	if c.Resolve.MaxConcurrent < 0 {
		return fmt.Errorf("max concurrent resolutions cannot be negative, got: %d", c.Resolve.MaxConcurrent)
	}

	if c.Resolve.TokenCacheTTL < 0 {
		return fmt.Errorf("token cache TTL cannot be negative, got: %v", c.Resolve.TokenCacheTTL)
	}

	return nil
}
