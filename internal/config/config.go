// Package config loads heatgrid settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/render"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Render   RenderConfig
	Workers  int
	LogLevel string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr           string
	MaxUploadBytes int64
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// RenderConfig holds heatmap rendering settings
type RenderConfig struct {
	CellSize     int
	LegacyCanvas bool
}

// Options converts the render settings into renderer options
func (c RenderConfig) Options() render.Options {
	return render.Options{
		CellSize:     c.CellSize,
		LegacyCanvas: c.LegacyCanvas,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Render:   *loadRenderConfig(),
		Workers:  getEnvIntOrDefault("HEATGRID_WORKERS", 4),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:           getEnvOrDefault("HEATGRID_ADDR", ":8080"),
		MaxUploadBytes: int64(getEnvIntOrDefault("HEATGRID_MAX_UPLOAD_BYTES", 32<<20)),
		ReadTimeout:    getEnvDurationOrDefault("HEATGRID_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getEnvDurationOrDefault("HEATGRID_WRITE_TIMEOUT", 30*time.Second),
	}
}

func loadRenderConfig() *RenderConfig {
	return &RenderConfig{
		CellSize:     getEnvIntOrDefault("HEATGRID_CELL_SIZE", render.DefaultCellSize),
		LegacyCanvas: getEnvBoolOrDefault("HEATGRID_LEGACY_CANVAS", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Addr == "" {
		return errors.New("server address is required")
	}
	if config.Server.MaxUploadBytes <= 0 {
		return errors.New("max upload size must be positive")
	}
	if config.Render.CellSize < 1 {
		return fmt.Errorf("cell size must be at least 1, got %d", config.Render.CellSize)
	}
	if config.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", config.Workers)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
