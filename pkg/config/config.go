package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all host configuration
type Config struct {
	// Files configuration
	Files FilesConfig

	// Registry configuration
	Registry RegistryConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// FilesConfig holds the paths the host reads plugins and blogs from
type FilesConfig struct {
	PluginsFile string
	BlogsFile   string

	// Reload the blogs file on change
	WatchBlogs bool
}

// RegistryConfig holds registry load and render cache settings
type RegistryConfig struct {
	RenderCacheSize int

	// Backoff between failed load attempts
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       string
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Files:         loadFilesConfig(),
		Registry:      loadRegistryConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFilesConfig loads file paths from environment
func loadFilesConfig() FilesConfig {
	return FilesConfig{
		PluginsFile: getEnv("INKWELL_PLUGINS_FILE", "plugins.yaml"),
		BlogsFile:   getEnv("INKWELL_BLOGS_FILE", "blogs.yaml"),
		WatchBlogs:  getEnvBool("INKWELL_WATCH_BLOGS", true),
	}
}

// loadRegistryConfig loads registry settings from environment
func loadRegistryConfig() RegistryConfig {
	return RegistryConfig{
		RenderCacheSize:      getEnvInt("INKWELL_RENDER_CACHE_SIZE", 512),
		RetryInitialInterval: getEnvDuration("INKWELL_RETRY_INITIAL_INTERVAL", 500*time.Millisecond),
		RetryMaxInterval:     getEnvDuration("INKWELL_RETRY_MAX_INTERVAL", 2*time.Minute),
	}
}

// loadObservabilityConfig loads observability settings from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       getEnv("INKWELL_LOG_LEVEL", "info"),
		MetricsEnabled: getEnvBool("INKWELL_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Files.PluginsFile == "" {
		return fmt.Errorf("plugins file path is required")
	}
	if c.Files.BlogsFile == "" {
		return fmt.Errorf("blogs file path is required")
	}

	if c.Registry.RenderCacheSize <= 0 {
		return fmt.Errorf("render cache size must be positive, got %d", c.Registry.RenderCacheSize)
	}
	if c.Registry.RetryInitialInterval <= 0 {
		return fmt.Errorf("retry initial interval must be positive, got %s", c.Registry.RetryInitialInterval)
	}
	if c.Registry.RetryMaxInterval < c.Registry.RetryInitialInterval {
		return fmt.Errorf("retry max interval must be at least the initial interval")
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
