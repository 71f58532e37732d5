package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file values
const (
	EnvDBPath      = "RESUMESCAN_DB_PATH"
	EnvLogLevel    = "RESUMESCAN_LOG_LEVEL"
	EnvS3Endpoint  = "RESUMESCAN_S3_ENDPOINT"
	EnvS3Region    = "RESUMESCAN_S3_REGION"
	EnvS3AccessKey = "RESUMESCAN_S3_ACCESS_KEY"
	EnvS3SecretKey = "RESUMESCAN_S3_SECRET_KEY"
)

// DefaultPath returns ~/.config/resumescan/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "resumescan", "config.toml"), nil
}

// Load reads and parses the configuration file. A missing file is not an
// error; defaults apply. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// Expand path
		expandedPath, err := expandPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}

		data, err := os.ReadFile(expandedPath)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// defaults only
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file values with RESUMESCAN_* variables
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set(&c.Database.Path, EnvDBPath)
	set(&c.Logging.Level, EnvLogLevel)
	set(&c.S3.Endpoint, EnvS3Endpoint)
	set(&c.S3.Region, EnvS3Region)
	set(&c.S3.AccessKey, EnvS3AccessKey)
	set(&c.S3.SecretKey, EnvS3SecretKey)
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Formatting validation
	if c.Formatting.MinBullets < 1 {
		errs = append(errs, errors.New("formatting.min_bullets must be at least 1"))
	}
	if c.Formatting.MinWords < 1 {
		errs = append(errs, errors.New("formatting.min_words must be at least 1"))
	}
	if c.Formatting.MaxWords <= c.Formatting.MinWords {
		errs = append(errs, fmt.Errorf("formatting.max_words (%d) must be greater than min_words (%d)",
			c.Formatting.MaxWords, c.Formatting.MinWords))
	}

	// Cache validation
	if c.Cache.Enabled && c.Cache.MaxEntries < 1 {
		errs = append(errs, errors.New("cache.max_entries must be at least 1 when the cache is enabled"))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error, got '%s'", c.Logging.Level))
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", c.Logging.Format))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
