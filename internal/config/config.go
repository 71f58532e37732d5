package config

import "github.com/vijay-prabhu/resumescan/internal/critic"

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `toml:"database"`
	History    HistoryConfig    `toml:"history"`
	Formatting FormattingConfig `toml:"formatting"`
	Cache      CacheConfig      `toml:"cache"`
	S3         S3Config         `toml:"s3"`
	Logging    LoggingConfig    `toml:"logging"`
	MCP        MCPConfig        `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// HistoryConfig controls whether analyses are recorded
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// FormattingConfig contains the resume formatting heuristics
type FormattingConfig struct {
	MinBullets int `toml:"min_bullets"`
	MinWords   int `toml:"min_words"`
	MaxWords   int `toml:"max_words"`
}

// Thresholds converts the section into critic thresholds
func (f FormattingConfig) Thresholds() critic.Thresholds {
	return critic.Thresholds{
		MinBullets: f.MinBullets,
		MinWords:   f.MinWords,
		MaxWords:   f.MaxWords,
	}
}

// CacheConfig contains analysis cache settings
type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	MaxEntries int  `toml:"max_entries"`
}

// Size returns the cache capacity, or 0 when caching is disabled
func (c CacheConfig) Size() int {
	if !c.Enabled {
		return 0
	}
	return c.MaxEntries
}

// S3Config contains settings for s3:// document locations.
// Credentials fall back to the default AWS chain when empty.
type S3Config struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

// LoggingConfig contains log settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	thresholds := critic.DefaultThresholds()

	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/resumescan/resumescan.db",
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Formatting: FormattingConfig{
			MinBullets: thresholds.MinBullets,
			MinWords:   thresholds.MinWords,
			MaxWords:   thresholds.MaxWords,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 64,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
