package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Formatting.MinBullets != 5 {
		t.Errorf("expected MinBullets=5, got %d", cfg.Formatting.MinBullets)
	}

	if cfg.Formatting.MinWords != 250 || cfg.Formatting.MaxWords != 1000 {
		t.Errorf("expected words 250..1000, got %d..%d", cfg.Formatting.MinWords, cfg.Formatting.MaxWords)
	}

	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}

	if cfg.Cache.Size() != 64 {
		t.Errorf("expected cache size 64, got %d", cfg.Cache.Size())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "missing database path",
			modify: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name: "invalid min_bullets",
			modify: func(c *Config) {
				c.Formatting.MinBullets = 0
			},
			wantErr: true,
		},
		{
			name: "max_words not above min_words",
			modify: func(c *Config) {
				c.Formatting.MaxWords = c.Formatting.MinWords
			},
			wantErr: true,
		},
		{
			name: "enabled cache without capacity",
			modify: func(c *Config) {
				c.Cache.MaxEntries = 0
			},
			wantErr: true,
		},
		{
			name: "disabled cache without capacity",
			modify: func(c *Config) {
				c.Cache.Enabled = false
				c.Cache.MaxEntries = 0
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	cfg.MCP.Transport = "http"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"logging.level", "mcp.transport"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	data := `
[database]
path = "/tmp/resumescan-test.db"

[formatting]
min_bullets = 3

[cache]
enabled = false

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.Path != "/tmp/resumescan-test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Formatting.MinBullets != 3 {
		t.Errorf("MinBullets = %d, want 3", cfg.Formatting.MinBullets)
	}
	// unset keys keep their defaults
	if cfg.Formatting.MaxWords != 1000 {
		t.Errorf("MaxWords = %d, want 1000", cfg.Formatting.MaxWords)
	}
	if cfg.Cache.Size() != 0 {
		t.Errorf("Cache.Size() = %d, want 0", cfg.Cache.Size())
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Formatting != Default().Formatting {
		t.Errorf("Formatting = %+v, want defaults", cfg.Formatting)
	}
	if strings.HasPrefix(cfg.Database.Path, "~") {
		t.Errorf("Database.Path not expanded: %q", cfg.Database.Path)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[database\npath = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/env.db")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvS3Endpoint, "http://localhost:9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.S3.Endpoint != "http://localhost:9000" {
		t.Errorf("S3.Endpoint = %q", cfg.S3.Endpoint)
	}
}

func TestApplyEnv_IgnoresBlank(t *testing.T) {
	cfg := Default()
	cfg.applyEnv(func(key string) (string, bool) {
		return "  ", true
	})
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestFormattingThresholds(t *testing.T) {
	f := FormattingConfig{MinBullets: 2, MinWords: 10, MaxWords: 20}
	got := f.Thresholds()
	if got.MinBullets != 2 || got.MinWords != 10 || got.MaxWords != 20 {
		t.Errorf("Thresholds() = %+v", got)
	}
}
