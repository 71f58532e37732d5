package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/vijay-prabhu/resumescan/internal/analyzer"
	"github.com/vijay-prabhu/resumescan/internal/config"
	"github.com/vijay-prabhu/resumescan/internal/database"
	"github.com/vijay-prabhu/resumescan/internal/document"
	"github.com/vijay-prabhu/resumescan/internal/nlp"
)

// setupLogging installs the default slog logger on stderr
func setupLogging(cfg config.LoggingConfig) {
	level := parseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newAnalyzer loads the English lemma dictionary and builds the analyzer
func newAnalyzer(cfg *config.Config) (*analyzer.Analyzer, error) {
	lemmatizer, err := nlp.NewEnglishLemmatizer()
	if err != nil {
		return nil, err
	}

	return analyzer.New(nlp.NewNormalizer(lemmatizer),
		analyzer.WithThresholds(cfg.Formatting.Thresholds()),
		analyzer.WithCache(cfg.Cache.Size()),
		analyzer.WithMatchedKeywords(),
	), nil
}

// newLoader builds a document loader that also understands s3:// locations
func newLoader(cfg *config.Config) *document.Loader {
	return document.NewLoader(document.WithS3(document.S3Options{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	}))
}

// openHistory opens the history database, or returns nil when history is off
func openHistory(cfg *config.Config) (*database.DB, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// requireHistory opens the history database for history subcommands
func requireHistory(cfg *config.Config) (*database.DB, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in config (history.enabled = false)")
	}
	return openHistory(cfg)
}
