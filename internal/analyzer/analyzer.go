// Package analyzer compares a resume with a job description and produces a
// scored, categorized match result.
package analyzer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vijay-prabhu/resumescan/internal/critic"
	"github.com/vijay-prabhu/resumescan/internal/document"
	"github.com/vijay-prabhu/resumescan/internal/match"
	"github.com/vijay-prabhu/resumescan/internal/nlp"
)

// ErrInput is returned for missing or unusable input
var ErrInput = document.ErrInput

// Analyzer runs the matching pipeline. It holds no per-request state and is
// safe for concurrent use.
type Analyzer struct {
	normalizer     *nlp.Normalizer
	critic         *critic.Critic
	cache          *Cache
	includeMatched bool
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithThresholds overrides the formatting heuristics
func WithThresholds(t critic.Thresholds) Option {
	return func(a *Analyzer) {
		a.critic = critic.New(t)
	}
}

// WithCache memoizes up to size results keyed by input content
func WithCache(size int) Option {
	return func(a *Analyzer) {
		if size > 0 {
			a.cache = NewCache(size)
		}
	}
}

// WithMatchedKeywords also reports the job keywords the resume covers
func WithMatchedKeywords() Option {
	return func(a *Analyzer) {
		a.includeMatched = true
	}
}

// New creates an Analyzer around a shared Normalizer
func New(normalizer *nlp.Normalizer, opts ...Option) *Analyzer {
	a := &Analyzer{
		normalizer: normalizer,
		critic:     critic.New(critic.DefaultThresholds()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scores resumeRaw against jobRaw. An empty resume is valid and scores
// 0 with every job keyword missing; a blank job description is ErrInput.
func (a *Analyzer) Analyze(resumeRaw, jobRaw string) (*match.MatchResult, error) {
	if strings.TrimSpace(jobRaw) == "" {
		return nil, fmt.Errorf("%w: job description is empty", ErrInput)
	}

	var key string
	if a.cache != nil {
		key = CacheKey(resumeRaw, jobRaw)
		if cached, ok := a.cache.Get(key); ok {
			slog.Debug("analysis cache hit", "key", key[:12])
			return cached, nil
		}
	}

	start := time.Now()

	resumeNorm := a.normalizer.Normalize(resumeRaw)
	jobNorm := a.normalizer.Normalize(jobRaw)

	missing := match.MissingKeywords(resumeNorm, jobNorm)

	result := &match.MatchResult{
		Score:             match.Similarity(resumeNorm, jobNorm),
		MissingByCategory: match.Categorize(missing),
		FormattingNotes:   a.critic.Critique(resumeRaw),
	}
	if a.includeMatched {
		result.MatchedKeywords = match.MatchedKeywords(resumeNorm, jobNorm)
	}

	slog.Debug("analysis complete",
		"score", result.Score,
		"missing", len(missing),
		"notes", len(result.FormattingNotes),
		"duration", time.Since(start),
	)

	if a.cache != nil {
		a.cache.Put(key, result)
	}

	return result, nil
}

// AnalyzeDocument extracts the resume text from doc and analyzes it
func (a *Analyzer) AnalyzeDocument(doc *document.Document, jobRaw string) (*match.MatchResult, error) {
	text, err := document.ExtractText(doc)
	if err != nil {
		return nil, err
	}
	return a.Analyze(text, jobRaw)
}
