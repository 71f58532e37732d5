package database

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vijay-prabhu/resumescan/internal/match"
)

// excerptLen is the number of runes of the job description kept for display
const excerptLen = 120

// Analysis is a recorded resume / job description comparison
type Analysis struct {
	ID           string                      `json:"id"`
	ResumeSource string                      `json:"resume_source"`
	ResumeHash   string                      `json:"resume_hash"`
	JobHash      string                      `json:"job_hash"`
	JobExcerpt   string                      `json:"job_excerpt"`
	Score        float64                     `json:"score"`
	MissingCount int                         `json:"missing_count"`
	Missing      map[match.Category][]string `json:"missing_by_category"`
	Notes        []string                    `json:"formatting_notes"`
	CreatedAt    time.Time                   `json:"created_at"`
}

// NewAnalysis builds a history record from a result and its inputs
func NewAnalysis(resumeSource, resumeText, jobText string, r *match.MatchResult) *Analysis {
	return &Analysis{
		ResumeSource: resumeSource,
		ResumeHash:   ContentHash(resumeText),
		JobHash:      ContentHash(jobText),
		JobExcerpt:   Excerpt(jobText, excerptLen),
		Score:        r.Score,
		MissingCount: r.MissingCount(),
		Missing:      r.MissingByCategory,
		Notes:        r.FormattingNotes,
	}
}

// ToResult rebuilds the match result stored in the record
func (a *Analysis) ToResult() *match.MatchResult {
	r := &match.MatchResult{
		Score:             a.Score,
		MissingByCategory: match.Categorize(nil),
		FormattingNotes:   append([]string{}, a.Notes...),
	}
	for c, tokens := range a.Missing {
		r.MissingByCategory[c] = append([]string{}, tokens...)
	}
	return r
}

// ContentHash returns the hex SHA-256 of text
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Excerpt collapses whitespace and truncates text to n runes
func Excerpt(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n-3]) + "..."
}

// KeywordCount is how often a keyword was missing across analyses
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Stats represents aggregate statistics over the history
type Stats struct {
	TotalAnalyses  int            `json:"total_analyses"`
	DistinctResume int            `json:"distinct_resumes"`
	DistinctJobs   int            `json:"distinct_jobs"`
	AvgScore       float64        `json:"avg_score"`
	MaxScore       float64        `json:"max_score"`
	MinScore       float64        `json:"min_score"`
	LastAnalysisAt *time.Time     `json:"last_analysis_at,omitempty"`
	TopMissing     []KeywordCount `json:"top_missing"`
}

// ListOptions contains options for listing analyses
type ListOptions struct {
	Since    *time.Time
	MinScore *float64
	Limit    int
	Offset   int
}
