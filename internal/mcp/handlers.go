package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vijay-prabhu/resumescan/internal/analyzer"
	"github.com/vijay-prabhu/resumescan/internal/database"
	"github.com/vijay-prabhu/resumescan/internal/document"
	"github.com/vijay-prabhu/resumescan/internal/match"
	"github.com/vijay-prabhu/resumescan/internal/output"
	"github.com/vijay-prabhu/resumescan/internal/report"
)

var errHistoryDisabled = errors.New("analysis history is disabled")

func (s *Server) analyzeResume(ctx context.Context, in AnalyzeInput) (*AnalyzeOutput, error) {
	if strings.TrimSpace(in.JobDescription) == "" {
		return nil, errors.New("job_description is required")
	}

	source, text, err := s.resumeText(ctx, in.ResumePath, in.ResumeText)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.Analyze(text, in.JobDescription)
	if err != nil {
		return nil, err
	}

	recs := analyzer.Recommendations(result)
	out := &AnalyzeOutput{
		Score:             result.Score,
		MissingByCategory: missingByKey(result),
		MatchedKeywords:   append([]string{}, result.MatchedKeywords...),
		FormattingNotes:   result.FormattingNotes,
		Recommendations:   recs,
		Report: report.AssembleWithExtras(result, report.Extras{
			Recommendations: recs,
			Titles:          analyzer.SuggestTitles(text),
		}),
	}

	if s.db != nil {
		record := database.NewAnalysis(source, text, in.JobDescription, result)
		if err := s.db.CreateAnalysis(ctx, record); err != nil {
			// history is best effort; the analysis itself succeeded
			slog.Warn("failed to save analysis", "error", err)
		} else {
			out.AnalysisID = record.ID
		}
	}

	return out, nil
}

func (s *Server) extractResumeText(ctx context.Context, in ExtractInput) (*ExtractOutput, error) {
	if strings.TrimSpace(in.Path) == "" {
		return nil, errors.New("path is required")
	}

	doc, err := s.loader.Load(ctx, in.Path)
	if err != nil {
		return nil, err
	}
	text, err := document.ExtractText(doc)
	if err != nil {
		return nil, err
	}

	return &ExtractOutput{
		Source: doc.Source,
		Pages:  doc.PageCount(),
		Words:  len(strings.Fields(text)),
		Text:   text,
	}, nil
}

func (s *Server) suggestJobTitles(ctx context.Context, in TitlesInput) (*TitlesOutput, error) {
	_, text, err := s.resumeText(ctx, in.ResumePath, in.ResumeText)
	if err != nil {
		return nil, err
	}
	return &TitlesOutput{Titles: analyzer.SuggestTitles(text)}, nil
}

func (s *Server) listAnalyses(ctx context.Context, in ListInput) (*ListOutput, error) {
	if s.db == nil {
		return nil, errHistoryDisabled
	}

	opts := database.ListOptions{Limit: defaultListLimit}
	if in.Limit > 0 {
		opts.Limit = in.Limit
	}
	if in.SinceDays > 0 {
		since := time.Now().AddDate(0, 0, -in.SinceDays)
		opts.Since = &since
	}
	if in.MinScore > 0 {
		opts.MinScore = &in.MinScore
	}

	analyses, err := s.db.ListAnalyses(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	out := &ListOutput{Analyses: make([]AnalysisSummary, 0, len(analyses))}
	for _, a := range analyses {
		out.Analyses = append(out.Analyses, AnalysisSummary{
			ID:           a.ID,
			ResumeSource: a.ResumeSource,
			JobExcerpt:   a.JobExcerpt,
			Score:        a.Score,
			MissingCount: a.MissingCount,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *Server) historySummary(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", errHistoryDisabled
	}

	stats, err := s.db.GetStats(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}

	var buf bytes.Buffer
	if err := output.TableTo(&buf, stats); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// resumeText loads the resume from path, or falls back to inline text
func (s *Server) resumeText(ctx context.Context, path, text string) (source, resume string, err error) {
	if strings.TrimSpace(path) == "" {
		if strings.TrimSpace(text) == "" {
			return "", "", errors.New("resume_path or resume_text is required")
		}
		return "inline", text, nil
	}

	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return "", "", err
	}
	resume, err = document.ExtractText(doc)
	if err != nil {
		return "", "", err
	}
	return path, resume, nil
}

func missingByKey(r *match.MatchResult) map[string][]string {
	out := make(map[string][]string, len(match.Categories))
	for _, c := range match.Categories {
		out[c.Key()] = append([]string{}, r.Missing(c)...)
	}
	return out
}
