package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/resumescan/internal/database"
	"github.com/vijay-prabhu/resumescan/internal/match"
	"github.com/vijay-prabhu/resumescan/internal/report"
)

// Table writes data as a formatted table to stdout
func Table(data any) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *match.MatchResult:
		return resultTable(w, v)
	case []database.Analysis:
		return analysesTable(w, v)
	case *database.Analysis:
		return analysisDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case []string:
		return listLines(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

// TextTo writes the plain text report for results and falls back to tables
func TextTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *match.MatchResult:
		_, err := io.WriteString(w, report.Assemble(v))
		return err
	case *database.Analysis:
		_, err := io.WriteString(w, report.Assemble(v.ToResult()))
		return err
	default:
		return TableTo(w, data)
	}
}

func resultTable(w io.Writer, r *match.MatchResult) error {
	fmt.Fprintf(w, "Match Score: %.2f%%\n\n", r.Score)
	return ResultDetails(w, r)
}

// ResultDetails writes everything in a result except the score: missing
// keywords per category, matched keywords and formatting notes
func ResultDetails(w io.Writer, r *match.MatchResult) error {
	if err := categoryTable(w, r.MissingByCategory); err != nil {
		return err
	}

	if len(r.MatchedKeywords) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Matched: %s\n", strings.Join(r.MatchedKeywords, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formatting Feedback:")
	if len(r.FormattingNotes) == 0 {
		fmt.Fprintf(w, "  %s\n", report.NoFormattingIssues)
		return nil
	}
	for _, note := range r.FormattingNotes {
		fmt.Fprintf(w, "  - %s\n", note)
	}
	return nil
}

func categoryTable(w io.Writer, missing map[match.Category][]string) error {
	rows := make([][]string, 0, len(match.Categories))
	for _, c := range match.Categories {
		tokens := missing[c]
		joined := report.NoneMissing
		if len(tokens) > 0 {
			joined = strings.Join(tokens, ", ")
		}
		rows = append(rows, []string{c.String(), fmt.Sprintf("%d", len(tokens)), joined})
	}

	table := tablewriter.NewWriter(w)
	table.Header("CATEGORY", "COUNT", "MISSING KEYWORDS")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func analysesTable(w io.Writer, analyses []database.Analysis) error {
	if len(analyses) == 0 {
		fmt.Fprintln(w, "No analyses found.")
		return nil
	}

	rows := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, []string{
			shortID(a.ID),
			fmt.Sprintf("%.2f", a.Score),
			fmt.Sprintf("%d", a.MissingCount),
			truncate(a.ResumeSource, 24),
			truncate(a.JobExcerpt, 40),
			a.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "SCORE", "MISSING", "RESUME", "JOB", "WHEN")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func analysisDetail(w io.Writer, a *database.Analysis) error {
	fmt.Fprintf(w, "ID:          %s\n", a.ID)
	fmt.Fprintf(w, "Resume:      %s\n", a.ResumeSource)
	fmt.Fprintf(w, "Job:         %s\n", a.JobExcerpt)
	fmt.Fprintf(w, "Created:     %s\n", a.CreatedAt.Local().Format("Jan 02, 2006 15:04"))
	fmt.Fprintln(w)

	return resultTable(w, a.ToResult())
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Analysis History")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total analyses:         %d\n", s.TotalAnalyses)
	fmt.Fprintf(w, "Distinct resumes:       %d\n", s.DistinctResume)
	fmt.Fprintf(w, "Distinct jobs:          %d\n", s.DistinctJobs)

	if s.TotalAnalyses == 0 {
		return nil
	}

	fmt.Fprintf(w, "Average score:          %.2f\n", s.AvgScore)
	fmt.Fprintf(w, "Best score:             %.2f\n", s.MaxScore)
	fmt.Fprintf(w, "Worst score:            %.2f\n", s.MinScore)
	if s.LastAnalysisAt != nil {
		fmt.Fprintf(w, "Last analysis:          %s\n", s.LastAnalysisAt.Local().Format("Jan 02, 2006 15:04"))
	}

	if len(s.TopMissing) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Most frequently missing:")
	rows := make([][]string, 0, len(s.TopMissing))
	for _, kc := range s.TopMissing {
		rows = append(rows, []string{kc.Keyword, match.Classify(kc.Keyword).String(), fmt.Sprintf("%d", kc.Count)})
	}

	table := tablewriter.NewWriter(w)
	table.Header("KEYWORD", "CATEGORY", "TIMES")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func listLines(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		fmt.Fprintln(w, "None.")
		return nil
	}
	for _, line := range lines {
		fmt.Fprintf(w, "- %s\n", line)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
