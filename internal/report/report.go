// Package report renders a match result as a plain text report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vijay-prabhu/resumescan/internal/match"
)

const (
	// NoneMissing marks a category with no missing keywords
	NoneMissing = "none missing"

	// NoFormattingIssues replaces the notes section when there are no notes
	NoFormattingIssues = "No formatting issues found."
)

// Extras are optional sections appended after the core report
type Extras struct {
	Recommendations []string
	Titles          []string
}

// Assemble formats a result as a report
func Assemble(r *match.MatchResult) string {
	var sb strings.Builder
	write(&sb, r)
	return sb.String()
}

// AssembleWithExtras formats a result followed by recommendations and
// suggested job titles. Empty extras are omitted.
func AssembleWithExtras(r *match.MatchResult, extras Extras) string {
	var sb strings.Builder
	write(&sb, r)

	if len(extras.Recommendations) > 0 {
		fmt.Fprintln(&sb)
		fmt.Fprintln(&sb, "Recommendations:")
		for _, rec := range extras.Recommendations {
			fmt.Fprintf(&sb, "- %s\n", rec)
		}
	}

	if len(extras.Titles) > 0 {
		fmt.Fprintln(&sb)
		fmt.Fprintln(&sb, "Suggested Job Titles:")
		for _, title := range extras.Titles {
			fmt.Fprintf(&sb, "- %s\n", title)
		}
	}

	return sb.String()
}

func write(w io.Writer, r *match.MatchResult) {
	if r == nil {
		r = &match.MatchResult{}
	}

	fmt.Fprintf(w, "Match Score: %.2f%%\n", r.Score)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Missing Keywords:")
	for _, c := range match.Categories {
		fmt.Fprintf(w, "%s: %s\n", c, joinOrNone(r.Missing(c)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formatting Feedback:")
	if len(r.FormattingNotes) == 0 {
		fmt.Fprintln(w, NoFormattingIssues)
		return
	}
	for _, note := range r.FormattingNotes {
		fmt.Fprintf(w, "- %s\n", note)
	}
}

func joinOrNone(tokens []string) string {
	if len(tokens) == 0 {
		return NoneMissing
	}
	return strings.Join(tokens, ", ")
}
