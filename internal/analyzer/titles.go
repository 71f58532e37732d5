package analyzer

import (
	"sort"
	"strings"

	"github.com/vijay-prabhu/resumescan/internal/match"
)

// titleKeywords maps a resume keyword to the job titles it suggests
var titleKeywords = map[string][]string{
	"software":  {"Software Engineer", "Web Developer", "Backend Developer"},
	"data":      {"Data Analyst", "Data Scientist", "Business Intelligence Analyst"},
	"manager":   {"Project Manager", "Product Manager", "Operations Manager"},
	"marketing": {"Marketing Specialist", "Digital Marketing Manager"},
	"sales":     {"Sales Executive", "Account Manager"},
	"hr":        {"HR Manager", "Recruitment Specialist"},
	"designer":  {"UX/UI Designer", "Graphic Designer"},
}

// Recommendation text
const (
	RecommendAddSkills = "Consider adding the following skills to your resume: "
	RecommendAllSkills = "Great job! You have all the key skills required for this position."
)

// SuggestTitles returns job titles suggested by keywords in the resume text,
// de-duplicated and sorted. Keywords match as whole words, case-insensitively.
func SuggestTitles(resumeText string) []string {
	textLower := strings.ToLower(resumeText)

	seen := make(map[string]struct{})
	titles := []string{}
	for keyword, suggestions := range titleKeywords {
		if !containsWord(textLower, keyword) {
			continue
		}
		for _, title := range suggestions {
			if _, ok := seen[title]; ok {
				continue
			}
			seen[title] = struct{}{}
			titles = append(titles, title)
		}
	}

	sort.Strings(titles)
	return titles
}

// Recommendations turns a result into improvement suggestions: one line for
// missing skills followed by the formatting notes.
func Recommendations(r *match.MatchResult) []string {
	if r == nil {
		return nil
	}

	var recs []string
	if missing := r.AllMissing(); len(missing) > 0 {
		recs = append(recs, RecommendAddSkills+strings.Join(missing, ", "))
	} else {
		recs = append(recs, RecommendAllSkills)
	}
	recs = append(recs, r.FormattingNotes...)

	return recs
}

// containsWord checks if text contains the word (with word boundary awareness)
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}

	idx := strings.Index(text, word)
	if idx == -1 {
		return false
	}

	// This prevents "data" from matching "database"
	end := idx + len(word)
	if (idx > 0 && isWordChar(text[idx-1])) || (end < len(text) && isWordChar(text[end])) {
		return containsWord(text[idx+1:], word)
	}

	return true
}

// isWordChar returns true for alphanumeric characters
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
