package match

// MatchResult is the outcome of one resume / job description comparison.
// Treat it as read-only once built.
type MatchResult struct {
	Score             float64               `json:"score"`
	MissingByCategory map[Category][]string `json:"missing_by_category"`
	FormattingNotes   []string              `json:"formatting_notes"`
	MatchedKeywords   []string              `json:"matched_keywords,omitempty"`
}

// Missing returns the missing keywords of one category
func (r *MatchResult) Missing(c Category) []string {
	return r.MissingByCategory[c]
}

// AllMissing flattens the buckets in category order
func (r *MatchResult) AllMissing() []string {
	var all []string
	for _, c := range Categories {
		all = append(all, r.MissingByCategory[c]...)
	}
	return all
}

// MissingCount returns the total number of missing keywords
func (r *MatchResult) MissingCount() int {
	n := 0
	for _, tokens := range r.MissingByCategory {
		n += len(tokens)
	}
	return n
}

// Clone returns a deep copy
func (r *MatchResult) Clone() *MatchResult {
	if r == nil {
		return nil
	}
	out := &MatchResult{
		Score:             r.Score,
		MissingByCategory: make(map[Category][]string, len(r.MissingByCategory)),
		FormattingNotes:   append([]string{}, r.FormattingNotes...),
		MatchedKeywords:   append([]string(nil), r.MatchedKeywords...),
	}
	for c, tokens := range r.MissingByCategory {
		out.MissingByCategory[c] = append([]string{}, tokens...)
	}
	return out
}
