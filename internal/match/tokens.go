package match

import (
	"sort"
	"strings"
)

// TokenSet is a set of distinct lowercase tokens
type TokenSet map[string]struct{}

// NewTokenSet collects the whitespace-separated tokens of text; duplicates collapse
func NewTokenSet(text string) TokenSet {
	fields := strings.Fields(text)
	set := make(TokenSet, len(fields))
	for _, f := range fields {
		set[strings.ToLower(f)] = struct{}{}
	}
	return set
}

// Has reports whether token is in the set
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in ascending order
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Difference returns the tokens of s not present in other, sorted
func (s TokenSet) Difference(other TokenSet) []string {
	out := []string{}
	for t := range s {
		if !other.Has(t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// Intersection returns the tokens present in both sets, sorted
func (s TokenSet) Intersection(other TokenSet) []string {
	out := []string{}
	for t := range s {
		if other.Has(t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// MissingKeywords returns job tokens not evidenced in the resume
func MissingKeywords(resumeNormalized, jobNormalized string) []string {
	return NewTokenSet(jobNormalized).Difference(NewTokenSet(resumeNormalized))
}

// MatchedKeywords returns job tokens the resume also contains
func MatchedKeywords(resumeNormalized, jobNormalized string) []string {
	return NewTokenSet(jobNormalized).Intersection(NewTokenSet(resumeNormalized))
}
