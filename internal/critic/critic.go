// Package critic inspects raw resume text for structural problems that an
// applicant tracking system or a recruiter skimming the page would notice.
package critic

import (
	"strings"
)

// Feedback emitted by Critique, in the order it is emitted
const (
	NoteMoreBullets = "Consider using more bullet points to make your experience easier to scan."
	NoteTooShort    = "Your resume seems too short. Consider adding more detail about your experience and skills."
	NoteTooLong     = "Your resume seems too long. Consider trimming it to the most relevant experience."
)

// bulletMarkers are the line prefixes counted as bullet points
var bulletMarkers = []string{"-", "•", "*"}

// Thresholds configures the formatting heuristics
type Thresholds struct {
	MinBullets int // Fewer bullet lines than this triggers NoteMoreBullets
	MinWords   int // Fewer words than this triggers NoteTooShort
	MaxWords   int // More words than this triggers NoteTooLong
}

// DefaultThresholds returns the stock heuristics
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinBullets: 5,
		MinWords:   250,
		MaxWords:   1000,
	}
}

// Stats holds the structural measurements of a resume
type Stats struct {
	Lines   int `json:"lines"`
	Bullets int `json:"bullets"`
	Words   int `json:"words"`
}

// Critic produces formatting feedback for raw resume text
type Critic struct {
	thresholds Thresholds
}

// New creates a Critic. Zero-valued thresholds fall back to the defaults.
func New(t Thresholds) *Critic {
	def := DefaultThresholds()
	if t.MinBullets <= 0 {
		t.MinBullets = def.MinBullets
	}
	if t.MinWords <= 0 {
		t.MinWords = def.MinWords
	}
	if t.MaxWords <= 0 {
		t.MaxWords = def.MaxWords
	}
	return &Critic{thresholds: t}
}

// Thresholds returns the thresholds in effect
func (c *Critic) Thresholds() Thresholds {
	return c.thresholds
}

// Measure counts lines, bullet lines and whitespace-delimited words
func Measure(raw string) Stats {
	var s Stats
	if raw == "" {
		return s
	}

	for _, line := range strings.Split(raw, "\n") {
		s.Lines++
		if isBullet(line) {
			s.Bullets++
		}
	}
	s.Words = len(strings.Fields(raw))

	return s
}

// Critique returns the formatting notes for raw resume text. The bullet note
// always precedes the length note, and at most one length note is emitted.
func (c *Critic) Critique(raw string) []string {
	stats := Measure(raw)
	notes := []string{}

	if stats.Bullets < c.thresholds.MinBullets {
		notes = append(notes, NoteMoreBullets)
	}

	switch {
	case stats.Words < c.thresholds.MinWords:
		notes = append(notes, NoteTooShort)
	case stats.Words > c.thresholds.MaxWords:
		notes = append(notes, NoteTooLong)
	}

	return notes
}

func isBullet(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}
