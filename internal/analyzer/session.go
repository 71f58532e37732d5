package analyzer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vijay-prabhu/resumescan/internal/document"
	"github.com/vijay-prabhu/resumescan/internal/match"
	"github.com/vijay-prabhu/resumescan/internal/report"
)

// ErrNoResume is returned when a session is analyzed before a resume is set
var ErrNoResume = fmt.Errorf("%w: no resume loaded", ErrInput)

// ErrNoResult is returned when a report is requested before any analysis
var ErrNoResult = errors.New("no analysis has been run")

// Session holds the current resume, job description and last result for one
// user. Setting either input invalidates the last result.
type Session struct {
	mu         sync.Mutex
	analyzer   *Analyzer
	resume     *document.Document
	resumeText string
	job        string
	last       *match.MatchResult
}

// NewSession creates an empty session
func NewSession(a *Analyzer) *Session {
	return &Session{analyzer: a}
}

// SetResume loads a new resume document and clears the previous result
func (s *Session) SetResume(doc *document.Document) error {
	text, err := document.ExtractText(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.resume = doc
	s.resumeText = text
	s.last = nil
	return nil
}

// SetJobDescription replaces the job description and clears the previous result
func (s *Session) SetJobDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.job = text
	s.last = nil
}

// Analyze runs the current resume against the current job description
func (s *Session) Analyze() (*match.MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resume == nil {
		return nil, ErrNoResume
	}

	result, err := s.analyzer.Analyze(s.resumeText, s.job)
	if err != nil {
		return nil, err
	}

	s.last = result
	return result.Clone(), nil
}

// Last returns a copy of the most recent result, or nil
func (s *Session) Last() *match.MatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last.Clone()
}

// ResumeText returns the extracted resume text ("what the ATS sees")
func (s *Session) ResumeText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeText
}

// HasResume reports whether a resume has been loaded
func (s *Session) HasResume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume != nil
}

// Report renders the last result with recommendations and title suggestions
func (s *Session) Report() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return "", ErrNoResult
	}

	return report.AssembleWithExtras(s.last, report.Extras{
		Recommendations: Recommendations(s.last),
		Titles:          SuggestTitles(s.resumeText),
	}), nil
}
