// Package nlp turns free text into normalized lemma sequences.
//
// The Normalizer lowercases input, segments it into Unicode words (UAX #29),
// drops stop-words and anything that is not purely alphabetic, and reduces each
// surviving token to its lemma. The lemmatization model is supplied by the
// caller and only read, so one Normalizer can serve concurrent analyses.
package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// Lemmatizer reduces a lowercase word to its dictionary base form.
// Implementations must be safe for concurrent read-only use.
type Lemmatizer interface {
	Lemma(word string) string
}

// NewEnglishLemmatizer loads the English lemma dictionary. Loading takes a
// moment and allocates the full table, so do it once per process.
func NewEnglishLemmatizer() (Lemmatizer, error) {
	model, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemma dictionary: %w", err)
	}
	return newEnglishLemmatizer(model), nil
}

// keptWords are returned as-is. The dictionary treats them as inflections
// ("pandas" -> "panda", "aws" -> "aw") but in a job posting they are names.
var keptWords = map[string]struct{}{
	"analyses":    {},
	"analysis":    {},
	"aws":         {},
	"css":         {},
	"devops":      {},
	"ios":         {},
	"jenkins":     {},
	"kubernetes":  {},
	"pandas":      {},
	"postgres":    {},
	"programming": {},
	"redis":       {},
	"sas":         {},
	"software":    {},
	"technical":   {},
}

// skillStems must survive lemmatization; keyword categories are matched on them
var skillStems = []string{"programming", "software", "technical", "analysis", "problem"}

// englishLemmatizer guards a dictionary model against rewriting skill names
type englishLemmatizer struct {
	model Lemmatizer
}

func newEnglishLemmatizer(model Lemmatizer) *englishLemmatizer {
	return &englishLemmatizer{model: model}
}

// Lemma implements Lemmatizer
func (e *englishLemmatizer) Lemma(word string) string {
	if _, ok := keptWords[word]; ok {
		return word
	}
	lemma := e.model.Lemma(word)
	for _, stem := range skillStems {
		if strings.Contains(word, stem) && !strings.Contains(lemma, stem) {
			return word
		}
	}
	return lemma
}

// Normalizer converts raw text into space-joined lemmas
type Normalizer struct {
	lemmatizer Lemmatizer
}

// NewNormalizer creates a Normalizer around a lemmatization model
func NewNormalizer(l Lemmatizer) *Normalizer {
	return &Normalizer{lemmatizer: l}
}

// Normalize returns the lemmas of text's content words joined by single spaces.
// Output is deterministic for a given model; empty input yields "".
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the lemmas of text's content words in their original order
func (n *Normalizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}

	// NFKC folds PDF ligatures and full-width forms
	text = norm.NFKC.String(text)

	var lemmas []string
	segments := words.FromString(text)
	for segments.Next() {
		surface := segments.Value()
		token := strings.ToLower(surface)
		if !isAlpha(token) || IsStopWord(token) {
			continue
		}
		if isAcronym(surface) {
			lemmas = append(lemmas, token)
			continue
		}
		lemmas = append(lemmas, n.lemma(token))
	}
	return lemmas
}

// isAcronym reports whether s is two or more letters, all upper case (AWS, SQL)
func isAcronym(s string) bool {
	n := 0
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
		n++
	}
	return n >= 2
}

func (n *Normalizer) lemma(token string) string {
	if n.lemmatizer == nil {
		return token
	}
	lemma := strings.ToLower(n.lemmatizer.Lemma(token))
	if lemma == "" || strings.ContainsRune(lemma, ' ') {
		return token
	}
	return lemma
}

// isAlpha reports whether s is non-empty and made only of letters
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// MapLemmatizer is a fixed lemma table. Words missing from the table are
// their own lemma.
type MapLemmatizer map[string]string

// Lemma implements Lemmatizer
func (m MapLemmatizer) Lemma(word string) string {
	if lemma, ok := m[word]; ok {
		return lemma
	}
	return word
}
