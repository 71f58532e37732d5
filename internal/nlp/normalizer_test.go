package nlp

import (
	"strings"
	"sync"
	"testing"
)

var testLemmas = MapLemmatizer{
	"engineers": "engineer",
	"running":   "run",
	"tests":     "test",
	"skills":    "skill",
	"skilled":   "skill",
	"built":     "build",
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(testLemmas)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "lowercase, stop-words removed, lemmatized",
			input:    "The Engineers were running tests.",
			expected: "engineer run test",
		},
		{
			name:     "punctuation and numbers dropped",
			input:    "Python 3, SQL (2019-2024) & node.js!",
			expected: "python sql",
		},
		{
			name:     "hyphenated words split",
			input:    "problem-solving",
			expected: "problem solving",
		},
		{
			name:     "ligatures folded",
			input:    "Oﬃce ﬁnance",
			expected: "office finance",
		},
		{
			name:     "order preserved with duplicates",
			input:    "skills data skills",
			expected: "skill data skill",
		},
		{
			name:     "only stop-words",
			input:    "and the of to",
			expected: "",
		},
		{
			name:     "acronyms skip lemmatization",
			input:    "TESTS and tests",
			expected: "tests test",
		},
		{
			name:     "non-latin letters kept",
			input:    "Müller café",
			expected: "müller café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	n := NewNormalizer(testLemmas)
	input := "Experienced engineers built scalable services; skilled in Go, Python and data analysis."

	first := n.Normalize(input)
	for i := 0; i < 10; i++ {
		if got := n.Normalize(input); got != first {
			t.Fatalf("run %d: Normalize() = %q, want %q", i, got, first)
		}
	}
}

func TestNormalize_ConcurrentUse(t *testing.T) {
	n := NewNormalizer(testLemmas)
	input := "Engineers running tests"
	want := n.Normalize(input)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := n.Normalize(input); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_NilLemmatizer(t *testing.T) {
	n := NewNormalizer(nil)
	if got := n.Normalize("Running tests"); got != "running tests" {
		t.Errorf("Normalize() = %q, want %q", got, "running tests")
	}
}

func TestNormalize_OutputIsSingleSpaced(t *testing.T) {
	n := NewNormalizer(testLemmas)
	got := n.Normalize("  lots\n\nof\t\twhitespace   between   words ")
	if strings.Contains(got, "  ") || strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Errorf("Normalize() = %q, want single-spaced output", got)
	}
}

func TestIsStopWord(t *testing.T) {
	tests := []struct {
		token    string
		expected bool
	}{
		{"the", true},
		{"and", true},
		{"with", true},
		{"python", false},
		{"software", false},
		{"The", false}, // callers lowercase first
	}

	for _, tt := range tests {
		if got := IsStopWord(tt.token); got != tt.expected {
			t.Errorf("IsStopWord(%q) = %v, want %v", tt.token, got, tt.expected)
		}
	}
}

func TestEnglishLemmatizer(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the full english dictionary")
	}

	l, err := NewEnglishLemmatizer()
	if err != nil {
		t.Fatalf("NewEnglishLemmatizer() error: %v", err)
	}

	n := NewNormalizer(l)
	if got := n.Normalize("skills"); got != "skill" {
		t.Errorf("Normalize(%q) = %q, want %q", "skills", got, "skill")
	}
	if got := n.Normalize("sql"); got != "sql" {
		t.Errorf("Normalize(%q) = %q, want %q", "sql", got, "sql")
	}
}

func TestEnglishLemmatizer_KeepsSkillNames(t *testing.T) {
	// stands in for dictionary entries that rewrite skill names
	model := MapLemmatizer{
		"programming":    "programme",
		"analyses":       "analyse",
		"pandas":         "panda",
		"aws":            "aw",
		"softwares":      "softwar",
		"writing":        "write",
		"skills":         "skill",
		"problemsolving": "problemsolve",
	}
	l := newEnglishLemmatizer(model)

	tests := []struct {
		word     string
		expected string
	}{
		{"programming", "programming"},
		{"analyses", "analyses"},
		{"pandas", "pandas"},
		{"aws", "aws"},
		{"softwares", "softwares"},
		{"problemsolving", "problemsolve"},
		{"writing", "write"},
		{"skills", "skill"},
		{"python", "python"},
	}

	for _, tt := range tests {
		if got := l.Lemma(tt.word); got != tt.expected {
			t.Errorf("Lemma(%q) = %q, want %q", tt.word, got, tt.expected)
		}
	}
}

func TestEnglishLemmatizer_RealModelKeepsSkillNames(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the full english dictionary")
	}

	l, err := NewEnglishLemmatizer()
	if err != nil {
		t.Fatalf("NewEnglishLemmatizer() error: %v", err)
	}

	n := NewNormalizer(l)
	got := n.Normalize("Programming, technical writing, software, analysis, analyses, AWS, pandas")
	for _, want := range []string{"programming", "technical", "software", "analysis", "analyses", "aws", "pandas"} {
		if !strings.Contains(" "+got+" ", " "+want+" ") {
			t.Errorf("Normalize() = %q, missing %q", got, want)
		}
	}
}
