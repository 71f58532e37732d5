package match

import (
	"fmt"
	"strings"
)

// Category is a skill bucket for a missing keyword
type Category int

const (
	TechnicalSkills Category = iota
	AnalyticalSkills
	SoftSkills
)

// Categories lists every category in display order
var Categories = []Category{TechnicalSkills, AnalyticalSkills, SoftSkills}

// String returns the display name
func (c Category) String() string {
	switch c {
	case TechnicalSkills:
		return "Technical Skills"
	case AnalyticalSkills:
		return "Analytical Skills"
	case SoftSkills:
		return "Soft Skills"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Key returns the stable identifier used in JSON and storage
func (c Category) Key() string {
	switch c {
	case TechnicalSkills:
		return "technical"
	case AnalyticalSkills:
		return "analytical"
	case SoftSkills:
		return "soft"
	default:
		return ""
	}
}

// ParseCategory converts a key back into a Category
func ParseCategory(key string) (Category, error) {
	for _, c := range Categories {
		if c.Key() == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category: %q", key)
}

// MarshalText implements encoding.TextMarshaler so categories work as JSON map keys
func (c Category) MarshalText() ([]byte, error) {
	key := c.Key()
	if key == "" {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(key), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// rule assigns a category to tokens containing any of its substrings
type rule struct {
	substrings []string
	category   Category
}

func (r rule) matches(token string) bool {
	for _, s := range r.substrings {
		if strings.Contains(token, s) {
			return true
		}
	}
	return false
}

// rules are evaluated in order; the first match wins
var rules = []rule{
	{substrings: []string{"programming", "software", "technical"}, category: TechnicalSkills},
	{substrings: []string{"analysis", "problem-solving"}, category: AnalyticalSkills},
}

// fallbackCategory receives tokens no rule matches
const fallbackCategory = SoftSkills

// Classify assigns exactly one category to a token
func Classify(token string) Category {
	for _, r := range rules {
		if r.matches(token) {
			return r.category
		}
	}
	return fallbackCategory
}

// Categorize buckets tokens by Classify. Every category is present in the
// result and each bucket keeps the input order.
func Categorize(tokens []string) map[Category][]string {
	buckets := make(map[Category][]string, len(Categories))
	for _, c := range Categories {
		buckets[c] = []string{}
	}
	for _, token := range tokens {
		c := Classify(token)
		buckets[c] = append(buckets[c], token)
	}
	return buckets
}
