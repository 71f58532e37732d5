package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInput marks a missing or unreadable document, or missing mandatory text.
// Callers recover by asking for new input.
var ErrInput = errors.New("invalid input")

// ErrUnsupported is returned for document formats no reader handles.
// It wraps ErrInput.
var ErrUnsupported = fmt.Errorf("%w: unsupported document type", ErrInput)

// Document is an ordered sequence of page texts
type Document struct {
	Source string   `json:"source"`
	Pages  []string `json:"pages"`
}

// New creates a document from page texts in order
func New(source string, pages ...string) *Document {
	p := make([]string, len(pages))
	copy(p, pages)
	return &Document{Source: source, Pages: p}
}

// PageCount returns the number of pages, including empty ones
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// ExtractText joins the non-empty pages in order, separated by a newline.
// A nil document is an input error; a document without any text yields "".
func ExtractText(d *Document) (string, error) {
	if d == nil {
		return "", fmt.Errorf("%w: no document provided", ErrInput)
	}

	var b strings.Builder
	for _, page := range d.Pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(page)
	}
	return b.String(), nil
}
