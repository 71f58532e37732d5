package document

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a document reader
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// formFeed separates pages in plain text and in flattened DOCX content
const formFeed = "\f"

var (
	docxPageBreakRe = regexp.MustCompile(`<w:br\b[^>]*w:type="page"[^>]*/>`)
	docxLineBreakRe = regexp.MustCompile(`<w:(br|cr)\b[^>]*/>`)
	docxTabRe       = regexp.MustCompile(`<w:tab\b[^>]*/>`)
	xmlTagRe        = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat picks a reader from the file extension, falling back to content sniffing
func DetectFormat(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".txt", ".text", ".md":
		return FormatText, nil
	}

	mime := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(mime, "application/pdf"):
		return FormatPDF, nil
	case strings.HasPrefix(mime, "text/html"):
		return FormatHTML, nil
	case strings.HasPrefix(mime, "text/plain"):
		return FormatText, nil
	case strings.HasPrefix(mime, "application/zip") && bytes.Contains(data, []byte("word/document.xml")):
		return FormatDOCX, nil
	}

	return "", fmt.Errorf("%w: %s (%s)", ErrUnsupported, name, mime)
}

// Parse converts raw file bytes into a Document
func Parse(name string, data []byte) (*Document, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: %s has no content", ErrInput, name)
	}

	format, err := DetectFormat(name, data)
	if err != nil {
		return nil, err
	}

	var pages []string
	switch format {
	case FormatPDF:
		pages, err = readPDF(data)
	case FormatDOCX:
		pages, err = readDOCX(data)
	case FormatHTML:
		pages, err = readHTML(data)
	default:
		pages, err = readText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInput, name, err)
	}

	slog.Debug("document parsed",
		slog.String("source", name),
		slog.String("format", string(format)),
		slog.Int("pages", len(pages)))

	return New(name, pages...), nil
}

// readPDF extracts plain text page by page. Pages that fail to decode stay
// in place as empty strings so page numbering is preserved.
func readPDF(data []byte) (pages []string, err error) {
	// The PDF parser panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Debug("pdf page skipped", slog.Int("page", i), slog.Any("error", err))
			pages = append(pages, "")
			continue
		}
		// each text object starts on a new line
		pages = append(pages, strings.TrimSpace(text))
	}

	return pages, nil
}

// readDOCX flattens document.xml into text, splitting on explicit page breaks
func readDOCX(data []byte) ([]string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	return strings.Split(flattenDocxXML(content), formFeed), nil
}

func flattenDocxXML(content string) string {
	content = docxPageBreakRe.ReplaceAllString(content, formFeed)
	content = docxLineBreakRe.ReplaceAllString(content, "\n")
	content = docxTabRe.ReplaceAllString(content, "\t")
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// readHTML converts HTML to markdown text; list items keep their "- " markers
func readHTML(data []byte) ([]string, error) {
	markdown, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to convert html: %w", err)
	}
	return []string{markdown}, nil
}

func readText(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, []byte("�"))
	}
	return strings.Split(string(data), formFeed), nil
}
