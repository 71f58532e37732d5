package document

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		doc      *Document
		expected string
	}{
		{
			name:     "pages joined in order",
			doc:      New("resume.pdf", "first page", "second page"),
			expected: "first page\nsecond page",
		},
		{
			name:     "empty pages skipped",
			doc:      New("resume.pdf", "first", "", "   ", "last"),
			expected: "first\nlast",
		},
		{
			name:     "all pages empty",
			doc:      New("scan.pdf", "", "\n", ""),
			expected: "",
		},
		{
			name:     "no pages",
			doc:      New("empty.pdf"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.doc)
			if err != nil {
				t.Fatalf("ExtractText() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ExtractText() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractText_NilDocument(t *testing.T) {
	_, err := ExtractText(nil)
	if !errors.Is(err, ErrInput) {
		t.Errorf("ExtractText(nil) error = %v, want ErrInput", err)
	}
}

func TestNew_CopiesPages(t *testing.T) {
	pages := []string{"a", "b"}
	doc := New("x.txt", pages...)
	pages[0] = "changed"

	if doc.Pages[0] != "a" {
		t.Errorf("Pages[0] = %q, want %q", doc.Pages[0], "a")
	}
	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     []byte
		expected Format
		wantErr  bool
	}{
		{name: "pdf extension", file: "cv.PDF", expected: FormatPDF},
		{name: "docx extension", file: "cv.docx", expected: FormatDOCX},
		{name: "html extension", file: "job.htm", expected: FormatHTML},
		{name: "markdown is text", file: "job.md", expected: FormatText},
		{name: "sniffed pdf", file: "upload", data: []byte("%PDF-1.7\n..."), expected: FormatPDF},
		{name: "sniffed html", file: "upload", data: []byte("<!DOCTYPE html><html><body>hi</body></html>"), expected: FormatHTML},
		{name: "sniffed text", file: "upload", data: []byte("plain resume text"), expected: FormatText},
		{name: "binary rejected", file: "photo.png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.file, tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Errorf("DetectFormat() error = %v, want ErrUnsupported", err)
				}
				if !errors.Is(err, ErrInput) {
					t.Errorf("ErrUnsupported should wrap ErrInput")
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParse_TextPages(t *testing.T) {
	doc, err := Parse("resume.txt", []byte("page one\fpage two\f"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if doc.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", doc.PageCount())
	}

	text, _ := ExtractText(doc)
	if text != "page one\npage two" {
		t.Errorf("ExtractText() = %q", text)
	}
}

func TestParse_HTMLKeepsListMarkers(t *testing.T) {
	html := `<html><body><h1>Engineer</h1><ul><li>Go</li><li>SQL</li></ul></body></html>`
	doc, err := Parse("job.html", []byte(html))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	text, _ := ExtractText(doc)
	if !strings.Contains(text, "- Go") {
		t.Errorf("expected markdown bullet in %q", text)
	}
	if strings.Contains(text, "<li>") {
		t.Errorf("expected tags stripped, got %q", text)
	}
}

func TestParse_CorruptPDF(t *testing.T) {
	_, err := Parse("broken.pdf", []byte("%PDF-1.4 this is not really a pdf"))
	if !errors.Is(err, ErrInput) {
		t.Errorf("Parse() error = %v, want ErrInput", err)
	}
}

func TestParse_PDF(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "three_pages.pdf"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	doc, err := Parse("resume.pdf", data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []string{"First page", "", "Third page"}
	if len(doc.Pages) != len(want) {
		t.Fatalf("expected %d pages, got %d: %q", len(want), len(doc.Pages), doc.Pages)
	}
	for i := range want {
		if doc.Pages[i] != want[i] {
			t.Errorf("page %d = %q, want %q", i+1, doc.Pages[i], want[i])
		}
	}

	text, err := ExtractText(doc)
	if err != nil {
		t.Fatalf("ExtractText() error: %v", err)
	}
	if text != "First page\nThird page" {
		t.Errorf("ExtractText() = %q, want %q", text, "First page\nThird page")
	}
}

// buildDocx writes a minimal .docx archive around body
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
			body + `</w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestParse_DOCX(t *testing.T) {
	data := buildDocx(t, `<w:body>`+
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>- Built APIs in Go</w:t></w:r></w:p>`+
		`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`+
		`<w:p><w:r><w:t>Education</w:t></w:r></w:p>`+
		`</w:body>`)

	doc, err := Parse("resume.docx", data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d: %q", len(doc.Pages), doc.Pages)
	}
	if got := strings.TrimSpace(doc.Pages[0]); got != "Jane Doe\n- Built APIs in Go" {
		t.Errorf("page one = %q", got)
	}
	if got := strings.TrimSpace(doc.Pages[1]); got != "Education" {
		t.Errorf("page two = %q", got)
	}
}

func TestParse_DOCXMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("word/styles.xml"); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	_, err := Parse("resume.docx", buf.Bytes())
	if !errors.Is(err, ErrInput) {
		t.Errorf("Parse() error = %v, want ErrInput", err)
	}
}

func TestFlattenDocxXML(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>R&amp;D</w:t><w:tab/><w:t>Lead</w:t></w:r></w:p>` +
		`<w:p><w:r><w:br w:type="page"/></w:r></w:p>` +
		`<w:p><w:r><w:t>Page two</w:t></w:r></w:p></w:body>`

	got := flattenDocxXML(xml)
	pages := strings.Split(got, formFeed)

	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d: %q", len(pages), got)
	}
	if !strings.Contains(pages[0], "Jane Doe\nR&D\tLead\n") {
		t.Errorf("page one = %q", pages[0])
	}
	if strings.TrimSpace(pages[1]) != "Page two" {
		t.Errorf("page two = %q", pages[1])
	}
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"s3://resumes/2024/jane.pdf", "resumes", "2024/jane.pdf", false},
		{"s3://resumes/jane.pdf", "resumes", "jane.pdf", false},
		{"s3://resumes", "", "", true},
		{"s3:///jane.pdf", "", "", true},
		{"s3://resumes/folder/", "", "", true},
		{"/local/jane.pdf", "", "", true},
	}

	for _, tt := range tests {
		bucket, key, err := ParseS3URI(tt.uri)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseS3URI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			continue
		}
		if bucket != tt.wantBucket || key != tt.wantKey {
			t.Errorf("ParseS3URI(%q) = (%q, %q), want (%q, %q)", tt.uri, bucket, key, tt.wantBucket, tt.wantKey)
		}
	}
}

type fakeFetcher struct {
	objects map[string][]byte
	calls   int
}

func (f *fakeFetcher) Fetch(ctx context.Context, bucket, key string, maxBytes int64) ([]byte, error) {
	f.calls++
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return data, nil
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(resumePath, []byte("- Built APIs in Go"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	fetcher := &fakeFetcher{objects: map[string][]byte{
		"resumes/jane.txt": []byte("Jane Doe\nSoftware engineer"),
	}}
	loader := NewLoader(WithFetcher(fetcher))
	ctx := context.Background()

	t.Run("local file", func(t *testing.T) {
		doc, err := loader.Load(ctx, resumePath)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if doc.Source != resumePath {
			t.Errorf("Source = %q, want %q", doc.Source, resumePath)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(ctx, filepath.Join(dir, "nope.pdf"))
		if !errors.Is(err, ErrInput) {
			t.Errorf("Load() error = %v, want ErrInput", err)
		}
	})

	t.Run("blank location", func(t *testing.T) {
		_, err := loader.Load(ctx, "  ")
		if !errors.Is(err, ErrInput) {
			t.Errorf("Load() error = %v, want ErrInput", err)
		}
	})

	t.Run("s3 object", func(t *testing.T) {
		doc, err := loader.Load(ctx, "s3://resumes/jane.txt")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		text, _ := ExtractText(doc)
		if !strings.Contains(text, "Software engineer") {
			t.Errorf("unexpected text %q", text)
		}
	})

	t.Run("s3 missing object", func(t *testing.T) {
		_, err := loader.Load(ctx, "s3://resumes/ghost.txt")
		if !errors.Is(err, ErrInput) {
			t.Errorf("Load() error = %v, want ErrInput", err)
		}
	})
}

func TestLoader_S3NotConfigured(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), "s3://resumes/jane.txt")
	if !errors.Is(err, ErrInput) {
		t.Errorf("Load() error = %v, want ErrInput", err)
	}
}

func TestLoader_MaxBytes(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(big, []byte(strings.Repeat("a", 64)), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := NewLoader(WithMaxBytes(32)).Load(context.Background(), big)
	if !errors.Is(err, ErrInput) {
		t.Errorf("Load() error = %v, want ErrInput", err)
	}
}

func TestReadLimited(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int64
		wantErr bool
	}{
		{name: "under limit", input: "abc", max: 5},
		{name: "at limit", input: "abcde", max: 5},
		{name: "over limit", input: "abcdef", max: 5, wantErr: true},
		{name: "empty", input: "", max: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadLimited(strings.NewReader(tt.input), tt.max, "input")
			if tt.wantErr {
				if !errors.Is(err, ErrInput) {
					t.Errorf("ReadLimited() error = %v, want ErrInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadLimited() error: %v", err)
			}
			if string(data) != tt.input {
				t.Errorf("ReadLimited() = %q, want %q", data, tt.input)
			}
		})
	}
}
