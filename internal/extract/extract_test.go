package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDocx builds a minimal .docx container whose document.xml holds the
// given paragraphs, one <w:p> each; empty strings become empty paragraphs.
func writeDocx(t *testing.T, paragraphs []string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		if p == "" {
			b.WriteString(`<w:p/>`)
			continue
		}
		b.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	b.WriteString(`</w:body></w:document>`)

	path := filepath.Join(t.TempDir(), "report.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte(b.String())); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestDocxParagraphSpacing verifies every paragraph is followed by a blank
// line and an empty paragraph widens the gap into a section boundary.
func TestDocxParagraphSpacing(t *testing.T) {
	path := writeDocx(t, []string{"Participant ABC123", "Weekly Activity Log", "", "Week 1"})

	text, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	want := "Participant ABC123\n\nWeekly Activity Log\n\n\n\nWeek 1\n\n"
	if text != want {
		t.Errorf("File = %q, want %q", text, want)
	}
	if !strings.Contains(text, "\n\n\n") {
		t.Error("empty paragraph did not produce a triple-newline section boundary")
	}
}

// TestDocxMultipleRuns verifies runs within one paragraph join without
// separators, as Word splits text mid-word across runs.
func TestDocxMultipleRuns(t *testing.T) {
	xmlBody := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Parti</w:t></w:r><w:r><w:t>cipant ABC123</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	path := filepath.Join(t.TempDir(), "runs.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte(xmlBody)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	text, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if want := "Participant ABC123\n\n"; text != want {
		t.Errorf("File = %q, want %q", text, want)
	}
}

// TestTxtNormalizesCRLF verifies Windows line endings are normalized so the
// parser's newline-run splits behave the same on both platforms.
func TestTxtNormalizesCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte("Week 1\r\n\r\n3/15/2022\r\n"), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if want := "Week 1\n\n3/15/2022\n"; text != want {
		t.Errorf("File = %q, want %q", text, want)
	}
}

// TestUnsupportedExtension verifies unknown formats fail loudly instead of
// being silently skipped here — the importer decides what to skip.
func TestUnsupportedExtension(t *testing.T) {
	if _, err := File("report.pdf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

// TestMissingFile verifies a missing input is a hard error.
func TestMissingFile(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestCorruptContainer verifies a non-ZIP .docx is a hard error.
func TestCorruptContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := File(path); err == nil {
		t.Error("expected error for corrupt container")
	}
}
