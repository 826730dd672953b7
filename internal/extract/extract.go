package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File reads a report document and returns its plain text. Supported
// formats are .docx and .txt; anything else is an error. Missing or
// unreadable files are hard errors — only the parsing downstream is
// tolerant of malformed content.
func File(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return docxText(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	default:
		return "", fmt.Errorf("unsupported report format %q", filepath.Ext(path))
	}
}

// documentXML mirrors the parts of word/document.xml we read: paragraphs
// containing runs containing text elements.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// docxText extracts paragraph text from a .docx container. Every paragraph
// is followed by a blank line, so an empty paragraph in the document widens
// the gap to three newlines — the section boundary the block extractor
// splits on.
func docxText(path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("opening document.xml in %s: %w", path, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("reading document.xml in %s: %w", path, err)
		}
		return paragraphsText(content)
	}
	return "", fmt.Errorf("%s: no word/document.xml in container", path)
}

func paragraphsText(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("decoding document.xml: %w", err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paragraphs {
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
		b.WriteString("\n\n")
	}
	return b.String(), nil
}
