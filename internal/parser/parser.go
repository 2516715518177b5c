// Package parser converts source files into plain document text for
// chunking. It is CLI-side glue; the core operates on text only.
package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Parser converts raw file bytes into document text.
type Parser interface {
	Parse(r io.Reader, filename string) (string, error)
}

// ForFile returns the appropriate parser for a filename. Unknown
// extensions are read as plain text.
func ForFile(filename string) Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return &MarkdownParser{}
	case ".pdf":
		return &PDFParser{}
	default:
		return &TextParser{}
	}
}

// Load reads a file and returns its document text.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ForFile(path).Parse(f, filepath.Base(path))
}
