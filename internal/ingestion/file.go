// Package ingestion turns resume and job posting sources (document files,
// plain text and URLs) into cleaned text plus source metadata.
package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"code.sajari.com/docconv"

	"github.com/jonathan/resume-matcher/internal/textutil"
)

// ErrUnsupportedType is returned for file extensions DecodeFile cannot read
var ErrUnsupportedType = errors.New("unsupported file type")

// DecodeError reports a document that exists but could not be converted to text
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s", e.Path)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// documentTypes are converted with docconv; textTypes are read as-is
var (
	documentTypes = map[string]bool{".pdf": true, ".docx": true, ".doc": true, ".rtf": true, ".odt": true}
	textTypes     = map[string]bool{".txt": true, ".md": true}
)

// SupportedExtensions lists the lower-case extensions DecodeFile accepts, sorted
func SupportedExtensions() []string {
	exts := make([]string, 0, len(documentTypes)+len(textTypes))
	for ext := range documentTypes {
		exts = append(exts, ext)
	}
	for ext := range textTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether a path has an extension DecodeFile accepts
func IsSupported(path string) bool {
	ext := Extension(path)
	return documentTypes[ext] || textTypes[ext]
}

// Extension returns the lower-cased extension of path including the dot
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// DecodeFile extracts and cleans the text of a document.
// PDF, Word, RTF and OpenDocument files go through docconv; text and
// Markdown files are read directly.
func DecodeFile(path string) (string, error) {
	ext := Extension(path)

	var raw string
	switch {
	case documentTypes[ext]:
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", &DecodeError{Path: path, Cause: err}
		}
		raw = res.Body
	case textTypes[ext]:
		content, err := os.ReadFile(path)
		if err != nil {
			return "", &DecodeError{Path: path, Cause: err}
		}
		raw = string(content)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	return textutil.CleanText(raw), nil
}

// Document is cleaned source text with its provenance
type Document struct {
	Text     string
	Metadata *Metadata
}

// IngestFromFile decodes a document file into a Document
func IngestFromFile(path string) (*Document, error) {
	text, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	meta := NewMetadata(text, path)
	meta.FileType = strings.TrimPrefix(Extension(path), ".")
	return &Document{Text: text, Metadata: meta}, nil
}

// IngestFromText cleans already-extracted text into a Document labeled with source
func IngestFromText(text, source string) *Document {
	cleaned := textutil.CleanText(text)
	return &Document{Text: cleaned, Metadata: NewMetadata(cleaned, source)}
}
