package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecodeFile_Text(t *testing.T) {
	path := writeFile(t, "resume.txt", "Jane Doe\r\n\r\n\r\n\r\nSKILLS   Go,  Python   \n")

	text, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSKILLS Go, Python", text)
}

func TestDecodeFile_Markdown(t *testing.T) {
	path := writeFile(t, "job.MD", "# Backend Engineer\n\n- Go")

	text, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Backend Engineer\n\n- Go", text)
}

func TestDecodeFile_Unsupported(t *testing.T) {
	path := writeFile(t, "resume.xyz", "data")

	_, err := DecodeFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestDecodeFile_MissingTextFile(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"resume.pdf", true},
		{"RESUME.DOCX", true},
		{"notes.md", true},
		{"old.doc", true},
		{"image.png", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSupported(tt.path))
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".doc", ".docx", ".md", ".odt", ".pdf", ".rtf", ".txt"}, SupportedExtensions())
}

func TestIngestFromFile(t *testing.T) {
	path := writeFile(t, "resume.txt", "  Jane Doe  \nEngineer")

	doc, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineer", doc.Text)
	assert.Equal(t, path, doc.Metadata.Source)
	assert.Equal(t, "txt", doc.Metadata.FileType)
	assert.Equal(t, ContentHash(doc.Text), doc.Metadata.Hash)
}

func TestIngestFromText(t *testing.T) {
	doc := IngestFromText("Line one   \n\n\n\nLine two", "stdin")

	assert.Equal(t, "Line one\n\nLine two", doc.Text)
	assert.Equal(t, "stdin", doc.Metadata.Source)
}
