package parsing

import (
	"fmt"
	"strings"
)

// FileNotFoundError is returned when the input file does not exist
type FileNotFoundError struct {
	Path  string
	Cause error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Cause
}

// UnsupportedFileTypeError is returned for extensions no decoder handles
type UnsupportedFileTypeError struct {
	Extension string
	Supported []string
}

func (e *UnsupportedFileTypeError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported file type: %s. Supported types: %s", ext, strings.Join(e.Supported, ", "))
}

// stageError formats a soft extraction failure recorded on a record
func stageError(stage string, cause any) string {
	return fmt.Sprintf("%s extraction failed: %v", stage, cause)
}
