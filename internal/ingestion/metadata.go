package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes where ingested text came from
type Metadata struct {
	Source    string `json:"source,omitempty"`    // file path or URL
	FileType  string `json:"file_type,omitempty"` // extension without the dot, or "url"/"text"
	Timestamp string `json:"timestamp"`           // RFC3339
	Hash      string `json:"hash"`                // SHA256 hex digest of the cleaned text
	Platform  string `json:"platform,omitempty"`  // job board for URL sources
	Title     string `json:"title,omitempty"`     // page title for URL sources
	Company   string `json:"company,omitempty"`   // site name for URL sources
}

// NewMetadata creates Metadata for content with the current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      ContentHash(content),
	}
}

// ContentHash returns the SHA256 hex digest of content
func ContentHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to indented JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
