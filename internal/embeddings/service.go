// Package embeddings provides text embedding services for semantic matching:
// a Gemini-backed service, an offline feature-hashing service, and a caching
// layer with an in-process FIFO cache and an optional Redis tier.
package embeddings

import (
	"context"
	"fmt"
	"math"
)

// DefaultDimension is the vector size shared by every service and the vector store
const DefaultDimension = 384

// Service turns text into fixed-dimension vectors.
// EncodeBatch preserves input order and maps empty strings to zero vectors.
type Service interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// APICallError represents a failed call to a remote embedding provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// CosineSimilarity returns the cosine of the angle between a and b in [-1, 1].
// Mismatched lengths and zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(-1, math.Min(1, sim))
}

// Zero returns a zero vector of dimension dim
func Zero(dim int) []float32 {
	return make([]float32, dim)
}

// normalize scales v to unit length in place; zero vectors are left alone
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return v
}
