package embeddings

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiService_Fit(t *testing.T) {
	s := &GeminiService{dim: 2}

	vec, err := s.fit([]float32{3, 4, 12})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)

	_, err = s.fit([]float32{1})
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestNewGeminiService_RequiresKey(t *testing.T) {
	_, err := NewGeminiService(context.Background(), "", "", 0, nil)
	assert.ErrorContains(t, err, "API key is required")
}

func TestGeminiService_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx := context.Background()
	svc, err := NewGeminiService(ctx, apiKey, "", 0, nil)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	vecs, err := svc.EncodeBatch(ctx, []string{"Go backend engineer", "", "Golang server developer"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	assert.Len(t, vecs[0], DefaultDimension)
	assert.Equal(t, Zero(DefaultDimension), vecs[1])
	assert.Greater(t, CosineSimilarity(vecs[0], vecs[2]), 0.5)
}
