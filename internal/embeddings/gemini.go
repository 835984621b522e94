package embeddings

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-matcher/internal/logger"
)

// DefaultGeminiModel is the embedding model used when none is configured
const DefaultGeminiModel = "text-embedding-004"

// maxBatchSize is the largest batch BatchEmbedContents accepts
const maxBatchSize = 100

// GeminiService embeds text with the Gemini embedding API.
// Provider vectors longer than the configured dimension are truncated and
// re-normalized; text-embedding-004 is trained so leading components carry
// most of the signal.
type GeminiService struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	name   string
	dim    int
	log    *zap.Logger
}

// NewGeminiService creates a Gemini embedding client
func NewGeminiService(ctx context.Context, apiKey, model string, dim int, log *zap.Logger) (*GeminiService, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if dim <= 0 {
		dim = DefaultDimension
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &APICallError{Message: "failed to create Gemini client", Cause: err}
	}

	em := client.EmbeddingModel(model)
	em.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiService{
		client: client,
		model:  em,
		name:   model,
		dim:    dim,
		log:    logger.WithFields(log, logger.EmbeddingFields("gemini", model)...),
	}, nil
}

// Dimension implements Service
func (s *GeminiService) Dimension() int {
	return s.dim
}

// Model returns the embedding model name
func (s *GeminiService) Model() string {
	return s.name
}

// Encode implements Service
func (s *GeminiService) Encode(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return Zero(s.dim), nil
	}
	resp, err := s.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &APICallError{Message: "failed to embed content", Cause: err}
	}
	if resp == nil || resp.Embedding == nil {
		return nil, &APICallError{Message: "empty embedding in response"}
	}
	return s.fit(resp.Embedding.Values)
}

// EncodeBatch implements Service. Inputs are sent in chunks of at most 100.
func (s *GeminiService) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	var idx []int
	for i, text := range texts {
		if text == "" {
			out[i] = Zero(s.dim)
			continue
		}
		idx = append(idx, i)
	}

	for start := 0; start < len(idx); start += maxBatchSize {
		end := min(start+maxBatchSize, len(idx))
		chunk := idx[start:end]

		batch := s.model.NewBatch()
		for _, i := range chunk {
			batch.AddContent(genai.Text(texts[i]))
		}

		s.log.Debug("embedding batch", zap.Int("size", len(chunk)))
		resp, err := s.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, &APICallError{Message: "failed to embed batch", Cause: err}
		}
		if resp == nil || len(resp.Embeddings) != len(chunk) {
			return nil, &APICallError{Message: "embedding count does not match input count"}
		}

		for j, i := range chunk {
			if resp.Embeddings[j] == nil {
				return nil, &APICallError{Message: fmt.Sprintf("missing embedding at position %d", i)}
			}
			vec, err := s.fit(resp.Embeddings[j].Values)
			if err != nil {
				return nil, err
			}
			out[i] = vec
		}
	}
	return out, nil
}

// fit truncates a provider vector to the configured dimension
func (s *GeminiService) fit(values []float32) ([]float32, error) {
	if len(values) < s.dim {
		return nil, &APICallError{Message: fmt.Sprintf("model returned %d dimensions, need %d", len(values), s.dim)}
	}
	vec := make([]float32, s.dim)
	copy(vec, values[:s.dim])
	return normalize(vec), nil
}

// Close releases the client
func (s *GeminiService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
