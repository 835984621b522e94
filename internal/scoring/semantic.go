// Package scoring computes the component scores of a match: semantic
// similarity of the documents, weighted skill overlap and experience
// sufficiency. Each score is in [0, 1].
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-matcher/internal/embeddings"
)

// SemanticScorer compares documents through an embedding service
type SemanticScorer struct {
	svc embeddings.Service
}

// NewSemanticScorer returns a scorer backed by svc
func NewSemanticScorer(svc embeddings.Service) *SemanticScorer {
	return &SemanticScorer{svc: svc}
}

// Service returns the embedding service the scorer encodes with
func (s *SemanticScorer) Service() embeddings.Service {
	return s.svc
}

// Score returns the clamped cosine similarity of two texts, 0 when either is blank
func (s *SemanticScorer) Score(ctx context.Context, resumeText, jobText string) (float64, error) {
	return s.ScorePair(ctx, resumeText, jobText, nil, nil)
}

// ScorePair is Score with optional precomputed vectors. Whatever is missing
// is encoded in one batch call.
func (s *SemanticScorer) ScorePair(ctx context.Context, resumeText, jobText string, resumeVec, jobVec []float32) (float64, error) {
	if isBlank(resumeText) || isBlank(jobText) {
		return 0, nil
	}

	var texts []string
	if resumeVec == nil {
		texts = append(texts, resumeText)
	}
	if jobVec == nil {
		texts = append(texts, jobText)
	}
	if len(texts) > 0 {
		vecs, err := s.svc.EncodeBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("failed to encode texts: %w", err)
		}
		if resumeVec == nil {
			resumeVec, vecs = vecs[0], vecs[1:]
		}
		if jobVec == nil {
			jobVec = vecs[0]
		}
	}
	return ScoreVectors(resumeVec, jobVec), nil
}

// ScoreBatch scores one resume against many job texts with a single batch
// call covering the resume and every non-blank job. Results follow jobTexts order.
func (s *SemanticScorer) ScoreBatch(ctx context.Context, resumeText string, jobTexts []string) ([]float64, error) {
	return s.ScoreBatchWith(ctx, resumeText, nil, jobTexts)
}

// ScoreBatchWith is ScoreBatch with an optional precomputed resume vector,
// which is then left out of the batch call
func (s *SemanticScorer) ScoreBatchWith(ctx context.Context, resumeText string, resumeVec []float32, jobTexts []string) ([]float64, error) {
	scores := make([]float64, len(jobTexts))
	if isBlank(resumeText) {
		return scores, nil
	}

	var (
		texts  []string
		owners []int
	)
	for i, text := range jobTexts {
		if !isBlank(text) {
			texts = append(texts, text)
			owners = append(owners, i)
		}
	}
	if len(texts) == 0 {
		return scores, nil
	}
	if resumeVec == nil {
		texts = append([]string{resumeText}, texts...)
	}

	vecs, err := s.svc.EncodeBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode texts: %w", err)
	}
	if resumeVec == nil {
		resumeVec, vecs = vecs[0], vecs[1:]
	}
	for k, i := range owners {
		scores[i] = ScoreVectors(resumeVec, vecs[k])
	}
	return scores, nil
}

// Embed encodes text, returning nil for blank input
func (s *SemanticScorer) Embed(ctx context.Context, text string) ([]float32, error) {
	if isBlank(text) {
		return nil, nil
	}
	vec, err := s.svc.Encode(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}
	return vec, nil
}

// ScoreVectors is Similarity, or 0 when either vector is missing
func ScoreVectors(a, b []float32) float64 {
	if a == nil || b == nil {
		return 0
	}
	return Similarity(a, b)
}

// Similarity is the cosine similarity of two vectors clamped to [0, 1]
func Similarity(a, b []float32) float64 {
	return math.Max(0, math.Min(1, embeddings.CosineSimilarity(a, b)))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
