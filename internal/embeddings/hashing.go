package embeddings

import (
	"context"
	"encoding/binary"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#.]*`)

// HashingService embeds text locally with signed feature hashing over word
// unigrams and bigrams. It needs no network and is deterministic, so it backs
// offline runs and tests.
type HashingService struct {
	dim int
}

// NewHashingService returns a HashingService producing vectors of size dim,
// DefaultDimension when dim is not positive
func NewHashingService(dim int) *HashingService {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingService{dim: dim}
}

// Dimension implements Service
func (s *HashingService) Dimension() int {
	return s.dim
}

// Encode implements Service
func (s *HashingService) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.embed(text), nil
}

// EncodeBatch implements Service
func (s *HashingService) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = s.embed(text)
	}
	return out, nil
}

func (s *HashingService) embed(text string) []float32 {
	vec := Zero(s.dim)
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	for i, tok := range tokens {
		tok = strings.TrimRight(tok, ".")
		if tok == "" {
			continue
		}
		s.add(vec, tok, 1)
		if i > 0 {
			s.add(vec, tokens[i-1]+" "+tok, 0.5)
		}
	}
	return normalize(vec)
}

// add hashes feature into a bucket; one hash bit picks the sign so collisions cancel on average
func (s *HashingService) add(vec []float32, feature string, weight float32) {
	sum := blake2b.Sum256([]byte(feature))
	h := binary.LittleEndian.Uint64(sum[:8])
	idx := int(h % uint64(s.dim))
	if sum[8]&1 == 1 {
		weight = -weight
	}
	vec[idx] += weight
}
