package matching

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/clearance"
	"github.com/jonathan/resume-matcher/internal/types"
)

// BatchOptions controls MatchBatch
type BatchOptions struct {
	// ResumeEmbedding skips encoding the resume when set
	ResumeEmbedding []float32
	// SortByScore orders results by descending score instead of input order
	SortByScore bool
}

// MatchBatch scores one candidate against many jobs. The resume is encoded
// once and every qualifying job description in a single batch call; pairs
// are then scored concurrently. Results follow the order of jobs unless
// SortByScore is set.
func (m *Matcher) MatchBatch(ctx context.Context, c Candidate, jobs []*types.Job, opts *BatchOptions) ([]*types.MatchResult, error) {
	if opts == nil {
		opts = &BatchOptions{}
	}
	results := make([]*types.MatchResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	level := clearance.Detect(c.Text())

	// Only jobs past the clearance gate are embedded
	var (
		texts   []string
		pending []int
	)
	for i, job := range jobs {
		if !clearance.Meets(level, job.ClearanceLevel) {
			results[i] = disqualified(job, level)
			continue
		}
		pending = append(pending, i)
		texts = append(texts, job.Description())
	}

	semantic, err := m.semantic.ScoreBatchWith(ctx, c.Text(), opts.ResumeEmbedding, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute embeddings: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for k, i := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.score(c, jobs[i], semantic[k])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.log.Debug("batch matched",
		zap.Int("jobs", len(jobs)),
		zap.Int("qualified", len(pending)))

	if opts.SortByScore {
		sortByScore(results)
	}
	return results, nil
}

// TopMatches returns at most k results scoring at least minScore, best
// first. With requireClearance, disqualified jobs are dropped before the
// cutoff is applied; otherwise they compete with their score of 0.
func (m *Matcher) TopMatches(ctx context.Context, c Candidate, jobs []*types.Job, k int, minScore float64, requireClearance bool) ([]*types.MatchResult, error) {
	results, err := m.MatchBatch(ctx, c, jobs, &BatchOptions{SortByScore: true})
	if err != nil {
		return nil, err
	}

	top := []*types.MatchResult{}
	for _, r := range results {
		if requireClearance && r.Disqualified {
			continue
		}
		if r.Score < minScore {
			continue
		}
		top = append(top, r)
		if k > 0 && len(top) == k {
			break
		}
	}
	return top, nil
}

// RankedResult pairs a match result with the position of its candidate in
// the input slice
type RankedResult struct {
	Index  int                `json:"index"`
	Result *types.MatchResult `json:"result"`
}

// RankResumes scores many candidates against one job and returns the best
// k, highest score first. k <= 0 returns all of them. The job is encoded
// once for the whole call.
func (m *Matcher) RankResumes(ctx context.Context, job *types.Job, candidates []Candidate, k int) ([]RankedResult, error) {
	ranked := make([]RankedResult, len(candidates))

	jobVec, err := m.semantic.Embed(ctx, job.Description())
	if err != nil {
		return nil, fmt.Errorf("failed to compute embeddings: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			r, err := m.Match(gctx, c, job, &MatchOptions{JobEmbedding: jobVec})
			if err != nil {
				return fmt.Errorf("failed to match candidate %d: %w", i, err)
			}
			ranked[i] = RankedResult{Index: i, Result: r}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Result.Score > ranked[b].Result.Score
	})
	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}

func sortByScore(results []*types.MatchResult) {
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
}
