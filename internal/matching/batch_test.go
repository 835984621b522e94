package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func batchJobs() []*types.Job {
	weak := job("Pastry Chef", "Pastry chef for a French bakery. Croissants and laminated dough.")
	weak.RequiredSkills = []string{"Baking", "Pastry"}

	strong := job("Go Engineer", "Go engineer building Kubernetes operators and gRPC services.")
	strong.RequiredSkills = []string{"Go", "Kubernetes"}
	strong.PreferredSkills = []string{"gRPC"}

	cleared := job("Cleared Go Engineer", "Go engineer. Active Secret clearance required.")
	cleared.RequiredSkills = []string{"Go"}
	cleared.ClearanceLevel = types.ClearanceSecret

	return []*types.Job{weak, strong, cleared}
}

func goResume() *types.Resume {
	return resume("Go engineer building Kubernetes operators and gRPC services.", "Go", "Kubernetes", "gRPC")
}

func TestMatchBatch_PreservesOrder(t *testing.T) {
	svc := newCounting()
	m := newTestMatcher(t, WithEmbeddingService(svc), WithConcurrency(2))
	jobs := batchJobs()

	got, err := m.MatchBatch(context.Background(), goResume(), jobs, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, r := range got {
		assert.Equal(t, jobs[i].Title, r.JobTitle)
	}
	assert.True(t, got[2].Disqualified)
	assert.Greater(t, got[1].Score, got[0].Score)

	// resume + two qualifying jobs in one call
	assert.EqualValues(t, 1, svc.calls.Load())
	assert.EqualValues(t, 3, svc.texts.Load())
}

func TestMatchBatch_SingleEncodeCall(t *testing.T) {
	tests := []struct {
		name      string
		jobs      int
		precomp   bool
		wantCalls int32
		wantTexts int32
	}{
		{name: "resume and jobs together", jobs: 6, wantCalls: 1, wantTexts: 7},
		{name: "precomputed resume", jobs: 6, precomp: true, wantCalls: 1, wantTexts: 6},
		{name: "single job", jobs: 1, wantCalls: 1, wantTexts: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCounting()
			m := newTestMatcher(t, WithEmbeddingService(svc), WithConcurrency(2))
			r := goResume()

			jobs := make([]*types.Job, tt.jobs)
			for i := range jobs {
				jobs[i] = job(fmt.Sprintf("Go Engineer %d", i), fmt.Sprintf("Go engineer %d building gRPC services.", i))
			}
			opts := &BatchOptions{}
			if tt.precomp {
				vec, err := svc.inner.Encode(context.Background(), r.Text())
				require.NoError(t, err)
				opts.ResumeEmbedding = vec
			}

			got, err := m.MatchBatch(context.Background(), r, jobs, opts)
			require.NoError(t, err)
			require.Len(t, got, tt.jobs)
			for _, res := range got {
				assert.Greater(t, res.SemanticScore, 0.0)
			}
			assert.Equal(t, tt.wantCalls, svc.calls.Load())
			assert.Equal(t, tt.wantTexts, svc.texts.Load())
		})
	}
}

func TestMatchBatch_BlankJobNotEncoded(t *testing.T) {
	svc := newCounting()
	m := newTestMatcher(t, WithEmbeddingService(svc))

	got, err := m.MatchBatch(context.Background(), goResume(), []*types.Job{
		job("Go Engineer", "Go engineer building gRPC services."),
		job("Untitled", "   "),
	}, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Greater(t, got[0].SemanticScore, 0.0)
	assert.Equal(t, 0.0, got[1].SemanticScore)
	assert.EqualValues(t, 1, svc.calls.Load())
	assert.EqualValues(t, 2, svc.texts.Load())
}

func TestMatchBatch_MatchesSingleScoring(t *testing.T) {
	m := newTestMatcher(t)
	jobs := batchJobs()
	r := goResume()

	got, err := m.MatchBatch(context.Background(), r, jobs, nil)
	require.NoError(t, err)

	for i, j := range jobs {
		single, err := m.Match(context.Background(), r, j, nil)
		require.NoError(t, err)
		assert.Equal(t, single.Score, got[i].Score, j.Title)
		assert.Equal(t, single.Explanation, got[i].Explanation, j.Title)
	}
}

func TestMatchBatch_SortByScore(t *testing.T) {
	m := newTestMatcher(t)

	got, err := m.MatchBatch(context.Background(), goResume(), batchJobs(), &BatchOptions{SortByScore: true})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Go Engineer", got[0].JobTitle)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	assert.True(t, got[2].Disqualified)
}

func TestMatchBatch_PrecomputedResume(t *testing.T) {
	svc := newCounting()
	m := newTestMatcher(t, WithEmbeddingService(svc))
	r := goResume()

	vec, err := svc.inner.Encode(context.Background(), r.Text())
	require.NoError(t, err)

	_, err = m.MatchBatch(context.Background(), r, batchJobs(), &BatchOptions{ResumeEmbedding: vec})
	require.NoError(t, err)
	assert.EqualValues(t, 2, svc.texts.Load())
}

func TestMatchBatch_Empty(t *testing.T) {
	svc := newCounting()
	m := newTestMatcher(t, WithEmbeddingService(svc))

	got, err := m.MatchBatch(context.Background(), goResume(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, svc.calls.Load())
}

func TestMatchBatch_EmbeddingError(t *testing.T) {
	boom := errors.New("unavailable")
	svc := newCounting()
	svc.err = boom
	m := newTestMatcher(t, WithEmbeddingService(svc))

	_, err := m.MatchBatch(context.Background(), goResume(), batchJobs(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestMatchBatch_Canceled(t *testing.T) {
	m := newTestMatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.MatchBatch(ctx, goResume(), batchJobs(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTopMatches(t *testing.T) {
	m := newTestMatcher(t)
	r := goResume()

	t.Run("k limits results", func(t *testing.T) {
		got, err := m.TopMatches(context.Background(), r, batchJobs(), 1, 0, false)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Go Engineer", got[0].JobTitle)
	})

	t.Run("require clearance drops disqualified", func(t *testing.T) {
		got, err := m.TopMatches(context.Background(), r, batchJobs(), 10, 0, true)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, res := range got {
			assert.False(t, res.Disqualified)
		}
	})

	t.Run("disqualified kept without the flag", func(t *testing.T) {
		got, err := m.TopMatches(context.Background(), r, batchJobs(), 10, 0, false)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("min score filters", func(t *testing.T) {
		all, err := m.MatchBatch(context.Background(), r, batchJobs(), &BatchOptions{SortByScore: true})
		require.NoError(t, err)

		got, err := m.TopMatches(context.Background(), r, batchJobs(), 10, all[0].Score, false)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		for _, res := range got {
			assert.GreaterOrEqual(t, res.Score, all[0].Score)
		}

		got, err = m.TopMatches(context.Background(), r, batchJobs(), 10, 101, false)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRankResumes(t *testing.T) {
	svc := newCounting()
	m := newTestMatcher(t, WithEmbeddingService(svc))

	j := job("Go Engineer", "Go engineer building Kubernetes operators and gRPC services.")
	j.RequiredSkills = []string{"Go", "Kubernetes"}

	candidates := []Candidate{
		resume("Pastry chef with a passion for laminated dough.", "Baking"),
		goResume(),
		resume("Go developer.", "Go"),
	}

	got, err := m.RankResumes(context.Background(), j, candidates, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Index)
	assert.GreaterOrEqual(t, got[0].Result.Score, got[1].Result.Score)
	assert.NotEqual(t, 0, got[1].Index)

	// job once, then one call per candidate
	assert.EqualValues(t, 4, svc.calls.Load())
	assert.EqualValues(t, 4, svc.texts.Load())

	all, err := m.RankResumes(context.Background(), j, candidates, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
