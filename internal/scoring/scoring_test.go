package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/embeddings"
	"github.com/jonathan/resume-matcher/internal/types"
)

func TestSkillScorer_Scenarios(t *testing.T) {
	s := NewSkillScorer()

	t.Run("all matched", func(t *testing.T) {
		got := s.Score([]string{"Python", "Django", "PostgreSQL"}, []string{"Python", "Django"}, []string{"PostgreSQL"})
		assert.Equal(t, 1.0, got.Score)
		assert.Empty(t, got.MissingRequired)
		assert.Empty(t, got.MissingPreferred)
		assert.Equal(t, []string{"Django", "PostgreSQL", "Python"}, got.Matched)
	})

	t.Run("synonyms keep job casing", func(t *testing.T) {
		got := s.Score([]string{"JS", "ReactJS", "NodeJS"}, []string{"JavaScript", "React", "Node.js"}, nil)
		assert.Equal(t, 1.0, got.Score)
		assert.Equal(t, []string{"JavaScript", "Node.js", "React"}, got.Matched)
		assert.Empty(t, got.MissingRequired)
	})

	t.Run("weighted partial", func(t *testing.T) {
		got := s.Score([]string{"python", "terraform"}, []string{"Python", "Kubernetes"}, []string{"Terraform", "AWS"})
		// (2*1 + 1*1) / (2*2 + 1*2)
		assert.InDelta(t, 0.5, got.Score, 1e-9)
		assert.Equal(t, []string{"Kubernetes"}, got.MissingRequired)
		assert.Equal(t, []string{"AWS"}, got.MissingPreferred)

		require.Len(t, got.Gaps, 2)
		assert.Equal(t, types.SkillGap{Skill: "Kubernetes", Importance: types.ImportanceRequired, Category: "devops"}, got.Gaps[0])
		assert.Equal(t, types.SkillGap{Skill: "AWS", Importance: types.ImportancePreferred, Category: "cloud"}, got.Gaps[1])
	})

	t.Run("no job skills is neutral", func(t *testing.T) {
		for _, resume := range [][]string{nil, {"Go"}, {"Python", "Rust", "Docker"}} {
			assert.Equal(t, NeutralSkillScore, s.Score(resume, nil, []string{}).Score)
		}
	})

	t.Run("duplicate job skills count once", func(t *testing.T) {
		got := s.Score([]string{"k8s"}, []string{"Kubernetes", "kubernetes", "Go"}, nil)
		assert.InDelta(t, 0.5, got.Score, 1e-9)
		assert.Equal(t, []string{"Kubernetes"}, got.Matched)
	})
}

func TestSkillScorer_Monotonic(t *testing.T) {
	s := NewSkillScorer()
	required := []string{"Python", "Go", "Kubernetes"}
	preferred := []string{"Terraform", "AWS"}
	pool := []string{"Rust", "Go", "AWS", "Kubernetes", "Java", "Python", "Terraform"}

	prev := -1.0
	var resume []string
	for _, skill := range pool {
		resume = append(resume, skill)
		score := s.Score(resume, required, preferred).Score
		assert.GreaterOrEqual(t, score, prev, "adding %s lowered the score", skill)
		prev = score
	}
	assert.Equal(t, 1.0, prev)
}

func TestWeightedSkillScorer(t *testing.T) {
	s := NewWeightedSkillScorer(1, 1)
	got := s.Score([]string{"Go"}, []string{"Go"}, []string{"Rust"})
	assert.InDelta(t, 0.5, got.Score, 1e-9)
}

func TestOverlapPercentage(t *testing.T) {
	assert.InDelta(t, 50.0, OverlapPercentage([]string{"golang"}, []string{"Go", "Rust"}), 1e-9)
	assert.Equal(t, 0.0, OverlapPercentage([]string{"Go"}, nil))
}

func TestExperienceScorer_Score(t *testing.T) {
	s := NewExperienceScorer()

	tests := []struct {
		name     string
		years    float64
		known    bool
		minYears int
		expected float64
	}{
		{"no minimum", 0, false, 0, 1},
		{"meets", 5, true, 5, 1},
		{"exceeds", 9, true, 3, 1},
		{"partial", 2, true, 5, 0.4},
		{"none", 0, true, 3, 0},
		{"unknown", 0, false, 3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.Score(tt.years, tt.known, tt.minYears), 1e-9)
		})
	}
}

func TestYearsFromText(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
		ok       bool
	}{
		{"8 years of experience building APIs", 8, true},
		{"Over 10 years in finance", 10, true},
		{"5+ yrs backend", 5, true},
		{"Experience: 4 years", 4, true},
		{"Built APIs since 2015", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := YearsFromText(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExperienceScorer_EstimateYears(t *testing.T) {
	now := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	s := NewExperienceScorerAt(now)

	t.Run("text wins", func(t *testing.T) {
		years, known := s.EstimateYears("7 years of experience", []types.WorkExperience{{StartDate: "2020"}})
		assert.True(t, known)
		assert.Equal(t, 7.0, years)
	})

	t.Run("entry durations", func(t *testing.T) {
		entries := []types.WorkExperience{
			{StartDate: "Jan 2022", EndDate: "Present", IsCurrent: true},
			{StartDate: "06/2019", EndDate: "12/2021"},
		}
		years, known := s.EstimateYears("", entries)
		assert.True(t, known)
		// 30 months + 30 months
		assert.InDelta(t, 5.0, years, 1e-9)
	})

	t.Run("heuristic defaults", func(t *testing.T) {
		entries := []types.WorkExperience{
			{StartDate: "sometime", EndDate: "later"},
			{StartDate: "2019", EndDate: "unknown"},
			{StartDate: "2018", EndDate: "", IsCurrent: true},
		}
		// 30 + 24 + (2018-01 to 2024-07 = 78)
		assert.InDelta(t, 132.0/12, s.YearsFromEntries(entries), 1e-9)
	})

	t.Run("zero length falls back to position count", func(t *testing.T) {
		entries := []types.WorkExperience{{StartDate: "2020", EndDate: "2020"}, {StartDate: "2021", EndDate: "2021"}}
		years, known := s.EstimateYears("", entries)
		assert.True(t, known)
		assert.Equal(t, 5.0, years)
	})

	t.Run("nothing known", func(t *testing.T) {
		_, known := s.EstimateYears("", nil)
		assert.False(t, known)
	})
}

func TestExperienceScorer_ParseDate(t *testing.T) {
	s := NewExperienceScorerAt(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		raw   string
		year  int
		month time.Month
		ok    bool
	}{
		{"2020-05-17", 2020, time.May, true},
		{"2020-05", 2020, time.May, true},
		{"2020", 2020, time.January, true},
		{"03/2015", 2015, time.March, true},
		{"June 2018", 2018, time.June, true},
		{"Sep 2017", 2017, time.September, true},
		{"present", 2024, time.March, true},
		{"Summer 2016", 2016, time.January, true},
		{"n/a", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := s.parseDate(tt.raw)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.year, got.Year())
				assert.Equal(t, tt.month, got.Month())
			}
		})
	}
}

func TestSemanticScorer(t *testing.T) {
	ctx := context.Background()
	s := NewSemanticScorer(embeddings.NewHashingService(128))

	t.Run("identical text", func(t *testing.T) {
		score, err := s.Score(ctx, "Go Kubernetes engineer", "Go Kubernetes engineer")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-5)
	})

	t.Run("blank text", func(t *testing.T) {
		score, err := s.Score(ctx, "Go engineer", "  ")
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("batch follows input order", func(t *testing.T) {
		jobs := []string{"Pastry chef", "Go Kubernetes engineer", ""}
		scores, err := s.ScoreBatch(ctx, "Go Kubernetes engineer", jobs)
		require.NoError(t, err)
		require.Len(t, scores, 3)
		assert.InDelta(t, 1.0, scores[1], 1e-5)
		assert.Less(t, scores[0], scores[1])
		assert.Equal(t, 0.0, scores[2])
		for _, sc := range scores {
			assert.GreaterOrEqual(t, sc, 0.0)
			assert.LessOrEqual(t, sc, 1.0)
		}
	})

	t.Run("service error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewSemanticScorer(failingService{err: boom}).Score(ctx, "a", "b")
		assert.ErrorIs(t, err, boom)
	})
}

func TestSemanticScorer_PrecomputedVectors(t *testing.T) {
	ctx := context.Background()
	inner := embeddings.NewHashingService(128)
	vec, err := inner.Encode(ctx, "Go Kubernetes engineer")
	require.NoError(t, err)

	tests := []struct {
		name      string
		resumeVec []float32
		jobVec    []float32
		wantCalls int
		wantTexts int
	}{
		{name: "both precomputed", resumeVec: vec, jobVec: vec, wantCalls: 0, wantTexts: 0},
		{name: "resume precomputed", resumeVec: vec, wantCalls: 1, wantTexts: 1},
		{name: "job precomputed", jobVec: vec, wantCalls: 1, wantTexts: 1},
		{name: "neither", wantCalls: 1, wantTexts: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingService{inner: inner}
			s := NewSemanticScorer(svc)

			score, err := s.ScorePair(ctx, "Go Kubernetes engineer", "Go Kubernetes engineer", tt.resumeVec, tt.jobVec)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, score, 1e-5)
			assert.Equal(t, tt.wantCalls, svc.calls)
			assert.Equal(t, tt.wantTexts, svc.texts)
		})
	}
}

func TestSemanticScorer_ScoreBatchWith(t *testing.T) {
	ctx := context.Background()
	inner := embeddings.NewHashingService(128)
	vec, err := inner.Encode(ctx, "Go Kubernetes engineer")
	require.NoError(t, err)

	t.Run("resume vector skips resume text", func(t *testing.T) {
		svc := &recordingService{inner: inner}
		scores, err := NewSemanticScorer(svc).ScoreBatchWith(ctx, "Go Kubernetes engineer", vec, []string{"Go Kubernetes engineer", " ", "Pastry chef"})
		require.NoError(t, err)
		require.Len(t, scores, 3)
		assert.InDelta(t, 1.0, scores[0], 1e-5)
		assert.Equal(t, 0.0, scores[1])
		assert.Equal(t, 1, svc.calls)
		assert.Equal(t, 2, svc.texts)
	})

	t.Run("all blank jobs make no call", func(t *testing.T) {
		svc := &recordingService{inner: inner}
		scores, err := NewSemanticScorer(svc).ScoreBatchWith(ctx, "Go engineer", nil, []string{"", "  "})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, scores)
		assert.Zero(t, svc.calls)
	})

	t.Run("blank resume", func(t *testing.T) {
		svc := &recordingService{inner: inner}
		scores, err := NewSemanticScorer(svc).ScoreBatch(ctx, "", []string{"Go engineer"})
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, scores)
		assert.Zero(t, svc.calls)
	})
}

func TestSemanticScorer_Embed(t *testing.T) {
	ctx := context.Background()
	s := NewSemanticScorer(embeddings.NewHashingService(64))

	vec, err := s.Embed(ctx, "Go engineer")
	require.NoError(t, err)
	assert.Len(t, vec, 64)

	vec, err = s.Embed(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, vec)

	boom := errors.New("boom")
	_, err = NewSemanticScorer(failingService{err: boom}).Embed(ctx, "Go")
	assert.ErrorIs(t, err, boom)
}

func TestScoreVectors(t *testing.T) {
	assert.Equal(t, 0.0, ScoreVectors(nil, []float32{1, 0}))
	assert.Equal(t, 0.0, ScoreVectors([]float32{1, 0}, nil))
	assert.InDelta(t, 1.0, ScoreVectors([]float32{1, 0}, []float32{3, 0}), 1e-6)
}

func TestSimilarityClamps(t *testing.T) {
	assert.Equal(t, 0.0, Similarity([]float32{1, 0}, []float32{-1, 0}))
	assert.InDelta(t, 1.0, Similarity([]float32{1, 1}, []float32{2, 2}), 1e-6)
}

type failingService struct {
	err error
}

func (f failingService) Encode(context.Context, string) ([]float32, error) { return nil, f.err }
func (f failingService) EncodeBatch(context.Context, []string) ([][]float32, error) {
	return nil, f.err
}
func (f failingService) Dimension() int { return 4 }

type recordingService struct {
	inner embeddings.Service
	calls int
	texts int
}

func (r *recordingService) Encode(ctx context.Context, text string) ([]float32, error) {
	vecs, err := r.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (r *recordingService) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	r.calls++
	r.texts += len(texts)
	return r.inner.EncodeBatch(ctx, texts)
}

func (r *recordingService) Dimension() int { return r.inner.Dimension() }
