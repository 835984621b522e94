package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchResult_Tier(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{100, TierExcellent},
		{85, TierExcellent},
		{84.9, TierStrong},
		{70, TierStrong},
		{55, TierGood},
		{40, TierFair},
		{39.9, TierWeak},
		{0, TierWeak},
	}

	for _, tt := range tests {
		r := &MatchResult{Score: tt.score}
		assert.Equal(t, tt.expected, r.Tier(), "score %.1f", tt.score)
	}

	assert.Equal(t, TierDisqualified, (&MatchResult{Score: 90, Disqualified: true}).Tier())
}

func TestMatchResult_String(t *testing.T) {
	r := &MatchResult{Score: 72.3}
	assert.Equal(t, "MatchResult(score=72.3, tier=Strong)", r.String())
}

func TestMatchResult_Breakdown(t *testing.T) {
	r := &MatchResult{
		Score:           73.2,
		SemanticScore:   0.8,
		SkillScore:      0.75,
		ExperienceScore: 0.56,
		ClearanceMet:    true,
	}

	b := r.Breakdown(DefaultWeights())
	assert.Equal(t, 73.2, b.TotalScore)
	assert.Equal(t, TierStrong, b.Tier)
	assert.True(t, b.ClearanceMet)
	require.Len(t, b.Components, 3)

	assert.Equal(t, ComponentScore{Score: 0.8, Weight: 0.4, Contribution: 32}, b.Components["semantic"])
	assert.Equal(t, ComponentScore{Score: 0.75, Weight: 0.4, Contribution: 30}, b.Components["skills"])
	assert.Equal(t, ComponentScore{Score: 0.56, Weight: 0.2, Contribution: 11.2}, b.Components["experience"])
}

func TestMatchResult_UpskillingDetails(t *testing.T) {
	t.Run("required first with curated and generic resources", func(t *testing.T) {
		r := &MatchResult{
			MissingRequiredSkills:  []string{"Kubernetes", "COBOL"},
			MissingPreferredSkills: []string{"Terraform"},
		}
		got := r.UpskillingDetails()
		require.Len(t, got, 3)

		assert.Equal(t, "Kubernetes", got[0].Skill)
		assert.Equal(t, ImportanceRequired, got[0].Importance)
		assert.Equal(t, "2-3 months", got[0].EstimatedTime)

		assert.Equal(t, "COBOL", got[1].Skill)
		assert.Equal(t, "Develop proficiency in COBOL", got[1].LearningPath)
		assert.Equal(t, "Varies", got[1].EstimatedTime)

		assert.Equal(t, ImportancePreferred, got[2].Importance)
		assert.Equal(t, "Infrastructure as Code", got[2].LearningPath)
	})

	t.Run("capped", func(t *testing.T) {
		r := &MatchResult{
			MissingRequiredSkills:  []string{"A", "B", "C", "D"},
			MissingPreferredSkills: []string{"E", "F"},
		}
		got := r.UpskillingDetails()
		require.Len(t, got, MaxUpskillingItems)
		assert.Equal(t, "E", got[4].Skill)
	})

	t.Run("nothing missing", func(t *testing.T) {
		got := (&MatchResult{}).UpskillingDetails()
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestUpskillingDetail_JSONFlattensResource(t *testing.T) {
	d := UpskillingDetail{Skill: "Docker", Importance: ImportanceRequired, LearningResource: GenericLearningResource("Docker")}
	data, err := json.Marshal(d)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Docker", raw["skill"])
	assert.Equal(t, "Develop proficiency in Docker", raw["learning_path"])
	assert.Len(t, raw["resources"], 3)
}

func TestLookupLearningResource(t *testing.T) {
	res, ok := LookupLearningResource("  PostgreSQL ")
	require.True(t, ok)
	assert.Equal(t, "3-4 weeks", res.EstimatedTime)

	_, ok = LookupLearningResource("Haskell")
	assert.False(t, ok)
}

func TestWeights(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	assert.Equal(t, Weights{Semantic: 0.4, Skill: 0.4, Experience: 0.2}, w)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 72.4, Round(72.36, 1))
	assert.Equal(t, 0.6667, Round(2.0/3, 4))
	assert.Equal(t, 3.0, Round(2.5, 0))
}
