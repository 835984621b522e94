// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
)

// Skill gap importance values
const (
	ImportanceRequired  = "required"
	ImportancePreferred = "preferred"
)

// Match tiers derived from the composite score
const (
	TierExcellent    = "Excellent"
	TierStrong       = "Strong"
	TierGood         = "Good"
	TierFair         = "Fair"
	TierWeak         = "Weak"
	TierDisqualified = "Disqualified"
)

// SkillGap is a job skill the resume does not show
type SkillGap struct {
	Skill         string `json:"skill"`
	Importance    string `json:"importance"`
	Category      string `json:"category"`
	LearningPath  string `json:"learning_path,omitempty"`
	EstimatedTime string `json:"estimated_time,omitempty"`
}

// MatchResult is the explainable outcome of matching one resume against one job.
// Score is on a 0-100 scale; component scores are 0-1.
type MatchResult struct {
	MatchID                   string     `json:"match_id,omitempty"`
	ResumeID                  string     `json:"resume_id,omitempty"`
	JobID                     string     `json:"job_id,omitempty"`
	JobTitle                  string     `json:"job_title,omitempty"`
	JobCompany                string     `json:"job_company,omitempty"`
	Score                     float64    `json:"score"`
	SemanticScore             float64    `json:"semantic_score"`
	SkillScore                float64    `json:"skill_score"`
	ExperienceScore           float64    `json:"experience_score"`
	MatchedSkills             []string   `json:"matched_skills"`
	MissingRequiredSkills     []string   `json:"missing_required_skills"`
	MissingPreferredSkills    []string   `json:"missing_preferred_skills"`
	SkillGaps                 []SkillGap `json:"skill_gaps"`
	UpskillingRecommendations []string   `json:"upskilling_recommendations"`
	ClearanceMet              bool       `json:"clearance_met"`
	Disqualified              bool       `json:"disqualified"`
	DisqualificationReason    string     `json:"disqualification_reason,omitempty"`
	ExperienceNote            string     `json:"experience_note,omitempty"`
	EducationNote             string     `json:"education_note,omitempty"`
	Explanation               string     `json:"explanation"`
}

// Tier buckets the composite score
func (m *MatchResult) Tier() string {
	switch {
	case m.Disqualified:
		return TierDisqualified
	case m.Score >= 85:
		return TierExcellent
	case m.Score >= 70:
		return TierStrong
	case m.Score >= 55:
		return TierGood
	case m.Score >= 40:
		return TierFair
	default:
		return TierWeak
	}
}

// String implements fmt.Stringer
func (m *MatchResult) String() string {
	return fmt.Sprintf("MatchResult(score=%.1f, tier=%s)", m.Score, m.Tier())
}

// Weights are the composite score weights. They must sum to 1.
type Weights struct {
	Semantic   float64 `json:"semantic" mapstructure:"semantic" validate:"gte=0,lte=1"`
	Skill      float64 `json:"skill" mapstructure:"skill" validate:"gte=0,lte=1"`
	Experience float64 `json:"experience" mapstructure:"experience" validate:"gte=0,lte=1"`
}

// DefaultWeights favors semantic and skill fit equally over experience
func DefaultWeights() Weights {
	return Weights{Semantic: 0.4, Skill: 0.4, Experience: 0.2}
}

// Sum returns the total of the weights
func (w Weights) Sum() float64 {
	return w.Semantic + w.Skill + w.Experience
}

// ComponentScore is one weighted part of the composite score
type ComponentScore struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// ScoreBreakdown shows how each component contributed to the composite score
type ScoreBreakdown struct {
	TotalScore   float64                   `json:"total_score"`
	Tier         string                    `json:"tier"`
	Components   map[string]ComponentScore `json:"components"`
	ClearanceMet bool                      `json:"clearance_met"`
}

// Breakdown reports each component's contribution (score x weight x 100) under w
func (m *MatchResult) Breakdown(w Weights) ScoreBreakdown {
	component := func(score, weight float64) ComponentScore {
		return ComponentScore{
			Score:        Round(score, 4),
			Weight:       weight,
			Contribution: Round(score*weight*100, 1),
		}
	}
	return ScoreBreakdown{
		TotalScore: Round(m.Score, 1),
		Tier:       m.Tier(),
		Components: map[string]ComponentScore{
			"semantic":   component(m.SemanticScore, w.Semantic),
			"skills":     component(m.SkillScore, w.Skill),
			"experience": component(m.ExperienceScore, w.Experience),
		},
		ClearanceMet: m.ClearanceMet,
	}
}

// UpskillingDetails lists learning suggestions for up to MaxUpskillingItems
// missing skills, required before preferred
func (m *MatchResult) UpskillingDetails() []UpskillingDetail {
	details := []UpskillingDetail{}
	add := func(skills []string, importance string) {
		for _, s := range skills {
			if len(details) == MaxUpskillingItems {
				return
			}
			res, ok := LookupLearningResource(s)
			if !ok {
				res = GenericLearningResource(s)
			}
			details = append(details, UpskillingDetail{Skill: s, Importance: importance, LearningResource: res})
		}
	}
	add(m.MissingRequiredSkills, ImportanceRequired)
	add(m.MissingPreferredSkills, ImportancePreferred)
	return details
}

// Round rounds x to places decimal places
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
