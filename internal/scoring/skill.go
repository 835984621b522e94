package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// NeutralSkillScore is returned when a job lists no skills
const NeutralSkillScore = 0.5

// Default per-skill points
const (
	DefaultRequiredWeight  = 2.0
	DefaultPreferredWeight = 1.0
)

// SkillResult is the skill comparison of one resume and one job.
// Skill names come from the job's lists.
type SkillResult struct {
	Score            float64
	Matched          []string
	MissingRequired  []string
	MissingPreferred []string
	Gaps             []types.SkillGap
}

// SkillScorer awards points per matched required and preferred skill
type SkillScorer struct {
	requiredWeight  float64
	preferredWeight float64
}

// NewSkillScorer returns a scorer using the default 2:1 weighting
func NewSkillScorer() *SkillScorer {
	return &SkillScorer{requiredWeight: DefaultRequiredWeight, preferredWeight: DefaultPreferredWeight}
}

// NewWeightedSkillScorer returns a scorer with custom per-skill points
func NewWeightedSkillScorer(required, preferred float64) *SkillScorer {
	return &SkillScorer{requiredWeight: required, preferredWeight: preferred}
}

// Score compares resume skills with the job's required and preferred skills
// after synonym normalization. The score is matched points over possible
// points, capped at 1, and NeutralSkillScore when the job lists nothing.
func (s *SkillScorer) Score(resumeSkills, required, preferred []string) SkillResult {
	have := skills.NormalizeSet(resumeSkills)
	requiredKeys := skills.NormalizeSet(required)
	preferredKeys := skills.NormalizeSet(preferred)

	var matchedRequired, matchedPreferred int
	for key := range requiredKeys {
		if have[key] {
			matchedRequired++
		}
	}
	for key := range preferredKeys {
		if have[key] {
			matchedPreferred++
		}
	}

	score := NeutralSkillScore
	possible := float64(len(requiredKeys))*s.requiredWeight + float64(len(preferredKeys))*s.preferredWeight
	if possible > 0 {
		earned := float64(matchedRequired)*s.requiredWeight + float64(matchedPreferred)*s.preferredWeight
		score = math.Min(earned/possible, 1)
	}

	all := append(append([]string{}, required...), preferred...)
	result := SkillResult{
		Score:            score,
		Matched:          pick(all, func(key string) bool { return have[key] }),
		MissingRequired:  pick(required, func(key string) bool { return !have[key] }),
		MissingPreferred: pick(preferred, func(key string) bool { return !have[key] }),
	}
	result.Gaps = gaps(result.MissingRequired, result.MissingPreferred)
	return result
}

// ScoreJob is Score over a job's skill lists
func (s *SkillScorer) ScoreJob(resumeSkills []string, job *types.Job) SkillResult {
	return s.Score(resumeSkills, job.RequiredSkills, job.PreferredSkills)
}

// pick returns the trimmed job spellings whose canonical key satisfies keep,
// one per key, sorted
func pick(list []string, keep func(key string) bool) []string {
	out := []string{}
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		key := skills.Normalize(s)
		if key == "" || seen[key] || !keep(key) {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	sort.Strings(out)
	return out
}

// gaps lists required gaps before preferred ones
func gaps(missingRequired, missingPreferred []string) []types.SkillGap {
	out := make([]types.SkillGap, 0, len(missingRequired)+len(missingPreferred))
	for _, s := range missingRequired {
		out = append(out, types.SkillGap{Skill: s, Importance: types.ImportanceRequired, Category: skills.GapCategory(s)})
	}
	for _, s := range missingPreferred {
		out = append(out, types.SkillGap{Skill: s, Importance: types.ImportancePreferred, Category: skills.GapCategory(s)})
	}
	return out
}

// OverlapPercentage is the share of distinct job skills the resume has, 0-100
func OverlapPercentage(resumeSkills, jobSkills []string) float64 {
	jobKeys := skills.NormalizeSet(jobSkills)
	if len(jobKeys) == 0 {
		return 0
	}
	have := skills.NormalizeSet(resumeSkills)
	matched := 0
	for key := range jobKeys {
		if have[key] {
			matched++
		}
	}
	return float64(matched) / float64(len(jobKeys)) * 100
}
