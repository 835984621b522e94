// Package matching scores resumes against jobs. A Matcher applies the
// clearance gate, combines the semantic, skill and experience scores into a
// 0-100 composite and explains the result.
package matching

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/clearance"
	"github.com/jonathan/resume-matcher/internal/embeddings"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// weightTolerance is how far the weight sum may drift from 1
const weightTolerance = 0.01

// DefaultConcurrency bounds parallel pair scoring in batch operations
const DefaultConcurrency = 8

// Candidate is what the matcher needs from a resume.
// *types.Resume satisfies it.
type Candidate interface {
	Text() string
	SkillList() []string
	ExperienceEntries() []types.WorkExperience
}

// educationSource is implemented by candidates that carry education entries
type educationSource interface {
	EducationEntries() []types.Education
}

// WeightsError reports composite weights that are negative or do not sum to 1
type WeightsError struct {
	Weights types.Weights
}

func (e *WeightsError) Error() string {
	w := e.Weights
	return fmt.Sprintf("weights must be non-negative and sum to 1.0, got semantic=%.2f skill=%.2f experience=%.2f (sum %.2f)",
		w.Semantic, w.Skill, w.Experience, w.Sum())
}

// ValidateWeights checks that the weights are non-negative and sum to 1 within tolerance
func ValidateWeights(w types.Weights) error {
	if w.Semantic < 0 || w.Skill < 0 || w.Experience < 0 || math.Abs(w.Sum()-1) >= weightTolerance {
		return &WeightsError{Weights: w}
	}
	return nil
}

// Option configures a Matcher
type Option func(*Matcher)

// WithEmbeddingService sets the service used for semantic similarity
func WithEmbeddingService(svc embeddings.Service) Option {
	return func(m *Matcher) {
		m.svc = svc
	}
}

// WithExperienceScorer replaces the experience scorer, mainly to fix the clock
func WithExperienceScorer(s *scoring.ExperienceScorer) Option {
	return func(m *Matcher) {
		m.experience = s
	}
}

// WithSkillScorer replaces the skill scorer
func WithSkillScorer(s *scoring.SkillScorer) Option {
	return func(m *Matcher) {
		m.skills = s
	}
}

// WithConcurrency bounds the number of pairs scored at once in batch calls
func WithConcurrency(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithLogger sets the matcher's logger
func WithLogger(log *zap.Logger) Option {
	return func(m *Matcher) {
		m.log = log
	}
}

// Matcher computes explainable match results. It is safe for concurrent use
// when its embedding service is.
type Matcher struct {
	weights     types.Weights
	svc         embeddings.Service
	semantic    *scoring.SemanticScorer
	skills      *scoring.SkillScorer
	experience  *scoring.ExperienceScorer
	concurrency int
	log         *zap.Logger
}

// NewMatcher validates the weights and builds a matcher. Without an
// embedding service it uses the local hashing embedder behind a memory cache.
func NewMatcher(weights types.Weights, opts ...Option) (*Matcher, error) {
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}

	m := &Matcher{
		weights:     weights,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.log = logger.OrNop(m.log)
	if m.svc == nil {
		m.svc = embeddings.NewCachedService(
			embeddings.NewHashingService(embeddings.DefaultDimension),
			fmt.Sprintf("%s-%d", embeddings.ProviderHashing, embeddings.DefaultDimension),
			m.log,
			embeddings.NewMemoryCache(embeddings.DefaultCacheSize),
		)
	}
	m.semantic = scoring.NewSemanticScorer(m.svc)
	if m.skills == nil {
		m.skills = scoring.NewSkillScorer()
	}
	if m.experience == nil {
		m.experience = scoring.NewExperienceScorer()
	}
	return m, nil
}

// Weights returns the composite weights
func (m *Matcher) Weights() types.Weights {
	return m.weights
}

// MatchOptions carries precomputed embeddings
type MatchOptions struct {
	ResumeEmbedding []float32
	JobEmbedding    []float32
}

// Match scores one candidate against one job. A candidate whose clearance
// is below the job's requirement is disqualified without running the scorers.
func (m *Matcher) Match(ctx context.Context, c Candidate, job *types.Job, opts *MatchOptions) (*types.MatchResult, error) {
	if opts == nil {
		opts = &MatchOptions{}
	}
	level := clearance.Detect(c.Text())
	if !clearance.Meets(level, job.ClearanceLevel) {
		return disqualified(job, level), nil
	}

	semantic, err := m.semantic.ScorePair(ctx, c.Text(), job.Description(), opts.ResumeEmbedding, opts.JobEmbedding)
	if err != nil {
		return nil, fmt.Errorf("failed to compute embeddings: %w", err)
	}
	return m.score(c, job, semantic), nil
}

// score runs the three scorers for a candidate that passed the clearance gate
func (m *Matcher) score(c Candidate, job *types.Job, semantic float64) *types.MatchResult {

	skill := m.skills.ScoreJob(c.SkillList(), job)

	years, known := m.experience.EstimateYears(c.Text(), c.ExperienceEntries())
	experience := m.experience.Score(years, known, job.MinYears())

	composite := (m.weights.Semantic*semantic + m.weights.Skill*skill.Score + m.weights.Experience*experience) * 100

	missing := append(append([]string{}, skill.MissingRequired...), skill.MissingPreferred...)
	result := &types.MatchResult{
		JobID:                     job.JobID,
		JobTitle:                  job.Title,
		JobCompany:                job.Company,
		Score:                     types.Round(composite, 1),
		SemanticScore:             types.Round(semantic, 4),
		SkillScore:                types.Round(skill.Score, 4),
		ExperienceScore:           types.Round(experience, 4),
		MatchedSkills:             skill.Matched,
		MissingRequiredSkills:     skill.MissingRequired,
		MissingPreferredSkills:    skill.MissingPreferred,
		SkillGaps:                 skill.Gaps,
		UpskillingRecommendations: Recommendations(missing),
		ClearanceMet:              true,
		ExperienceNote:            experienceNote(c, job),
		EducationNote:             educationNote(c, job),
	}
	result.Explanation = Explain(result)

	m.log.Debug("scored match",
		zap.String(logger.FieldJobID, job.JobID),
		zap.String("job", job.Label()),
		zap.Float64("score", result.Score),
		zap.Float64("semantic", result.SemanticScore),
		zap.Float64("skill", result.SkillScore),
		zap.Float64("experience", result.ExperienceScore))
	return result
}

// disqualified builds the result for a failed clearance gate
func disqualified(job *types.Job, candidate types.ClearanceLevel) *types.MatchResult {
	result := &types.MatchResult{
		JobID:                     job.JobID,
		JobTitle:                  job.Title,
		JobCompany:                job.Company,
		MatchedSkills:             []string{},
		MissingRequiredSkills:     []string{},
		MissingPreferredSkills:    []string{},
		SkillGaps:                 []types.SkillGap{},
		UpskillingRecommendations: []string{},
		Disqualified:              true,
		DisqualificationReason: fmt.Sprintf("Clearance requirement not met. Job requires %s, resume shows %s.",
			job.ClearanceLevel, candidate),
	}
	result.Explanation = Explain(result)
	return result
}
