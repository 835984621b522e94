package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embeddings"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

type matchFlags struct {
	out              string
	top              int
	minScore         float64
	requireClearance bool
	sort             bool
	useBrowser       bool
}

func newMatchCmd(a *app) *cobra.Command {
	f := &matchFlags{}
	cmd := &cobra.Command{
		Use:   "match <resume> <job>...",
		Short: "Score a resume against one or more job postings",
		Long: "Score a resume against job postings given as files or URLs. One job prints a single MatchResult; " +
			"several print a list in input order, or best first with --sort, --top, --min-score or --require-clearance.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.minScore < 0 || f.minScore > 100 {
				return fmt.Errorf("--min-score must be between 0 and 100")
			}
			if f.top < 0 {
				return fmt.Errorf("--top must not be negative")
			}
			return runMatch(cmd, a, f, args[0], args[1:])
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().IntVar(&f.top, "top", 0, "Return only the k best matches (0 for all)")
	cmd.Flags().Float64Var(&f.minScore, "min-score", 0, "Drop matches scoring below this value")
	cmd.Flags().BoolVar(&f.requireClearance, "require-clearance", false, "Drop jobs whose clearance requirement the resume does not meet")
	cmd.Flags().BoolVar(&f.sort, "sort", false, "Order results by score, best first")
	cmd.Flags().BoolVar(&f.useBrowser, "use-browser", false, "Render job URLs with too little static text in headless Chrome")
	return cmd
}

// filtering reports whether any option narrows the batch to top matches
func (f *matchFlags) filtering() bool {
	return f.top > 0 || f.minScore > 0 || f.requireClearance
}

func runMatch(cmd *cobra.Command, a *app, f *matchFlags, resumePath string, jobArgs []string) error {
	ctx := cmd.Context()

	resume, err := parsing.NewResumeParser(parsing.WithLogger(a.log)).ParseFile(ctx, resumePath)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	for _, msg := range resume.ParseErrors {
		a.log.Warn("resume parse error", zap.String(logger.FieldSource, resumePath), zap.String("error", msg))
	}

	jobs := make([]*types.Job, 0, len(jobArgs))
	for _, arg := range jobArgs {
		job, err := loadJob(cmd, a, arg, f.useBrowser)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	svc, err := a.embedder(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	matcher, err := matching.NewMatcher(a.cfg.Matching.Weights,
		matching.WithEmbeddingService(svc),
		matching.WithConcurrency(a.cfg.Matching.Concurrency),
		matching.WithLogger(a.log))
	if err != nil {
		return err
	}

	database, err := a.store(ctx)
	if err != nil {
		return err
	}
	var resumeID uuid.UUID
	if database != nil {
		defer database.Close()
		if resumeID, err = storeInputs(ctx, database, svc, resume, jobs); err != nil {
			return err
		}
	}

	var results []*types.MatchResult
	switch {
	case len(jobs) == 1 && !f.filtering():
		r, err := matcher.Match(ctx, resume, jobs[0], nil)
		if err != nil {
			return err
		}
		results = []*types.MatchResult{r}
	case f.filtering():
		results, err = matcher.TopMatches(ctx, resume, jobs, f.top, f.minScore, f.requireClearance)
	default:
		results, err = matcher.MatchBatch(ctx, resume, jobs, &matching.BatchOptions{SortByScore: f.sort})
	}
	if err != nil {
		return fmt.Errorf("failed to match: %w", err)
	}

	for _, r := range results {
		if err := a.checkSchema(schemas.ValidateMatchResult(r)); err != nil {
			return err
		}
		if database != nil {
			jobID, err := uuid.Parse(r.JobID)
			if err != nil {
				return fmt.Errorf("match result has no stored job: %w", err)
			}
			if _, err := database.SaveMatch(ctx, resumeID, jobID, r); err != nil {
				return err
			}
		}
	}

	if p := a.printer(cmd); p != nil {
		for _, r := range results {
			p.PrintMatch(r, matcher.Weights())
		}
		if len(results) > 1 {
			p.PrintRanking(results)
		}
	}

	if len(jobs) == 1 && !f.filtering() {
		return writeJSON(cmd, results[0], f.out)
	}
	return writeJSON(cmd, results, f.out)
}

// loadJob parses a job argument, fetching it when it is an http(s) URL
func loadJob(cmd *cobra.Command, a *app, arg string, useBrowser bool) (*types.Job, error) {
	var (
		job *types.Job
		err error
	)
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		job, err = parseJobURL(cmd, a, arg, parsing.JobInput{}, useBrowser, nil)
	} else {
		job, err = parsing.NewJobParser(a.log).ParseFile(cmd.Context(), arg, parsing.JobInput{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse job %s: %w", arg, err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job %s: %w", arg, err)
	}
	return job, nil
}

// storeInputs saves the resume and jobs with their embeddings. Saving a job
// sets its JobID, which the match results then carry.
func storeInputs(ctx context.Context, database *db.DB, svc embeddings.Service, resume *types.Resume, jobs []*types.Job) (uuid.UUID, error) {
	vec, err := embedText(ctx, svc, resume.RawText)
	if err != nil {
		return uuid.Nil, err
	}
	resumeID, err := database.SaveResume(ctx, resume, vec)
	if err != nil {
		return uuid.Nil, err
	}

	for _, job := range jobs {
		vec, err := embedText(ctx, svc, job.Description())
		if err != nil {
			return uuid.Nil, err
		}
		if _, err := database.SaveJob(ctx, job, vec); err != nil {
			return uuid.Nil, err
		}
	}
	return resumeID, nil
}
