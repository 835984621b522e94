package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// rankedResume is one line of rank output
type rankedResume struct {
	Rank   int    `json:"rank"`
	Resume string `json:"resume"`
	*types.MatchResult
}

func newRankCmd(a *app) *cobra.Command {
	var (
		out string
		top int
	)
	cmd := &cobra.Command{
		Use:   "rank <job> <resume>...",
		Short: "Rank resumes against a single job posting",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative")
			}
			return runRank(cmd, a, args[0], args[1:], top, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().IntVar(&top, "top", 0, "Return only the k best resumes (0 for all)")
	return cmd
}

func runRank(cmd *cobra.Command, a *app, jobArg string, resumePaths []string, top int, out string) error {
	ctx := cmd.Context()

	job, err := loadJob(cmd, a, jobArg, false)
	if err != nil {
		return err
	}

	parser := parsing.NewResumeParser(parsing.WithLogger(a.log))
	candidates := make([]matching.Candidate, 0, len(resumePaths))
	for _, path := range resumePaths {
		resume, err := parser.ParseFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to parse resume %s: %w", path, err)
		}
		candidates = append(candidates, resume)
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

	ranked, err := matcher.RankResumes(ctx, job, candidates, top)
	if err != nil {
		return fmt.Errorf("failed to rank resumes: %w", err)
	}

	output := make([]rankedResume, 0, len(ranked))
	results := make([]*types.MatchResult, 0, len(ranked))
	for i, r := range ranked {
		if err := a.checkSchema(schemas.ValidateMatchResult(r.Result)); err != nil {
			return err
		}
		output = append(output, rankedResume{Rank: i + 1, Resume: resumePaths[r.Index], MatchResult: r.Result})
		results = append(results, r.Result)
	}

	if p := a.printer(cmd); p != nil {
		p.PrintJob(job)
		p.PrintRanking(results)
	}
	return writeJSON(cmd, output, out)
}
