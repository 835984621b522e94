package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// nearestJob is one line of nearest-jobs output
type nearestJob struct {
	JobID      string  `json:"job_id"`
	Title      string  `json:"title"`
	Company    string  `json:"company,omitempty"`
	Similarity float64 `json:"similarity"`
}

func newNearestJobsCmd(a *app) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "nearest-jobs <resume>",
		Short: "List stored jobs closest to a resume by embedding similarity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNearestJobs(cmd, a, args[0], k)
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 10, "Number of jobs to return")
	return cmd
}

func runNearestJobs(cmd *cobra.Command, a *app, path string, k int) error {
	ctx := cmd.Context()

	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL required (set DATABASE_URL or use --db-url)")
	}

	resume, err := parsing.NewResumeParser(parsing.WithLogger(a.log)).ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	if isBlank(resume.RawText) {
		return fmt.Errorf("no text could be extracted from %s", path)
	}

	svc, err := a.embedder(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	vec, err := embedText(ctx, svc, resume.RawText)
	if err != nil {
		return err
	}

	database, err := a.store(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	neighbors, err := database.NearestJobs(ctx, vec, k)
	if err != nil {
		return err
	}

	out := make([]nearestJob, 0, len(neighbors))
	for _, n := range neighbors {
		out = append(out, nearestJob{
			JobID:      n.ID.String(),
			Title:      n.Job.Title,
			Company:    n.Job.Company,
			Similarity: n.Similarity,
		})
	}
	return writeJSON(cmd, out, "")
}
