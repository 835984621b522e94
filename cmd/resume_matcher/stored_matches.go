package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStoredMatchesCmd(a *app) *cobra.Command {
	var (
		jobID    string
		resumeID string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "stored-matches",
		Short: "List stored match results for a job or a resume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (jobID == "") == (resumeID == "") {
				return fmt.Errorf("must provide exactly one of --job-id or --resume-id")
			}
			if a.cfg.DatabaseURL == "" {
				return fmt.Errorf("database URL required (set DATABASE_URL or use --db-url)")
			}

			ctx := cmd.Context()
			database, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if jobID != "" {
				id, err := uuid.Parse(jobID)
				if err != nil {
					return fmt.Errorf("invalid job-id: %w", err)
				}
				matches, err := database.TopMatchesForJob(ctx, id, limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd, matches, "")
			}

			id, err := uuid.Parse(resumeID)
			if err != nil {
				return fmt.Errorf("invalid resume-id: %w", err)
			}
			matches, err := database.MatchesForResume(ctx, id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, matches, "")
		},
	}
	cmd.Flags().StringVar(&jobID, "job-id", "", "Stored job ID; lists its best qualified candidates")
	cmd.Flags().StringVar(&resumeID, "resume-id", "", "Stored resume ID; lists all its results")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results for --job-id")
	return cmd
}
