package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

type parseJobFlags struct {
	out          string
	url          string
	useBrowser   bool
	title        string
	company      string
	location     string
	customSkills []string
}

func newParseJobCmd(a *app) *cobra.Command {
	f := &parseJobFlags{}
	cmd := &cobra.Command{
		Use:   "parse-job [file]",
		Short: "Parse a job posting into structured Job JSON",
		Long:  "Parse a job posting from a file or a URL into structured JSON that validates against the job schema.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if (path == "") == (f.url == "") {
				return fmt.Errorf("must provide exactly one of a job file or --url")
			}
			return runParseJob(cmd, a, f, path)
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().StringVar(&f.url, "url", "", "Job posting URL to fetch instead of a file")
	cmd.Flags().BoolVar(&f.useBrowser, "use-browser", false, "Render pages with too little static text in headless Chrome")
	cmd.Flags().StringVar(&f.title, "title", "", "Job title (inferred from the posting when empty)")
	cmd.Flags().StringVar(&f.company, "company", "", "Company name")
	cmd.Flags().StringVar(&f.location, "location", "", "Job location (inferred from the posting when empty)")
	cmd.Flags().StringSliceVar(&f.customSkills, "skills", nil, "Extra skills to recognize, comma separated")
	return cmd
}

func runParseJob(cmd *cobra.Command, a *app, f *parseJobFlags, path string) error {
	ctx := cmd.Context()

	in := parsing.JobInput{Title: f.title, Company: f.company, Location: f.location}
	var (
		job *types.Job
		err error
	)
	if f.url != "" {
		job, err = parseJobURL(cmd, a, f.url, in, f.useBrowser, f.customSkills)
	} else {
		job, err = parsing.NewJobParser(a.log, f.customSkills...).ParseFile(ctx, path, in)
	}
	if err != nil {
		return fmt.Errorf("failed to parse job: %w", err)
	}

	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}
	if err := a.checkSchema(schemas.ValidateJob(job)); err != nil {
		return err
	}

	if p := a.printer(cmd); p != nil {
		p.PrintJob(job)
	}

	database, err := a.store(ctx)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()

		svc, err := a.embedder(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()

		vec, err := embedText(ctx, svc, job.Description())
		if err != nil {
			return err
		}
		id, err := database.SaveJob(ctx, job, vec)
		if err != nil {
			return err
		}
		a.log.Info("stored job", zap.String(logger.FieldJobID, id.String()))
	}

	return writeJSON(cmd, job, f.out)
}

// parseJobURL fetches and parses a posting page with the configured fetch settings
func parseJobURL(cmd *cobra.Command, a *app, url string, in parsing.JobInput, useBrowser bool, customSkills []string) (*types.Job, error) {
	fetchOpts := fetch.DefaultOptions()
	if a.cfg.Fetch.Timeout > 0 {
		fetchOpts.Timeout = a.cfg.Fetch.Timeout
	}
	return parsing.NewJobParser(a.log, customSkills...).ParseURL(cmd.Context(), url, in, ingestion.URLOptions{
		UseBrowser: useBrowser || a.cfg.Fetch.UseBrowser,
		Fetch:      fetchOpts,
		Logger:     a.log,
	})
}
