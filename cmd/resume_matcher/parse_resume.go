package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

type parseResumeFlags struct {
	out          string
	customSkills []string
	noSoftSkills bool
}

func newParseResumeCmd(a *app) *cobra.Command {
	f := &parseResumeFlags{}
	cmd := &cobra.Command{
		Use:   "parse-resume <file>",
		Short: "Parse a resume into structured Resume JSON",
		Long:  "Parse a PDF, Word, RTF, OpenDocument, Markdown or text resume into structured JSON that validates against the resume schema.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParseResume(cmd, a, f, args[0])
		},
	}
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().StringSliceVar(&f.customSkills, "skills", nil, "Extra skills to recognize, comma separated")
	cmd.Flags().BoolVar(&f.noSoftSkills, "no-soft-skills", false, "Do not extract soft skills")
	return cmd
}

func runParseResume(cmd *cobra.Command, a *app, f *parseResumeFlags, path string) error {
	ctx := cmd.Context()

	opts := []parsing.ResumeOption{parsing.WithLogger(a.log), parsing.WithCustomSkills(f.customSkills...)}
	if f.noSoftSkills {
		opts = append(opts, parsing.WithoutSoftSkills())
	}
	resume, err := parsing.NewResumeParser(opts...).ParseFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	if err := a.checkSchema(schemas.ValidateResume(resume)); err != nil {
		return err
	}

	if p := a.printer(cmd); p != nil {
		p.PrintResume(resume)
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

		vec, err := embedText(ctx, svc, resume.RawText)
		if err != nil {
			return err
		}
		id, err := database.SaveResume(ctx, resume, vec)
		if err != nil {
			return err
		}
		a.log.Info("stored resume", zap.String(logger.FieldResumeID, id.String()))
	}

	return writeJSON(cmd, resume, f.out)
}
