package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embeddings"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

// app is the state shared by every subcommand once flags are parsed
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "resume_matcher",
		Short:         "Resume and job posting matcher",
		Long:          "Parses resumes and job postings into structured records and scores how well a resume fits each job, with explanations and upskilling suggestions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML or JSON config file (default ./resume-matcher.yaml when present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print human-readable summaries to stderr")
	flags.Bool("json", false, "Emit logs as JSON")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("db-url", "", "PostgreSQL URL; when set, parsed records and results are stored (env: DATABASE_URL)")
	flags.String("embedding-provider", "", "Embedding provider: hashing or gemini")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup(cmd)
	}
	root.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		if a.log != nil {
			_ = a.log.Sync()
		}
	}

	root.AddCommand(
		newParseResumeCmd(a),
		newParseJobCmd(a),
		newMatchCmd(a),
		newRankCmd(a),
		newNearestJobsCmd(a),
		newStoredMatchesCmd(a),
		newMigrateCmd(a),
	)
	return root
}

// setup loads configuration with the persistent flags bound over it and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	flags := cmd.Flags()
	for key, name := range map[string]string{
		"log.json":           "json",
		"log.debug":          "debug",
		"database-url":       "db-url",
		"embedding.provider": "embedding-provider",
	} {
		if err := loader.BindFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := loader.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.log = log
	if file := loader.ConfigFile(); file != "" {
		a.log.Debug("loaded config", zap.String("file", file))
	}
	return nil
}

// printer returns the stderr printer when --verbose is set
func (a *app) printer(cmd *cobra.Command) *observability.Printer {
	if !a.verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// embedder builds the configured embedding service. Callers must Close it.
func (a *app) embedder(ctx context.Context) (*embeddings.Handle, error) {
	h, err := embeddings.New(ctx, a.cfg.EmbeddingOptions(), a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding service: %w", err)
	}
	return h, nil
}

// store connects to the database, or returns nil when no URL is configured
func (a *app) store(ctx context.Context) (*db.DB, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, a.cfg.DatabaseURL,
		db.WithDimension(a.cfg.Embedding.Dimension),
		db.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	return database, nil
}

// checkSchema turns a schema violation into an error and downgrades schema
// loading problems to a warning
func (a *app) checkSchema(err error) error {
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	case errors.As(err, &schemaLoadErr):
		a.log.Warn("could not validate output against schema", zap.Error(err))
		return nil
	default:
		a.log.Warn("could not validate output", zap.Error(err))
		return nil
	}
}

// writeJSON writes v as indented JSON to outPath, or to the command's stdout when outPath is empty
func writeJSON(cmd *cobra.Command, v any, outPath string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(outPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// embedText encodes text, returning nil for blank input
func embedText(ctx context.Context, svc embeddings.Service, text string) ([]float32, error) {
	if isBlank(text) {
		return nil, nil
	}
	vec, err := svc.Encode(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	return vec, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
