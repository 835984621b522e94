// Package db provides PostgreSQL storage for parsed resumes, jobs and match
// results, with pgvector columns for embedding similarity search.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/embeddings"
	"github.com/jonathan/resume-matcher/internal/logger"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
	dim  int
	log  *zap.Logger
}

// Option configures a DB
type Option func(*DB)

// WithDimension sets the embedding column size. It must match the embedding
// service the vectors come from.
func WithDimension(dim int) Option {
	return func(db *DB) {
		if dim > 0 {
			db.dim = dim
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(db *DB) {
		db.log = log
	}
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string, opts ...Option) (*DB, error) {
	db := &DB{dim: embeddings.DefaultDimension}
	for _, opt := range opts {
		opt(db)
	}
	db.log = logger.OrNop(db.log)

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.pool = pool
	return db, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Dimension returns the embedding column size
func (db *DB) Dimension() int {
	return db.dim
}

// Migrate creates the pgvector extension, tables and indexes when missing
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schemaStatements(db.dim) {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration statement %d: %w", i+1, err)
		}
	}
	db.log.Info("database schema ready", zap.Int("dimension", db.dim))
	return nil
}

// schemaStatements is the DDL for the store, in order
func schemaStatements(dim int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS resumes (
			id              UUID PRIMARY KEY,
			resume_json     JSONB NOT NULL,
			raw_text        TEXT NOT NULL,
			candidate_name  VARCHAR(255),
			candidate_email VARCHAR(255),
			skills          JSONB NOT NULL DEFAULT '[]',
			file_path       VARCHAR(500),
			embedding       vector(%d),
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, dim),
		`CREATE INDEX IF NOT EXISTS ix_resumes_email ON resumes (candidate_email)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS jobs (
			id               UUID PRIMARY KEY,
			job_json         JSONB NOT NULL,
			raw_text         TEXT NOT NULL,
			title            VARCHAR(255) NOT NULL,
			company          VARCHAR(255),
			location         VARCHAR(255),
			required_skills  JSONB NOT NULL DEFAULT '[]',
			preferred_skills JSONB NOT NULL DEFAULT '[]',
			clearance_level  VARCHAR(32) NOT NULL DEFAULT 'NONE',
			embedding        vector(%d),
			is_active        BOOLEAN NOT NULL DEFAULT TRUE,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, dim),
		`CREATE INDEX IF NOT EXISTS ix_jobs_title ON jobs (title)`,
		`CREATE INDEX IF NOT EXISTS ix_jobs_company ON jobs (company)`,
		`CREATE TABLE IF NOT EXISTS match_results (
			id                  UUID PRIMARY KEY,
			resume_id           UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			job_id              UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			final_score         DOUBLE PRECISION NOT NULL,
			semantic_score      DOUBLE PRECISION NOT NULL,
			skill_score         DOUBLE PRECISION NOT NULL,
			experience_score    DOUBLE PRECISION NOT NULL,
			disqualified        BOOLEAN NOT NULL DEFAULT FALSE,
			explainability_json JSONB NOT NULL,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS ix_match_job_score ON match_results (job_id, final_score DESC)`,
		`CREATE INDEX IF NOT EXISTS ix_match_resume ON match_results (resume_id)`,
		`CREATE INDEX IF NOT EXISTS ix_resumes_embedding ON resumes USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`,
		`CREATE INDEX IF NOT EXISTS ix_jobs_embedding ON jobs USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`,
	}
}

// vectorArg converts an embedding to a query argument, NULL when absent
func (db *DB) vectorArg(embedding []float32) (any, error) {
	if embedding == nil {
		return nil, nil
	}
	if len(embedding) != db.dim {
		return nil, &DimensionError{Expected: db.dim, Got: len(embedding)}
	}
	return pgvector.NewVector(embedding), nil
}

// DimensionError reports an embedding whose size does not match the store
type DimensionError struct {
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding has %d dimensions, store expects %d", e.Got, e.Expected)
}
