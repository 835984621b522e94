package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SaveJob stores a parsed job with its embedding and returns the new ID.
// The ID is also written to j.JobID so later match results reference it.
func (db *DB) SaveJob(ctx context.Context, j *types.Job, embedding []float32) (uuid.UUID, error) {
	vec, err := db.vectorArg(embedding)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	j.JobID = id.String()

	jobJSON, err := json.Marshal(j)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job: %w", err)
	}
	requiredJSON, err := json.Marshal(j.RequiredSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal required skills: %w", err)
	}
	preferredJSON, err := json.Marshal(j.PreferredSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal preferred skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO jobs (id, job_json, raw_text, title, company, location,
		                   required_skills, preferred_skills, clearance_level, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, jobJSON, j.RawText, j.Title, nullable(j.Company), nullable(j.Location),
		requiredJSON, preferredJSON, j.ClearanceLevel.Code(), vec,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job: %w", err)
	}

	db.log.Debug("saved job", zap.String(logger.FieldJobID, id.String()), zap.String("title", j.Title))
	return id, nil
}

// GetJob retrieves a job by ID, or nil when it does not exist
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*StoredJob, error) {
	var s StoredJob
	var jobJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_json, is_active, created_at FROM jobs WHERE id = $1`,
		id,
	).Scan(&s.ID, &jobJSON, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if err := json.Unmarshal(jobJSON, &s.Job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &s, nil
}

// JobFilters holds optional filters for listing jobs
type JobFilters struct {
	Company    string
	ActiveOnly bool
	Limit      int
}

// ListJobs retrieves recent jobs with optional filters
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]StoredJob, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, job_json, is_active, created_at FROM jobs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Company != "" {
		query += fmt.Sprintf(" AND company ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}
	if filters.ActiveOnly {
		query += " AND is_active"
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []StoredJob
	for rows.Next() {
		var s StoredJob
		var jobJSON []byte
		if err := rows.Scan(&s.ID, &jobJSON, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if err := json.Unmarshal(jobJSON, &s.Job); err != nil {
			return nil, fmt.Errorf("failed to decode job %s: %w", s.ID, err)
		}
		jobs = append(jobs, s)
	}
	return jobs, rows.Err()
}

// NearestJobs returns the k active jobs whose embeddings are closest to the
// given vector by cosine distance
func (db *DB) NearestJobs(ctx context.Context, embedding []float32, k int) ([]JobNeighbor, error) {
	vec, err := db.vectorArg(embedding)
	if err != nil {
		return nil, err
	}
	if vec == nil {
		return nil, fmt.Errorf("embedding is required for similarity search")
	}
	if k <= 0 {
		k = 10
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_json, is_active, created_at, 1 - (embedding <=> $1) AS similarity
		 FROM jobs
		 WHERE is_active AND embedding IS NOT NULL
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, k,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	var out []JobNeighbor
	for rows.Next() {
		var n JobNeighbor
		var jobJSON []byte
		if err := rows.Scan(&n.ID, &jobJSON, &n.IsActive, &n.CreatedAt, &n.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if err := json.Unmarshal(jobJSON, &n.Job); err != nil {
			return nil, fmt.Errorf("failed to decode job %s: %w", n.ID, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetJobEmbedding returns the stored embedding, or nil when none was saved
func (db *DB) GetJobEmbedding(ctx context.Context, id uuid.UUID) ([]float32, error) {
	return db.embedding(ctx, `SELECT embedding FROM jobs WHERE id = $1`, id)
}

// DeactivateJob hides a job from similarity search
func (db *DB) DeactivateJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `UPDATE jobs SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

func (db *DB) embedding(ctx context.Context, query string, id uuid.UUID) ([]float32, error) {
	var vec *pgvector.Vector
	err := db.pool.QueryRow(ctx, query, id).Scan(&vec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get embedding: %w", err)
	}
	if vec == nil {
		return nil, nil
	}
	return vec.Slice(), nil
}
