package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/types"
)

// SaveResume stores a parsed resume with its embedding and returns the new ID.
// embedding may be nil.
func (db *DB) SaveResume(ctx context.Context, r *types.Resume, embedding []float32) (uuid.UUID, error) {
	vec, err := db.vectorArg(embedding)
	if err != nil {
		return uuid.Nil, err
	}

	resumeJSON, err := json.Marshal(r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	skillsJSON, err := json.Marshal(r.Skills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO resumes (id, resume_json, raw_text, candidate_name, candidate_email, skills, file_path, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, resumeJSON, r.RawText, nullable(r.Contact.Name), nullable(r.Contact.Email), skillsJSON, nullable(r.FilePath), vec,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}

	db.log.Debug("saved resume", zap.String(logger.FieldResumeID, id.String()))
	return id, nil
}

// GetResume retrieves a resume by ID, or nil when it does not exist
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*StoredResume, error) {
	var s StoredResume
	var resumeJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_json, created_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&s.ID, &resumeJSON, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(resumeJSON, &s.Resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume %s: %w", id, err)
	}
	return &s, nil
}

// GetResumeEmbedding returns the stored embedding, or nil when none was saved
func (db *DB) GetResumeEmbedding(ctx context.Context, id uuid.UUID) ([]float32, error) {
	return db.embedding(ctx, `SELECT embedding FROM resumes WHERE id = $1`, id)
}

// DeleteResume removes a resume and its match results
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// nullable maps "" to NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
