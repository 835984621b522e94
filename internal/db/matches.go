package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// SaveMatch stores a match result for a resume/job pair and returns its ID.
// The result's MatchID, ResumeID and JobID are filled in.
func (db *DB) SaveMatch(ctx context.Context, resumeID, jobID uuid.UUID, r *types.MatchResult) (uuid.UUID, error) {
	id := uuid.New()
	r.MatchID = id.String()
	r.ResumeID = resumeID.String()
	r.JobID = jobID.String()

	resultJSON, err := json.Marshal(r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal match result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO match_results (id, resume_id, job_id, final_score, semantic_score, skill_score,
		                            experience_score, disqualified, explainability_json)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, resumeID, jobID, r.Score, r.SemanticScore, r.SkillScore, r.ExperienceScore, r.Disqualified, resultJSON,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save match result: %w", err)
	}
	return id, nil
}

// TopMatchesForJob returns the best stored results for a job, highest score
// first. Disqualified results are left out.
func (db *DB) TopMatchesForJob(ctx context.Context, jobID uuid.UUID, limit int) ([]StoredMatch, error) {
	if limit <= 0 {
		limit = 10
	}
	return db.queryMatches(ctx,
		`SELECT id, resume_id, job_id, explainability_json, created_at
		 FROM match_results
		 WHERE job_id = $1 AND NOT disqualified
		 ORDER BY final_score DESC
		 LIMIT $2`,
		jobID, limit,
	)
}

// MatchesForResume returns every stored result for a resume, highest score first
func (db *DB) MatchesForResume(ctx context.Context, resumeID uuid.UUID) ([]StoredMatch, error) {
	return db.queryMatches(ctx,
		`SELECT id, resume_id, job_id, explainability_json, created_at
		 FROM match_results
		 WHERE resume_id = $1
		 ORDER BY final_score DESC`,
		resumeID,
	)
}

func (db *DB) queryMatches(ctx context.Context, query string, args ...any) ([]StoredMatch, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var out []StoredMatch
	for rows.Next() {
		var m StoredMatch
		var resultJSON []byte
		if err := rows.Scan(&m.ID, &m.ResumeID, &m.JobID, &resultJSON, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &m.Result); err != nil {
			return nil, fmt.Errorf("failed to decode match result %s: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
