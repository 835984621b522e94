package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// StoredResume is a resume row
type StoredResume struct {
	ID        uuid.UUID     `json:"id"`
	Resume    *types.Resume `json:"resume"`
	CreatedAt time.Time     `json:"created_at"`
}

// StoredJob is a job row
type StoredJob struct {
	ID        uuid.UUID  `json:"id"`
	Job       *types.Job `json:"job"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// JobNeighbor is a job returned by similarity search. Similarity is
// 1 - cosine distance.
type JobNeighbor struct {
	StoredJob
	Similarity float64 `json:"similarity"`
}

// StoredMatch is a match_results row
type StoredMatch struct {
	ID        uuid.UUID          `json:"id"`
	ResumeID  uuid.UUID          `json:"resume_id"`
	JobID     uuid.UUID          `json:"job_id"`
	Result    *types.MatchResult `json:"result"`
	CreatedAt time.Time          `json:"created_at"`
}
