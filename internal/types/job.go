// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Requirement type constants for JobRequirement
const (
	RequirementExperience = "experience"
	RequirementEducation  = "education"
)

// JobRequirement is a free-text requirement found in a posting
type JobRequirement struct {
	RequirementType string `json:"requirement_type"`
	Description     string `json:"description"`
	Category        string `json:"category,omitempty"`
}

// Job is the structured record produced by the job parser
type Job struct {
	JobID                 string           `json:"job_id,omitempty" validate:"omitempty,max=64"`
	RawText               string           `json:"raw_text"`
	Title                 string           `json:"title" validate:"required,max=200"`
	Company               string           `json:"company,omitempty"`
	Location              string           `json:"location,omitempty"`
	IsRemote              bool             `json:"is_remote"`
	IsHybrid              bool             `json:"is_hybrid"`
	IsOnsite              bool             `json:"is_onsite"`
	RequiredSkills        []string         `json:"required_skills"`
	PreferredSkills       []string         `json:"preferred_skills"`
	MinExperienceYears    *int             `json:"min_experience_years,omitempty" validate:"omitempty,min=0,max=60"`
	MaxExperienceYears    *int             `json:"max_experience_years,omitempty" validate:"omitempty,min=0,max=60"`
	EducationRequirements []string         `json:"education_requirements"`
	Responsibilities      []string         `json:"responsibilities"`
	Benefits              []string         `json:"benefits"`
	Requirements          []JobRequirement `json:"requirements"`
	ClearanceLevel        ClearanceLevel   `json:"clearance_level"`
	CreatedAt             time.Time        `json:"created_at"`
}

// NewJob returns an empty job with non-nil collections
func NewJob(rawText string) *Job {
	return &Job{
		RawText:               rawText,
		Title:                 "Unknown Position",
		RequiredSkills:        []string{},
		PreferredSkills:       []string{},
		EducationRequirements: []string{},
		Responsibilities:      []string{},
		Benefits:              []string{},
		Requirements:          []JobRequirement{},
		CreatedAt:             time.Now().UTC(),
	}
}

// MinYears returns the minimum years requirement, or 0 when none was stated
func (j *Job) MinYears() int {
	if j.MinExperienceYears == nil {
		return 0
	}
	return *j.MinExperienceYears
}

// Description returns the text used for semantic comparison
func (j *Job) Description() string {
	return j.RawText
}

// AllSkills returns required followed by preferred skills, deduplicated case-insensitively
func (j *Job) AllSkills() []string {
	seen := make(map[string]bool, len(j.RequiredSkills)+len(j.PreferredSkills))
	all := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	for _, list := range [][]string{j.RequiredSkills, j.PreferredSkills} {
		for _, s := range list {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, s)
		}
	}
	return all
}

// Label returns "Title @ Company" for display
func (j *Job) Label() string {
	if j.Company == "" {
		return j.Title
	}
	return j.Title + " @ " + j.Company
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// Validate checks field bounds and that the experience range is ordered
func (j *Job) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return err
	}
	if j.MinExperienceYears != nil && j.MaxExperienceYears != nil && *j.MaxExperienceYears < *j.MinExperienceYears {
		return fmt.Errorf("max experience years %d is below minimum %d", *j.MaxExperienceYears, *j.MinExperienceYears)
	}
	return nil
}
