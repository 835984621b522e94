package parsing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
)

// recordTypes are the structured job record formats ParseFile accepts
var recordTypes = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// IsRecord reports whether path names a structured job record rather than a posting document
func IsRecord(path string) bool {
	return recordTypes[ingestion.Extension(path)]
}

// supportedExtensions lists posting document and job record extensions
func supportedExtensions() []string {
	exts := ingestion.SupportedExtensions()
	for ext := range recordTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ParseRecord reads a JSON or YAML job record. Fields the record leaves out
// are extracted from its raw_text (or description) the way ParseText would.
// Non-empty fields of in override the record.
func (p *JobParser) ParseRecord(ctx context.Context, path string, in JobInput) (*types.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job record: %w", err)
	}

	record := map[string]any{}
	switch ingestion.Extension(path) {
	case ".json":
		err = json.Unmarshal(data, &record)
	default:
		err = yaml.Unmarshal(data, &record)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode job record %s: %w", path, err)
	}

	job, err := types.JobFromMap(record)
	if err != nil {
		return nil, err
	}
	p.fillFromText(job, record)
	if in.Title != "" {
		job.Title = strings.TrimSpace(in.Title)
	}
	if in.Company != "" {
		job.Company = strings.TrimSpace(in.Company)
	}
	if in.Location != "" {
		job.Location = strings.TrimSpace(in.Location)
	}

	p.log.Debug("loaded job record",
		zap.String("path", path),
		zap.String("title", job.Title),
		zap.Int("required_skills", len(job.RequiredSkills)))
	return job, nil
}

// fillFromText extracts every field missing from record out of the job's text
func (p *JobParser) fillFromText(job *types.Job, record map[string]any) {
	if job.Description() == "" {
		return
	}
	parsed := p.ParseText(job.Description(), JobInput{})

	missing := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := record[k]; ok {
				return false
			}
		}
		return true
	}

	if missing("title") {
		job.Title = parsed.Title
	}
	if missing("location") {
		job.Location = parsed.Location
	}
	if missing("is_remote", "is_hybrid", "is_onsite") {
		job.IsRemote, job.IsHybrid, job.IsOnsite = parsed.IsRemote, parsed.IsHybrid, parsed.IsOnsite
	}
	if missing("required_skills", "preferred_skills") {
		job.RequiredSkills, job.PreferredSkills = parsed.RequiredSkills, parsed.PreferredSkills
	}
	if missing("min_experience_years", "max_experience_years") {
		job.MinExperienceYears, job.MaxExperienceYears = parsed.MinExperienceYears, parsed.MaxExperienceYears
	}
	if missing("education_requirements") {
		job.EducationRequirements = parsed.EducationRequirements
	}
	if missing("responsibilities") {
		job.Responsibilities = parsed.Responsibilities
	}
	if missing("benefits") {
		job.Benefits = parsed.Benefits
	}
	if missing("requirements") {
		job.Requirements = parsed.Requirements
	}
	if missing("clearance_level") {
		job.ClearanceLevel = parsed.ClearanceLevel
	}
}
