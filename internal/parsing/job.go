package parsing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/clearance"
	"github.com/jonathan/resume-matcher/internal/contact"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/requirements"
	"github.com/jonathan/resume-matcher/internal/types"
)

// JobInput carries fields the caller already knows. Empty fields are inferred from the text.
type JobInput struct {
	Title    string
	Company  string
	Location string
}

// JobParser turns job postings into types.Job records
type JobParser struct {
	requirements *requirements.Extractor
	log          *zap.Logger
}

// NewJobParser builds a job parser recognizing customSkills in addition to the taxonomy
func NewJobParser(log *zap.Logger, customSkills ...string) *JobParser {
	return &JobParser{
		requirements: requirements.NewExtractor(customSkills...),
		log:          logger.OrNop(log),
	}
}

// ParseText extracts a job record from posting text
func (p *JobParser) ParseText(text string, in JobInput) *types.Job {
	job := types.NewJob(text)
	job.Company = strings.TrimSpace(in.Company)
	job.Location = strings.TrimSpace(in.Location)

	job.RequiredSkills, job.PreferredSkills = p.requirements.SplitRequiredPreferred(text)
	job.Requirements = requirements.Requirements(text)
	job.EducationRequirements = requirements.EducationRequirements(text)

	if minYears, maxYears, ok := requirements.ExperienceYears(text); ok {
		job.MinExperienceYears = types.IntPtr(minYears)
		job.MaxExperienceYears = maxYears
	}

	flags := requirements.DetectLocationFlags(text)
	job.IsRemote, job.IsHybrid, job.IsOnsite = flags.Remote, flags.Hybrid, flags.Onsite

	if job.Location == "" {
		job.Location = contact.ExtractLocation(text)
	}

	job.Title = strings.TrimSpace(in.Title)
	if job.Title == "" {
		job.Title = requirements.Title(text)
	}

	job.Responsibilities = requirements.Responsibilities(text)
	job.Benefits = requirements.Benefits(text)
	job.ClearanceLevel = clearance.Detect(text)

	p.log.Debug("parsed job",
		zap.String("title", job.Title),
		zap.Int("required_skills", len(job.RequiredSkills)),
		zap.Int("preferred_skills", len(job.PreferredSkills)),
		zap.Stringer("clearance", job.ClearanceLevel))
	return job
}

// ParseFile decodes a posting document and parses it. JSON and YAML files
// are read as job records.
func (p *JobParser) ParseFile(ctx context.Context, path string, in JobInput) (*types.Job, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Cause: err}
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if IsRecord(path) {
		return p.ParseRecord(ctx, path, in)
	}
	if !ingestion.IsSupported(path) {
		return nil, &UnsupportedFileTypeError{Extension: ingestion.Extension(path), Supported: supportedExtensions()}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job posting: %w", err)
	}
	return p.ParseText(doc.Text, in), nil
}

// ParseURL fetches a posting page and parses it. The page heading and site
// name fill in a missing title and company.
func (p *JobParser) ParseURL(ctx context.Context, urlStr string, in JobInput, opts ingestion.URLOptions) (*types.Job, error) {
	if opts.Logger == nil {
		opts.Logger = p.log
	}
	doc, err := ingestion.IngestFromURL(ctx, urlStr, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest job posting: %w", err)
	}

	if in.Title == "" {
		in.Title = doc.Metadata.Title
	}
	if in.Company == "" {
		in.Company = doc.Metadata.Company
	}
	return p.ParseText(doc.Text, in), nil
}
