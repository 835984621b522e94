// Package parsing assembles resume and job records from text, files and URLs
// by running segmentation and the field extractors. Extraction problems are
// recorded on the record; only a missing file or an unsupported type fail.
package parsing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/contact"
	"github.com/jonathan/resume-matcher/internal/education"
	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Extraction stage names used in soft error messages
const (
	StageSection    = "Section"
	StageContact    = "Contact"
	StageSkill      = "Skill"
	StageExperience = "Experience"
	StageEducation  = "Education"
)

// ResumeOption configures a ResumeParser
type ResumeOption func(*ResumeParser)

// WithCustomSkills adds skills beyond the built-in taxonomy
func WithCustomSkills(custom ...string) ResumeOption {
	return func(p *ResumeParser) {
		p.customSkills = append(p.customSkills, custom...)
	}
}

// WithoutSoftSkills limits extraction to technical skills
func WithoutSoftSkills() ResumeOption {
	return func(p *ResumeParser) {
		p.noSoftSkills = true
	}
}

// WithLogger sets the logger used for soft errors
func WithLogger(log *zap.Logger) ResumeOption {
	return func(p *ResumeParser) {
		p.log = log
	}
}

// ResumeParser turns resume files and text into types.Resume records.
// It holds no per-call state and is safe for concurrent use.
type ResumeParser struct {
	customSkills []string
	noSoftSkills bool
	skills       *skills.Extractor
	log          *zap.Logger
}

// NewResumeParser builds a parser with the given options
func NewResumeParser(opts ...ResumeOption) *ResumeParser {
	p := &ResumeParser{}
	for _, opt := range opts {
		opt(p)
	}

	skillOpts := []skills.Option{skills.WithCustomSkills(p.customSkills...)}
	if p.noSoftSkills {
		skillOpts = append(skillOpts, skills.WithoutSoftSkills())
	}
	p.skills = skills.NewExtractor(skillOpts...)
	p.log = logger.OrNop(p.log)
	return p
}

// ParseFile decodes and parses a resume document. A missing file or an
// unsupported extension is an error; a decode failure or an empty document
// yields a record carrying the problem in ParseErrors.
func (p *ResumeParser) ParseFile(ctx context.Context, path string) (*types.Resume, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Cause: err}
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	ext := ingestion.Extension(path)
	if !ingestion.IsSupported(path) {
		return nil, &UnsupportedFileTypeError{Extension: ext, Supported: ingestion.SupportedExtensions()}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := p.log.With(zap.String(logger.FieldSource, path))
	resume := types.NewResume("")
	resume.FilePath = path
	resume.FileType = strings.TrimPrefix(ext, ".")

	text, err := ingestion.DecodeFile(path)
	if err != nil {
		msg := fmt.Sprintf("Failed to extract text from file: %v", err)
		log.Error("resume decode failed", zap.Error(err))
		resume.ParseErrors = append(resume.ParseErrors, msg)
		return resume, nil
	}
	if strings.TrimSpace(text) == "" {
		resume.ParseErrors = append(resume.ParseErrors, "No text could be extracted from the file")
		return resume, nil
	}

	resume.RawText = text
	p.parseContent(resume, log)
	return resume, nil
}

// ParseText parses resume text. source is recorded as the file type.
func (p *ResumeParser) ParseText(text, source string) *types.Resume {
	if source == "" {
		source = "text"
	}
	resume := types.NewResume(text)
	resume.FileType = source
	p.parseContent(resume, p.log)
	return resume
}

func (p *ResumeParser) parseContent(resume *types.Resume, log *zap.Logger) {
	text := resume.RawText

	p.stage(resume, log, StageSection, func() {
		resume.Sections = sections.Segment(text)
	})

	section := func(name string) string {
		return sections.Content(resume.Sections, name)
	}

	p.stage(resume, log, StageContact, func() {
		resume.Contact = contact.Extract(text, section("contact"))
	})
	p.stage(resume, log, StageSkill, func() {
		resume.Skills = p.skills.Extract(text, section("skills"))
	})
	p.stage(resume, log, StageExperience, func() {
		resume.Experience = experience.Extract(text, section("experience"))
	})
	p.stage(resume, log, StageEducation, func() {
		resume.Education = education.Extract(text, section("education"))
	})

	log.Debug("parsed resume",
		zap.Int("sections", len(resume.Sections)),
		zap.Int("skills", len(resume.Skills)),
		zap.Int("experience", len(resume.Experience)),
		zap.Int("education", len(resume.Education)),
		zap.Int("parse_errors", len(resume.ParseErrors)))
}

// stage runs one extractor, recording a panic as a soft error so the
// remaining stages still run
func (p *ResumeParser) stage(resume *types.Resume, log *zap.Logger, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			msg := stageError(name, r)
			log.Warn("extraction stage failed", zap.String("stage", name), zap.Any("panic", r))
			resume.ParseErrors = append(resume.ParseErrors, msg)
		}
	}()
	fn()
}
