// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// ContactInfo holds candidate contact details. Every field is optional.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// IsEmpty reports whether no contact field was extracted
func (c ContactInfo) IsEmpty() bool {
	return c == ContactInfo{}
}

// WorkExperience is a single position listed on a resume.
// Dates are kept as free text because resumes rarely use a single format.
type WorkExperience struct {
	Company     string `json:"company,omitempty"`
	Role        string `json:"role,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	IsCurrent   bool   `json:"is_current"`
}

// Education is a single education entry. GPA stays a string so suffixes like "/4.0" survive.
type Education struct {
	Institution    string `json:"institution,omitempty"`
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
}

// ParsedSection is a named slice of the source document with byte offsets
type ParsedSection struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}

// Resume is the structured record produced by the resume parser
type Resume struct {
	RawText     string                   `json:"raw_text"`
	FilePath    string                   `json:"file_path,omitempty"`
	FileType    string                   `json:"file_type,omitempty"`
	Contact     ContactInfo              `json:"contact"`
	Skills      []string                 `json:"skills"`
	Experience  []WorkExperience         `json:"experience"`
	Education   []Education              `json:"education"`
	Sections    map[string]ParsedSection `json:"sections"`
	ParseErrors []string                 `json:"parse_errors"`
}

// NewResume returns an empty resume with non-nil collections so it serializes predictably
func NewResume(rawText string) *Resume {
	return &Resume{
		RawText:     rawText,
		Skills:      []string{},
		Experience:  []WorkExperience{},
		Education:   []Education{},
		Sections:    map[string]ParsedSection{},
		ParseErrors: []string{},
	}
}

// HasErrors reports whether any extraction stage recorded a soft error
func (r *Resume) HasErrors() bool {
	return len(r.ParseErrors) > 0
}

// Text returns the raw resume text
func (r *Resume) Text() string {
	return r.RawText
}

// SkillList returns the extracted skills
func (r *Resume) SkillList() []string {
	return r.Skills
}

// ExperienceEntries returns the extracted work history in document order
func (r *Resume) ExperienceEntries() []WorkExperience {
	return r.Experience
}

// EducationEntries returns the extracted education in document order
func (r *Resume) EducationEntries() []Education {
	return r.Education
}

// ResumeSummary is a compact overview of a parsed resume
type ResumeSummary struct {
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	SkillsCount     int      `json:"skills_count"`
	ExperienceCount int      `json:"experience_count"`
	EducationCount  int      `json:"education_count"`
	SectionsFound   []string `json:"sections_found"`
	HasErrors       bool     `json:"has_errors"`
}

// Summary returns counts and headline fields for display
func (r *Resume) Summary() ResumeSummary {
	names := make([]string, 0, len(r.Sections))
	for name := range r.Sections {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return r.Sections[names[i]].StartIndex < r.Sections[names[j]].StartIndex
	})

	return ResumeSummary{
		Name:            r.Contact.Name,
		Email:           r.Contact.Email,
		SkillsCount:     len(r.Skills),
		ExperienceCount: len(r.Experience),
		EducationCount:  len(r.Education),
		SectionsFound:   names,
		HasErrors:       r.HasErrors(),
	}
}
