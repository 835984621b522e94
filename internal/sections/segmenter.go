// Package sections splits resume text into named, non-overlapping sections
// by recognizing header lines such as "EXPERIENCE" or "Technical Skills:".
package sections

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/textutil"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Section names
const (
	Contact        = "contact"
	Summary        = "summary"
	Experience     = "experience"
	Education      = "education"
	Skills         = "skills"
	Certifications = "certifications"
	Projects       = "projects"
	Publications   = "publications"
	Awards         = "awards"
	Languages      = "languages"
	Interests      = "interests"
	References     = "references"
	Volunteer      = "volunteer"
)

// headerRule maps a section name to the header spellings that introduce it
type headerRule struct {
	name     string
	patterns []*regexp.Regexp
}

// headerRules are evaluated in order; the first rule with a matching pattern names the header.
var headerRules = []headerRule{
	rule(Contact, `contact\s*(info|information|details)?`, `personal\s*(info|information|details)?`, `about\s*me`),
	rule(Summary, `(professional\s+)?(summary|profile|objective)`, `career\s*(summary|objective|profile)`, `executive\s+summary`, `overview`),
	rule(Experience, `(work|professional|employment)\s*(experience|history)`, `experience`, `work\s+history`, `career\s+history`, `professional\s+background`),
	rule(Education, `education(al)?\s*(background|history|qualifications)?`, `academic\s*(background|history|qualifications)?`, `degrees?\s*(&|and)?\s*certifications?`),
	rule(Skills, `(technical\s+)?skills?(\s*(&|and)\s*abilities)?`, `core\s+competencies`, `competencies`, `technical\s+(proficiencies|expertise)`, `areas?\s+of\s+expertise`, `proficiencies`),
	rule(Certifications, `certifications?\s*(&|and)?\s*(licenses?)?`, `licenses?\s*(&|and)?\s*certifications?`, `professional\s+certifications?`, `credentials`),
	rule(Projects, `(key\s+)?projects?`, `personal\s+projects?`, `professional\s+projects?`, `portfolio`),
	rule(Publications, `publications?`, `papers?`, `research\s*(papers?|publications?)?`),
	rule(Awards, `awards?\s*(&|and)?\s*(honors?|achievements?)?`, `honors?\s*(&|and)?\s*awards?`, `achievements?`, `recognition`),
	rule(Languages, `languages?`, `language\s+(proficiency|skills?)`),
	rule(Interests, `(personal\s+)?interests?`, `hobbies(\s*(&|and)\s*interests?)?`, `activities`),
	rule(References, `references?`, `professional\s+references?`),
	rule(Volunteer, `volunteer\s*(experience|work)?`, `community\s+(service|involvement)`),
}

func rule(name string, patterns ...string) headerRule {
	r := headerRule{name: name}
	for _, p := range patterns {
		r.patterns = append(r.patterns, regexp.MustCompile(`(?i)^\s*`+p+`\s*:?\s*$`))
	}
	return r
}

// Names returns every section name in table order
func Names() []string {
	names := make([]string, 0, len(headerRules))
	for _, r := range headerRules {
		names = append(names, r.name)
	}
	return names
}

// MatchHeader returns the section name a line introduces, or "" if the line is not a recognized header
func MatchHeader(line string) string {
	trimmed := strings.TrimSpace(line)
	if !textutil.IsLikelyHeader(trimmed) {
		return ""
	}
	candidate := textutil.TrimHeaderPunctuation(trimmed)
	for _, r := range headerRules {
		for _, p := range r.patterns {
			if p.MatchString(candidate) {
				return r.name
			}
		}
	}
	return ""
}

// marker is a recognized header position
type marker struct {
	line   int
	offset int
	name   string
}

// Segment splits text into sections keyed by name.
// A section's content runs from the line after its header to the line before the
// next recognized header. Sections with empty content are dropped. When a section
// name appears twice, the first occurrence is kept. No headers yields an empty map.
func Segment(text string) map[string]types.ParsedSection {
	result := make(map[string]types.ParsedSection)
	if strings.TrimSpace(text) == "" {
		return result
	}

	lines := strings.Split(text, "\n")
	var markers []marker
	offset := 0
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			if name := MatchHeader(line); name != "" {
				markers = append(markers, marker{line: i, offset: offset, name: name})
			}
		}
		offset += len(line) + 1
	}

	for i, m := range markers {
		endLine := len(lines)
		endOffset := len(text)
		if i+1 < len(markers) {
			endLine = markers[i+1].line
			endOffset = markers[i+1].offset
		}

		content := strings.TrimSpace(strings.Join(lines[m.line+1:endLine], "\n"))
		if content == "" {
			continue
		}
		if _, exists := result[m.name]; exists {
			continue
		}

		result[m.name] = types.ParsedSection{
			Name:       m.name,
			Content:    content,
			StartIndex: m.offset,
			EndIndex:   endOffset,
		}
	}

	return result
}

// Ordered returns the sections sorted by their position in the document
func Ordered(sections map[string]types.ParsedSection) []types.ParsedSection {
	out := make([]types.ParsedSection, 0, len(sections))
	for _, s := range sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartIndex < out[j].StartIndex
	})
	return out
}

// Content returns a section's content or "" when the section is absent
func Content(sections map[string]types.ParsedSection, name string) string {
	if s, ok := sections[name]; ok {
		return s.Content
	}
	return ""
}
