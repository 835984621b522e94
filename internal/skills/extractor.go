package skills

import (
	"regexp"
	"sort"
	"strings"
)

// skillPattern pairs a vocabulary entry with its compiled matcher
type skillPattern struct {
	skill    string
	category string
	re       *regexp.Regexp
}

// Extractor finds known skills in free text.
// It is safe for concurrent use once constructed.
type Extractor struct {
	patterns    []skillPattern
	includeSoft bool
}

// Option configures an Extractor
type Option func(*Extractor)

// WithoutSoftSkills disables soft-skill detection
func WithoutSoftSkills() Option {
	return func(e *Extractor) {
		e.includeSoft = false
	}
}

// WithCustomSkills adds extra skills to the vocabulary under the "custom" category
func WithCustomSkills(custom ...string) Option {
	return func(e *Extractor) {
		for _, s := range custom {
			if strings.TrimSpace(s) == "" {
				continue
			}
			e.patterns = append(e.patterns, newSkillPattern(strings.TrimSpace(s), CategoryCustom))
		}
	}
}

// NewExtractor builds an extractor over the fixed taxonomy
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{includeSoft: true}
	for _, c := range technicalSkills {
		for _, s := range c.skills {
			e.patterns = append(e.patterns, newSkillPattern(s, c.name))
		}
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.includeSoft {
		for _, s := range softSkills {
			e.patterns = append(e.patterns, newSkillPattern(s, CategorySoftSkills))
		}
	}
	return e
}

// newSkillPattern compiles a case-insensitive matcher that requires a
// non-word character (or text edge) on both sides of the skill. Using
// explicit boundaries instead of \b lets "C++", "C#" and ".NET Core" match.
func newSkillPattern(skill, category string) skillPattern {
	quoted := regexp.QuoteMeta(skill)
	quoted = strings.ReplaceAll(quoted, " ", `\s+`)
	return skillPattern{
		skill:    skill,
		category: category,
		re:       regexp.MustCompile(`(?i)(?:^|[^0-9A-Za-z_])` + quoted + `(?:[^0-9A-Za-z_]|$)`),
	}
}

// Extract returns the sorted, deduplicated display names of every known skill
// found in the concatenation of the optional skills section and the full text.
func (e *Extractor) Extract(text, section string) []string {
	search := text
	if strings.TrimSpace(section) != "" {
		search = section + "\n" + text
	}

	found := newSkillSet()
	for _, p := range e.patterns {
		if p.re.MatchString(search) {
			found.add(p.skill)
		}
	}
	return found.sorted()
}

// ExtractByCategory groups found skills by taxonomy category, omitting empty categories
func (e *Extractor) ExtractByCategory(text, section string) map[string][]string {
	search := text
	if strings.TrimSpace(section) != "" {
		search = section + "\n" + text
	}

	byCategory := make(map[string]*skillSet)
	for _, p := range e.patterns {
		if !p.re.MatchString(search) {
			continue
		}
		set, ok := byCategory[p.category]
		if !ok {
			set = newSkillSet()
			byCategory[p.category] = set
		}
		set.add(p.skill)
	}

	result := make(map[string][]string, len(byCategory))
	for name, set := range byCategory {
		result[name] = set.sorted()
	}
	return result
}

// ExtractFromLine treats a delimited list ("Go, Python | Docker") as a skills line
// and returns the items that are exactly a known skill.
func (e *Extractor) ExtractFromLine(line string) []string {
	items := strings.FieldsFunc(line, func(r rune) bool {
		switch r {
		case ',', ';', '|', '•', '·', '●', '/':
			return true
		}
		return false
	})

	found := newSkillSet()
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		for _, p := range e.patterns {
			if strings.EqualFold(strings.Join(strings.Fields(item), " "), p.skill) {
				found.add(p.skill)
			}
		}
	}
	return found.sorted()
}

// skillSet deduplicates surface forms by canonical key and keeps one display name per key
type skillSet struct {
	names map[string]string
}

func newSkillSet() *skillSet {
	return &skillSet{names: make(map[string]string)}
}

func (s *skillSet) add(surface string) {
	key := Normalize(surface)
	if _, ok := s.names[key]; ok {
		return
	}
	s.names[key] = Canonical(surface)
}

func (s *skillSet) sorted() []string {
	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li == lj {
			return out[i] < out[j]
		}
		return li < lj
	})
	return out
}
