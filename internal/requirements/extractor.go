// Package requirements extracts hiring requirements from job posting text:
// required and preferred skills, experience years, education requirements,
// work-location flags, responsibilities and benefits.
package requirements

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/textutil"
	"github.com/jonathan/resume-matcher/internal/types"
)

// CategoryRequired marks requirements stated as mandatory
const CategoryRequired = "required"

// experienceRange is tried before the single-bound patterns so "3-5 years"
// keeps its upper bound
var experienceRange = regexp.MustCompile(`(?i)(\d+)\s*[-–]\s*(\d+)\s*years?\s+(?:of\s+)?experience`)

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)experience[:\s]+(\d+)\+?\s*years?`),
	regexp.MustCompile(`(?i)minimum\s+(?:of\s+)?(\d+)\s*years?`),
	regexp.MustCompile(`(?i)at\s+least\s+(\d+)\s*years?`),
}

// educationKeyword matches degree vocabulary. Short abbreviations are whole
// words so "bs" in "jobs" or "ma" in "management" do not count.
var educationKeyword = regexp.MustCompile(`(?i)bachelor|master|ph\.?d|doctorate|degree|diploma|undergraduate|graduate|associate|certification|certified|\b(?:bs|ba|ms|ma|mba)\b`)

var sentenceSplit = regexp.MustCompile(`[.!?\n]`)

// educationExclusions mark sentences that describe what the employer provides
var educationExclusions = []string{
	"we offer",
	"we provide",
	"you will learn",
	"training provided",
}

var (
	remoteKeywords = []string{"remote", "work from home", "wfh", "fully remote"}
	hybridKeywords = []string{"hybrid", "flexible location"}
	onsiteKeywords = []string{"on-site", "onsite", "in-office"}
)

// LocationFlags holds independent work-arrangement signals; more than one may be set
type LocationFlags struct {
	Remote bool
	Hybrid bool
	Onsite bool
}

// Extractor extracts requirements from posting text.
// It is safe for concurrent use.
type Extractor struct {
	skills *skills.Extractor
}

// NewExtractor returns an Extractor that recognizes the skill taxonomy plus custom skills
func NewExtractor(customSkills ...string) *Extractor {
	return &Extractor{skills: skills.NewExtractor(skills.WithCustomSkills(customSkills...))}
}

// SplitRequiredPreferred partitions the skills a posting mentions.
// Skills in the required span are required and skills in the preferred span are
// preferred; when neither span yields a skill the whole posting is the required
// source. A skill listed in both is only required. Both lists are sorted.
func (e *Extractor) SplitRequiredPreferred(text string) (required, preferred []string) {
	if strings.TrimSpace(text) == "" {
		return []string{}, []string{}
	}

	required = []string{}
	preferred = []string{}
	if span := FindSpan(text, requiredKeywords, isSkillSpanHeader); span != "" {
		required = e.skills.Extract(span, "")
	}
	if span := FindSpan(text, preferredKeywords, isSkillSpanHeader); span != "" {
		preferred = e.skills.Extract(span, "")
	}

	if len(required) == 0 && len(preferred) == 0 {
		return e.skills.Extract(text, ""), []string{}
	}

	requiredKeys := skills.NormalizeSet(required)
	kept := preferred[:0]
	for _, s := range preferred {
		if !requiredKeys[skills.Normalize(s)] {
			kept = append(kept, s)
		}
	}
	return required, kept
}

// ExperienceYears returns the experience requirement. An explicit "N-M years"
// range yields both bounds; otherwise the first single-bound pattern gives the
// minimum and max is nil. ok is false when the posting states no requirement.
func ExperienceYears(text string) (minYears int, maxYears *int, ok bool) {
	if m := experienceRange.FindStringSubmatch(text); m != nil {
		lo, errLo := strconv.Atoi(m[1])
		hi, errHi := strconv.Atoi(m[2])
		if errLo == nil && errHi == nil {
			return lo, &hi, true
		}
	}
	for _, p := range experiencePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, nil, true
			}
		}
	}
	return 0, nil, false
}

// EducationRequirements returns each sentence or list line that mentions a
// degree or certification, unless it describes something the employer offers
func EducationRequirements(text string) []string {
	found := []string{}
	for _, sentence := range sentenceSplit.Split(text, -1) {
		sentence = textutil.StripBullet(strings.TrimSpace(sentence))
		if sentence == "" || !educationKeyword.MatchString(sentence) {
			continue
		}
		if containsAny(strings.ToLower(sentence), educationExclusions) {
			continue
		}
		found = append(found, sentence)
	}
	return found
}

// Requirements returns the structured education and experience requirements.
// Experience requirements carry up to 50 characters of context on each side.
func Requirements(text string) []types.JobRequirement {
	reqs := []types.JobRequirement{}
	for _, sentence := range EducationRequirements(text) {
		reqs = append(reqs, types.JobRequirement{
			RequirementType: types.RequirementEducation,
			Description:     sentence,
			Category:        CategoryRequired,
		})
	}

	patterns := append([]*regexp.Regexp{experienceRange}, experiencePatterns...)
	seen := make(map[string]bool)
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			context := surrounding(text, loc[0], loc[1], 50)
			if seen[context] {
				continue
			}
			seen[context] = true
			reqs = append(reqs, types.JobRequirement{
				RequirementType: types.RequirementExperience,
				Description:     context,
				Category:        CategoryRequired,
			})
		}
	}
	return reqs
}

func surrounding(text string, start, end, radius int) string {
	start -= radius
	if start < 0 {
		start = 0
	}
	end += radius
	if end > len(text) {
		end = len(text)
	}
	return strings.ToValidUTF8(strings.TrimSpace(text[start:end]), "")
}

// DetectLocationFlags tests remote, hybrid and on-site keywords independently
func DetectLocationFlags(text string) LocationFlags {
	lower := strings.ToLower(text)
	return LocationFlags{
		Remote: containsAny(lower, remoteKeywords),
		Hybrid: containsAny(lower, hybridKeywords),
		Onsite: containsAny(lower, onsiteKeywords),
	}
}
