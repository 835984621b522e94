// Package education extracts education entries (degree, field of study,
// institution, graduation date, GPA and honors) from resume text.
package education

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Degree levels, highest first
const (
	LevelDoctorate   = "doctorate"
	LevelMasters     = "masters"
	LevelBachelors   = "bachelors"
	LevelAssociate   = "associate"
	LevelCertificate = "certificate"
)

type degreeTier struct {
	level    string
	patterns []*regexp.Regexp
}

// degreeTiers are tried highest level first; within a tier, patterns are tried in order.
// Spelled-out degrees match in any case; abbreviations must be upper-case so words
// like "as" or "ma" are not read as degrees.
var degreeTiers = []degreeTier{
	{LevelDoctorate, degreePatterns(
		[]string{`Doctor\s+of\s+Philosophy`, `Doctorate`, `Doctor\s+of\s+Business\s+Administration`, `Doctor\s+of\s+Education`, `Juris\s+Doctor`, `Doctor\s+of\s+Medicine`},
		[]string{`Ph\.?D`, `D\.?B\.?A`, `Ed\.?D`, `J\.?D`, `M\.?D`},
	)},
	{LevelMasters, degreePatterns(
		[]string{`Master(?:'s)?\s+(?:of\s+)?(?:Science|Arts|Business|Engineering|Education|Fine\s+Arts)`, `Master(?:'s)?\s+(?:Degree|of)`},
		[]string{`M\.?S`, `M\.?A`, `M\.?B\.?A`, `M\.?Eng`, `M\.?Ed`, `M\.?F\.?A`},
	)},
	{LevelBachelors, degreePatterns(
		[]string{`Bachelor(?:'s)?\s+(?:of\s+)?(?:Science|Arts|Engineering|Fine\s+Arts|Business)`, `Bachelor(?:'s)?\s+(?:Degree|of)`},
		[]string{`B\.?S`, `B\.?A`, `B\.?Eng`, `B\.?F\.?A`, `B\.?B\.?A`},
	)},
	{LevelAssociate, degreePatterns(
		[]string{`Associate(?:'s)?\s+(?:of\s+)?(?:Science|Arts|Applied\s+Science)`, `Associate(?:'s)?\s+Degree`},
		[]string{`A\.?A\.?S`, `A\.?S`, `A\.?A`},
	)},
	{LevelCertificate, degreePatterns(
		[]string{`Professional\s+Certificate`, `Certificate`, `Certification`, `Diploma`},
		nil,
	)},
}

func degreePatterns(words, abbreviations []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, w := range words {
		out = append(out, regexp.MustCompile(`(?i)\b`+w+`\b`))
	}
	for _, a := range abbreviations {
		out = append(out, regexp.MustCompile(`\b`+a+`\b\.?`))
	}
	return out
}

// commonFields is the fallback vocabulary for field of study
var commonFields = []string{
	"Computer Science", "Software Engineering", "Information Technology",
	"Data Science", "Artificial Intelligence", "Machine Learning",
	"Electrical Engineering", "Mechanical Engineering", "Civil Engineering",
	"Chemical Engineering", "Biomedical Engineering", "Aerospace Engineering",
	"Business Administration", "Finance", "Accounting", "Economics",
	"Marketing", "Management", "Human Resources", "Operations Management",
	"Mathematics", "Statistics", "Physics", "Chemistry", "Biology",
	"Psychology", "Sociology", "Political Science", "Communications",
	"English", "History", "Philosophy", "Education",
	"Nursing", "Healthcare Administration", "Public Health",
	"Law", "Criminal Justice", "Public Administration",
	"Graphic Design", "Fine Arts", "Music", "Theater",
	"Environmental Science", "Geography", "Anthropology",
}

var commonFieldPatterns = compileFields(commonFields)

func compileFields(fields []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(fields))
	for i, f := range fields {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(f) + `\b`)
	}
	return out
}

// degreeWords follow "of" in degree names and are not fields of study
var degreeWords = map[string]bool{
	"Science": true, "Arts": true, "Fine Arts": true, "Engineering": true,
	"Business": true, "Business Administration": true, "Philosophy": true,
	"Education": true, "Medicine": true, "Applied Science": true,
}

const schoolWord = `(?:University|College|Institute|School|Academy)`

var (
	majorPattern     = regexp.MustCompile(`(?i:Major|Concentration|Focus|Specialization)\s*:\s*([A-Z][a-z]+(?:[ \t]+(?:[A-Z][a-z]+|and|&))*)`)
	inOfPattern      = regexp.MustCompile(`\b(?i:in|of)[ \t]+([A-Z][a-z]+(?:[ \t]+(?:[A-Z][a-z]+|and|&))*)`)
	trailingJoiner   = regexp.MustCompile(`[ \t]+(?:and|&)$`)
	precedingSchool  = regexp.MustCompile(schoolWord + `[ \t]*$`)
	institutionNamed = regexp.MustCompile(`(?:[A-Z][a-z]+[ \t]+)*` + schoolWord + `(?:[ \t]+of(?:[ \t]+[A-Z][a-z]+)+)?`)
	institutionAcro  = regexp.MustCompile(`\b([A-Z]{2,})\b(?:[ \t]+[A-Z][a-z]+)*`)

	graduationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:(?:Graduated|Graduation|Expected|Class\s+of|Completed)\s*:?\s*)?\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+\d{4}`),
		regexp.MustCompile(`(?i)(?:Graduated|Graduation|Expected|Class\s+of|Completed)\s*:?\s*\d{4}`),
		regexp.MustCompile(`'\d{2}\b`),
		regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	}
	yearRange        = regexp.MustCompile(`(?i)\b(?:19|20)\d{2}\s*[-–—]\s*((?:19|20)\d{2}|Present|Expected)\b`)
	graduationPrefix = regexp.MustCompile(`(?i)^(?:Graduated|Graduation|Expected|Class\s+of|Completed)\s*:?\s*`)

	gpaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bGPA\s*:?\s*(\d+\.?\d*)\s*(?:/\s*\d+\.?\d*)?`),
		regexp.MustCompile(`(?i)Grade\s+Point\s+Average\s*:?\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(\d+\.\d+)\s*/\s*4\.0`),
	}

	honorsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:(?:Summa|Magna)\s+)?Cum\s+Laude\b`),
		regexp.MustCompile(`(?i)\bDean'?s?\s+List\b`),
		regexp.MustCompile(`(?i)\b(?:High\s+)?Honou?r(?:s|'s)?(?:\s+(?:List|Roll|Society))?\b`),
		regexp.MustCompile(`(?i)\b(?:Valedictorian|Salutatorian)\b`),
		regexp.MustCompile(`(?i)\bWith\s+(?:High\s+)?Distinction\b`),
		regexp.MustCompile(`(?i)\bPhi\s+Beta\s+Kappa\b`),
	}
)

// Extract returns the education entries of a resume in document order.
// The education section is used when present, otherwise the whole text.
// Entries with neither an institution nor a degree are dropped.
func Extract(text, section string) []types.Education {
	search := section
	if strings.TrimSpace(search) == "" {
		search = text
	}

	entries := []types.Education{}
	if strings.TrimSpace(search) == "" {
		return entries
	}

	for _, block := range SplitBlocks(search) {
		entry := ParseBlock(block)
		if entry.Institution == "" && entry.Degree == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// DegreeLevel returns the highest degree level mentioned in text and the matched
// degree text, or empty strings when no degree is found.
func DegreeLevel(text string) (level, degree string) {
	for _, tier := range degreeTiers {
		for _, p := range tier.patterns {
			if match := p.FindString(text); match != "" {
				return tier.level, strings.TrimSpace(match)
			}
		}
	}
	return "", ""
}

func hasDegree(line string) bool {
	level, _ := DegreeLevel(line)
	return level != ""
}

// SplitBlocks splits education text into one block per entry.
// A line naming a degree starts a new block once the current block already
// has a degree. When the current block opened with an institution line, the
// institution line directly above the new degree travels with it.
func SplitBlocks(text string) []string {
	var blocks []string
	var current []string
	currentHasDegree := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		degree := hasDegree(line)
		if degree && currentHasDegree && len(current) > 0 {
			var carried []string
			if n := len(current); n > 1 && !hasDegree(current[0]) && !hasDegree(current[n-1]) && looksLikeInstitution(current[n-1]) {
				carried = []string{current[n-1]}
				current = current[:n-1]
			}
			blocks = append(blocks, strings.Join(current, "\n"))
			current = carried
			currentHasDegree = false
		}

		current = append(current, line)
		if degree {
			currentHasDegree = true
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}

// ParseBlock turns one education block into an Education entry
func ParseBlock(block string) types.Education {
	_, degree := DegreeLevel(block)
	return types.Education{
		Degree:         degree,
		FieldOfStudy:   ExtractFieldOfStudy(block),
		Institution:    ExtractInstitution(block),
		GraduationDate: ExtractGraduationDate(block),
		GPA:            ExtractGPA(block),
		Honors:         ExtractHonors(block),
	}
}

// ExtractFieldOfStudy returns an explicit "Major: X", the first "in X" / "of X"
// phrase that is neither a degree name nor part of a school name, or a known field.
func ExtractFieldOfStudy(text string) string {
	if m := majorPattern.FindStringSubmatch(text); m != nil {
		return trimJoiner(m[1])
	}

	for _, idx := range inOfPattern.FindAllStringSubmatchIndex(text, -1) {
		field := trimJoiner(text[idx[2]:idx[3]])
		if degreeWords[field] {
			continue
		}
		if precedingSchool.MatchString(text[:idx[0]]) {
			continue
		}
		return field
	}

	for i, p := range commonFieldPatterns {
		if p.MatchString(text) {
			return commonFields[i]
		}
	}
	return ""
}

func trimJoiner(s string) string {
	return strings.TrimSpace(trailingJoiner.ReplaceAllString(strings.TrimSpace(s), ""))
}

// ExtractInstitution returns a school name ("Stanford University", "University of
// Texas"), an acronym such as "MIT", or the first line that is neither a degree
// nor a GPA line.
func ExtractInstitution(text string) string {
	if match := institutionNamed.FindString(text); match != "" {
		return strings.TrimSpace(match)
	}
	if acronym := findAcronymInstitution(text); acronym != "" {
		return acronym
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 3 || hasDegree(line) || ExtractGPA(line) != "" {
			continue
		}
		for _, p := range graduationPatterns {
			line = strings.TrimSpace(p.ReplaceAllString(line, ""))
		}
		line = strings.Trim(line, " ,|-–—")
		if line != "" {
			return line
		}
	}
	return ""
}

// findAcronymInstitution returns the first acronym-led name ("MIT", "UCLA Extension")
// whose acronym is not a degree abbreviation or "GPA"
func findAcronymInstitution(text string) string {
	for _, m := range institutionAcro.FindAllStringSubmatch(text, -1) {
		if isDegreeToken(m[1]) || m[1] == "GPA" {
			continue
		}
		return strings.TrimSpace(m[0])
	}
	return ""
}

func looksLikeInstitution(line string) bool {
	return institutionNamed.MatchString(line) || findAcronymInstitution(line) != ""
}

// isDegreeToken reports whether s is, in its entirety, a degree name or abbreviation
func isDegreeToken(s string) bool {
	for _, tier := range degreeTiers {
		for _, p := range tier.patterns {
			if loc := p.FindStringIndex(s); loc != nil && loc[0] == 0 && loc[1] == len(s) {
				return true
			}
		}
	}
	return false
}

// ExtractGraduationDate returns the graduation date with "Graduated", "Expected"
// or "Class of" prefixes removed. For a year range the end of the range is used.
func ExtractGraduationDate(text string) string {
	for i, p := range graduationPatterns {
		if i == len(graduationPatterns)-1 {
			if m := yearRange.FindStringSubmatch(text); m != nil {
				return m[1]
			}
		}
		if match := p.FindString(text); match != "" {
			return strings.TrimSpace(graduationPrefix.ReplaceAllString(strings.TrimSpace(match), ""))
		}
	}
	return ""
}

// ExtractGPA returns the GPA number as written, without any "/4.0" scale
func ExtractGPA(text string) string {
	for _, p := range gpaPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractHonors returns every honor found, comma-joined in pattern order
func ExtractHonors(text string) string {
	var found []string
	for _, p := range honorsPatterns {
		if match := p.FindString(text); match != "" {
			found = append(found, strings.TrimSpace(match))
		}
	}
	return strings.Join(found, ", ")
}
