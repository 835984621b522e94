package requirements

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/textutil"
)

// requiredKeywords open the span that lists required skills
var requiredKeywords = []string{
	"required",
	"requirements",
	"must have",
	"must-have",
	"qualifications",
	"mandatory",
	"essential",
	"minimum requirements",
	"you will need",
	"you must have",
	"what you need",
}

// preferredKeywords open the span that lists nice-to-have skills
var preferredKeywords = []string{
	"preferred",
	"nice to have",
	"nice-to-have",
	"bonus",
	"plus",
	"a plus",
	"desired",
	"additional",
	"good to have",
	"ideally",
	"advantageous",
}

var responsibilityKeywords = []string{
	"responsibilities",
	"what you'll do",
	"what you will do",
	"your role",
	"job duties",
	"key responsibilities",
}

var benefitKeywords = []string{
	"benefits",
	"perks",
	"what we offer",
	"we offer",
	"compensation",
	"why join us",
}

// headerLead matches lines that open a posting section even without a colon
var headerLead = regexp.MustCompile(`(?i)^(?:about|what|who|why|how|requirements?|qualifications?|skills?|responsibilities?|duties|benefits?|perks?|compensation)`)

// isSkillSpanHeader ends a required/preferred span: a short upper-case or
// colon-terminated line, or a line opening with a common section word
func isSkillSpanHeader(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if len(line) < 50 && (isUpper(line) || strings.HasSuffix(line, ":")) {
		return true
	}
	return headerLead.MatchString(line)
}

// isListHeader ends a responsibilities/benefits list: a short upper-case or colon-terminated line
func isListHeader(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) > 50 {
		return false
	}
	return isUpper(line) || strings.HasSuffix(line, ":")
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// FindSpan returns the lines from the first line containing any keyword up to,
// but not including, the next line isHeader accepts. It returns "" when no
// line contains a keyword.
func FindSpan(text string, keywords []string, isHeader func(string) bool) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if containsAny(strings.ToLower(line), keywords) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if isHeader(lines[i]) {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

// Responsibilities returns up to 10 duty lines from the responsibilities section
func Responsibilities(text string) []string {
	return listItems(FindSpan(text, responsibilityKeywords, isListHeader), 10, 10)
}

// Benefits returns up to 10 lines from the benefits section
func Benefits(text string) []string {
	return listItems(FindSpan(text, benefitKeywords, isListHeader), 5, 10)
}

// listItems strips bullets and keeps lines longer than minLen, at most limit
// of them. The span's opening line is skipped when it is only a heading, and
// once a bulleted list has started the first unbulleted line ends it.
func listItems(span string, minLen, limit int) []string {
	items := []string{}
	if span == "" {
		return items
	}
	lines := strings.Split(span, "\n")
	if isListHeader(lines[0]) {
		lines = lines[1:]
	}
	inList := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if textutil.IsBullet(line) {
			inList = true
		} else if inList {
			break
		}
		line = textutil.StripBullet(line)
		if len(line) <= minLen {
			continue
		}
		items = append(items, line)
		if len(items) == limit {
			break
		}
	}
	return items
}

// Title guesses the job title: the first non-empty line when it is at most
// 100 characters, otherwise UnknownTitle.
func Title(text string) string {
	lines := textutil.ExtractLines(text)
	if len(lines) > 0 && len(lines[0]) <= 100 {
		return lines[0]
	}
	return UnknownTitle
}

// UnknownTitle is used when no title can be inferred
const UnknownTitle = "Unknown Position"

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
