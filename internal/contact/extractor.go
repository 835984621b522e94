// Package contact extracts contact details (email, phone, location, LinkedIn
// profile and candidate name) from resume text.
package contact

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// phonePatterns are tried in order: US, international, simple delimited
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?1?\s*[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`),
		regexp.MustCompile(`\d{3}[-.\s]\d{3}[-.\s]\d{4}`),
	}

	linkedInPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w\-]+`),
		regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/pub/[\w\-/]+`),
		regexp.MustCompile(`(?i)linkedin:\s*[\w\-]+`),
	}

	nonDigits = regexp.MustCompile(`\D`)

	placeholderDomains = []string{"example.com", "test.com", "placeholder"}

	// nameSkipWords mark lines near the top of a resume that are not the candidate's name
	nameSkipWords = []string{
		"resume", "cv", "curriculum", "address", "phone",
		"email", "linkedin", "objective", "summary",
	}
)

// usStates maps USPS abbreviations to state names
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// IsUSState reports whether s is a USPS state abbreviation (upper-case) or a state name (any case)
func IsUSState(s string) bool {
	s = strings.TrimSpace(s)
	if _, ok := usStates[s]; ok {
		return true
	}
	for _, name := range usStates {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// locationPatterns are tried in order: "City, ST 12345", "City, ST", "City, State".
// City names stay on one line; abbreviations must be upper-case so words like
// "in" or "or" are not read as states.
var locationPatterns = buildLocationPatterns()

func buildLocationPatterns() []*regexp.Regexp {
	abbrevs := make([]string, 0, len(usStates))
	names := make([]string, 0, len(usStates))
	for abbr, name := range usStates {
		abbrevs = append(abbrevs, abbr)
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Strings(abbrevs)
	sort.Strings(names)
	abbrevAlt := strings.Join(abbrevs, "|")
	nameAlt := strings.Join(names, "|")

	// words joined by spaces or a single inner hyphen; a spaced dash ends the city
	const city = `[A-Za-z][A-Za-z.']*(?:(?: +|-)[A-Za-z][A-Za-z.']*)*`
	return []*regexp.Regexp{
		regexp.MustCompile(city + `,[ \t]*(?:` + abbrevAlt + `)[ \t]*\d{5}(?:-\d{4})?`),
		regexp.MustCompile(city + `,[ \t]*(?:` + abbrevAlt + `)\b`),
		regexp.MustCompile(`(?i)` + city + `,[ \t]*(?:` + nameAlt + `)\b`),
	}
}

// Extract returns the contact details found in a resume.
// The contact section, when present, is searched first and the full text is
// the fallback for every field except the name, which always comes from the
// top of the full text. Missing fields are left empty.
func Extract(text, section string) types.ContactInfo {
	search := section
	if strings.TrimSpace(search) == "" {
		search = text
	}

	return types.ContactInfo{
		Name:     ExtractName(text),
		Email:    firstNonEmpty(ExtractEmail(search), ExtractEmail(text)),
		Phone:    firstNonEmpty(ExtractPhone(search), ExtractPhone(text)),
		Location: firstNonEmpty(ExtractLocation(search), ExtractLocation(text)),
		LinkedIn: firstNonEmpty(ExtractLinkedIn(search), ExtractLinkedIn(text)),
	}
}

// ExtractEmail returns the first plausible email address, lower-cased
func ExtractEmail(text string) string {
	if text == "" {
		return ""
	}
	email := emailPattern.FindString(text)
	if !isValidEmail(email) {
		return ""
	}
	return strings.ToLower(email)
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	lower := strings.ToLower(email)
	for _, placeholder := range placeholderDomains {
		if strings.Contains(lower, placeholder) {
			return false
		}
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return strings.Contains(parts[1], ".")
}

// ExtractPhone returns the first phone number that has between 7 and 15 digits.
// Ten-digit numbers are formatted "(NNN) NNN-NNNN" and eleven-digit numbers with
// a leading 1 as "+1 (NNN) NNN-NNNN"; anything else is returned as written.
func ExtractPhone(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range phonePatterns {
		match := p.FindString(text)
		if match == "" {
			continue
		}
		phone := NormalizePhone(match)
		if isValidPhone(phone) {
			return phone
		}
	}
	return ""
}

// NormalizePhone formats US numbers consistently
func NormalizePhone(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	switch {
	case len(cleaned) == 10:
		return "(" + cleaned[:3] + ") " + cleaned[3:6] + "-" + cleaned[6:]
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "1"):
		return "+1 (" + cleaned[1:4] + ") " + cleaned[4:7] + "-" + cleaned[7:]
	}
	return strings.TrimSpace(phone)
}

func isValidPhone(phone string) bool {
	digits := nonDigits.ReplaceAllString(phone, "")
	return len(digits) >= 7 && len(digits) <= 15
}

// ExtractLinkedIn returns a LinkedIn profile URL; bare "linkedin: user" handles become full URLs
func ExtractLinkedIn(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range linkedInPatterns {
		match := p.FindString(text)
		if match == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(match), "http") {
			return match
		}
		if strings.Contains(strings.ToLower(match), "linkedin.com") {
			return "https://" + match
		}
		idx := strings.LastIndex(match, ":")
		return "https://linkedin.com/in/" + strings.TrimSpace(match[idx+1:])
	}
	return ""
}

// ExtractLocation returns the first "City, ST", "City, ST 12345" or "City, State" found
func ExtractLocation(text string) string {
	if text == "" {
		return ""
	}
	for _, line := range strings.Split(text, "\n") {
		for _, p := range locationPatterns {
			if match := p.FindString(line); match != "" {
				return strings.TrimSpace(match)
			}
		}
	}
	return ""
}

// ExtractName looks at the first five lines for one that reads like a person's name:
// one to five words, each capitalized and alphabetic apart from "." and "-".
func ExtractName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if emailPattern.MatchString(line) || matchesAny(phonePatterns, line) {
			continue
		}
		if containsAny(strings.ToLower(line), nameSkipWords) {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 1 || len(words) > 5 {
			continue
		}
		if allNameLike(words) {
			return line
		}
	}
	return ""
}

func allNameLike(words []string) bool {
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) {
			return false
		}
		letters := strings.NewReplacer(".", "", "-", "").Replace(w)
		if letters == "" {
			return false
		}
		for _, c := range letters {
			if !unicode.IsLetter(c) {
				return false
			}
		}
	}
	return true
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
