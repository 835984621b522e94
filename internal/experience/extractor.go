// Package experience extracts work-history entries (role, company, dates,
// location and description) from the experience section of a resume.
package experience

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/contact"
	"github.com/jonathan/resume-matcher/internal/textutil"
	"github.com/jonathan/resume-matcher/internal/types"
)

const month = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?`

const (
	rangeSep = `\s*(?:[-–—]|\bto\b|\bthrough\b|\buntil\b)\s*`
	openEnd  = `Present|Current|Now`
)

// rangePatterns locate a date range, most specific first
var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b` + month + `\s+\d{4}` + rangeSep + `(?:` + month + `\s+\d{4}|` + openEnd + `)\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}/\d{4}` + rangeSep + `(?:\d{1,2}/\d{4}|` + openEnd + `)\b`),
	regexp.MustCompile(`(?i)\b\d{4}` + rangeSep + `(?:\d{4}|` + openEnd + `)\b`),
}

// singleYear is the last-resort date: a lone 19xx/20xx year
var singleYear = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// datePatterns is rangePatterns followed by singleYear, in the order they are tried
var datePatterns = append(append([]*regexp.Regexp{}, rangePatterns...), singleYear)

// titlePatterns recognize job titles. Order matters: the first pattern that
// matches a line names the role.
var titlePatterns = compileTitles(
	`(?:Chief|Senior|Lead|Principal|Staff)\s+\w+(?:\s+\w+)?(?:\s+Officer)?`,
	`(?:VP|Vice\s+President)\s+(?:of\s+)?\w+(?:\s+\w+)?`,
	`Director\s+(?:of\s+)?\w+(?:\s+\w+)?`,
	`(?:Software|Hardware|Systems?|Data|DevOps|Cloud|Full[\s-]?Stack|Front[\s-]?End|Back[\s-]?End)\s+(?:Engineer|Developer|Architect)`,
	`(?:Product|Program|Project|Engineering|Technical)\s+Manager`,
	`(?:Business|Data|Systems?|Financial|Operations)\s+Analyst`,
	`(?:UX|UI|Product|Graphic|Visual)\s+Designer`,
	`(?:QA|Quality\s+Assurance|Test)\s+(?:Engineer|Analyst|Lead)`,
	`(?:Machine\s+Learning|ML|AI|Data)\s+(?:Engineer|Scientist)`,
	`(?:Site\s+Reliability|SRE|Platform)\s+Engineer`,
	`(?:Technical|Solutions?)\s+(?:Architect|Consultant)`,
	`(?:Database|DBA|Systems?)\s+Administrator`,
	`(?:Security|Information\s+Security|Cybersecurity)\s+(?:Engineer|Analyst|Specialist)`,
	`(?:Network|Infrastructure)\s+Engineer`,
	`(?:IT|Information\s+Technology)\s+(?:Manager|Director|Specialist)`,
	`Scrum\s+Master`,
	`(?:Intern|Trainee|Apprentice)(?:\s+\w+)?`,
	`\w+\s+(?:Intern|Internship)`,
	`(?:Junior|Mid[\s-]?Level|Senior)\s+\w+(?:\s+\w+)?`,
	`(?:Head|Manager|Lead|Supervisor)\s+(?:of\s+)?\w+(?:\s+\w+)?`,
)

func compileTitles(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)\b` + p + `\b`)
	}
	return out
}

var (
	workMode        = regexp.MustCompile(`\b(?:Remote|Hybrid|On-?site)\b`)
	cityAbbrev      = regexp.MustCompile(`\b[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?,[ \t]*([A-Z]{2})\b`)
	cityState       = regexp.MustCompile(`\b([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?),[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){0,2})\b`)
	leadingJunk     = regexp.MustCompile(`(?i)^(?:[\s,|•·\-–—@]+|at\s+)+`)
	trailingJunk    = regexp.MustCompile(`[\s,|•·\-–—@]+$`)
	trailingLinkers = regexp.MustCompile(`(?i)\s+(?:at|for|with|in|and|of)$`)
	bulletStart     = regexp.MustCompile(`^\s*[•●○◦▪▸►\-*+]`)
)

// Extract returns the positions listed in a resume, in document order.
// The experience section is used when present, otherwise the whole text.
// Entries with neither a role nor a company are dropped.
func Extract(text, section string) []types.WorkExperience {
	search := section
	if strings.TrimSpace(search) == "" {
		search = text
	}
	if strings.TrimSpace(search) == "" {
		return []types.WorkExperience{}
	}

	entries := []types.WorkExperience{}
	for _, block := range SplitBlocks(search) {
		entry := ParseBlock(block)
		if entry.Role == "" && entry.Company == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// maxCarried bounds how many header lines above a date move to the next block
const maxCarried = 2

// SplitBlocks splits experience text into one block per position.
// A dated header line starts a new block once the current block already has
// its own date. When the current block opened with undated header lines
// (title, company), the same number of trailing header lines, at most two,
// travel with the new date provided one of them is a title. Both
// "Title / Company / Dates" and "Company | Dates / Title" layouts work.
func SplitBlocks(text string) []string {
	var blocks []string
	var current []string
	currentDated := false

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		dated := isDatedHeader(line)
		if dated && currentDated && len(current) > 0 {
			n := carriedHeaders(current)
			carried := append([]string{}, current[len(current)-n:]...)
			current = current[:len(current)-n]
			flush()
			current = carried
			currentDated = false
		}

		current = append(current, line)
		if dated {
			currentDated = true
		}
	}
	flush()

	return blocks
}

// carriedHeaders returns how many trailing lines of a dated block belong to
// the next position's header
func carriedHeaders(block []string) int {
	opening, lastDated := -1, -1
	for i, line := range block {
		if isDatedHeader(line) {
			if opening < 0 {
				opening = i
			}
			lastDated = i
		}
	}
	limit := min(opening, maxCarried)

	n, titled := 0, false
	for i := len(block) - 1; i > lastDated && n < limit && isHeaderLine(block[i]); i-- {
		n++
		titled = titled || isTitleLine(block[i])
	}
	if !titled {
		return 0
	}
	return n
}

// isHeaderLine reports whether a line can be a title or company line
func isHeaderLine(line string) bool {
	return !hasDate(line) && !bulletStart.MatchString(line) && !strings.HasSuffix(line, ".") && len(line) <= 80
}

// isDatedHeader reports whether a line carries a position's dates: any date
// range, or a lone year on a short line that is not a sentence. Bullets never qualify.
func isDatedHeader(line string) bool {
	if bulletStart.MatchString(line) {
		return false
	}
	for _, p := range rangePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	if !singleYear.MatchString(line) {
		return false
	}
	return len(line) <= 80 && !strings.HasSuffix(line, ".")
}

func isTitleLine(line string) bool {
	return isHeaderLine(line) && MatchTitle(line) != ""
}

func hasDate(line string) bool {
	for _, p := range datePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// ParseBlock turns one position block into a WorkExperience
func ParseBlock(block string) types.WorkExperience {
	var entry types.WorkExperience

	lines := textutil.ExtractLines(block)
	if len(lines) == 0 {
		return entry
	}

	entry.StartDate, entry.EndDate = ExtractDateRange(block)
	entry.IsCurrent = textutil.IsPresent(entry.EndDate)

	header := lines
	if len(header) > 3 {
		header = header[:3]
	}
	entry.Role, entry.Company = roleAndCompany(header)

	if body := bodyStart(header); len(lines) > body {
		entry.Description = strings.TrimSpace(textutil.StripBullets(strings.Join(lines[body:], "\n")))
	}
	entry.Location = ExtractLocation(block)

	return entry
}

// bodyStart is the index of the first description line: after the dated
// header line when the header ends with one, otherwise after two lines
func bodyStart(header []string) int {
	body := 2
	for i, line := range header {
		if isDatedHeader(line) {
			body = max(body, i+1)
			break
		}
	}
	return body
}

// ExtractDateRange returns the first date range found, trying patterns from most to least specific.
// A lone year yields an empty start date.
func ExtractDateRange(text string) (start, end string) {
	for _, p := range datePatterns {
		if match := p.FindString(text); match != "" {
			return textutil.SplitDateRange(match)
		}
	}
	return "", ""
}

// MatchTitle returns the first job title found in line, or ""
func MatchTitle(line string) string {
	for _, p := range titlePatterns {
		if match := p.FindString(line); match != "" {
			return strings.TrimSpace(trailingLinkers.ReplaceAllString(match, ""))
		}
	}
	return ""
}

func stripDates(line string) string {
	for _, p := range datePatterns {
		line = p.ReplaceAllString(line, "")
	}
	return strings.TrimSpace(line)
}

func cleanCompany(s string) string {
	s = leadingJunk.ReplaceAllString(s, "")
	s = trailingJunk.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// roleAndCompany reads the role and company from a block's first lines.
// The first title-pattern match is the role; whatever text survives on a line
// once dates, the role and separators are removed is the company. Without a
// title match the first non-trivial line is the role.
func roleAndCompany(header []string) (role, company string) {
	for _, line := range header {
		clean := stripDates(line)

		if role == "" {
			if title := MatchTitle(clean); title != "" {
				role = title
				clean = strings.TrimSpace(strings.Replace(clean, title, "", 1))
			}
		}

		if company != "" || clean == "" || bulletStart.MatchString(line) || strings.HasSuffix(clean, ".") {
			continue
		}
		if candidate := cleanCompany(clean); len(candidate) > 2 {
			company = candidate
		}
	}

	if role == "" {
		for _, line := range header {
			if bulletStart.MatchString(line) {
				continue
			}
			if candidate := cleanCompany(stripDates(line)); len(candidate) > 2 {
				role = candidate
				break
			}
		}
	}

	return role, company
}

// ExtractLocation finds a work location in a block. A work mode (Remote,
// Hybrid, On-site) wins over "City, ST", which wins over "City, State".
func ExtractLocation(text string) string {
	if match := workMode.FindString(text); match != "" {
		return match
	}
	for _, m := range cityAbbrev.FindAllStringSubmatch(text, -1) {
		if contact.IsUSState(m[1]) {
			return m[0]
		}
	}
	for _, m := range cityState.FindAllStringSubmatch(text, -1) {
		words := strings.Fields(m[2])
		for n := len(words); n > 0; n-- {
			if state := strings.Join(words[:n], " "); contact.IsUSState(state) {
				return m[1] + ", " + state
			}
		}
	}
	return ""
}
