package scoring

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/textutil"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Duration heuristics in months
const (
	unknownStartMonths = 30
	unknownEndMonths   = 24
)

// YearsPerPosition is the fallback tenure assumed for each listed position
const YearsPerPosition = 2.5

// NeutralExperienceScore is returned when the resume gives no experience signal
const NeutralExperienceScore = 0.5

// yearsPatterns find explicit experience claims, tried in order
var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)(?:\s+of)?\s*(?:experience|exp)`),
	regexp.MustCompile(`(?i)(?:over|more than|>\s*)\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+)\+\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(?:experience|exp)[:\s]+(\d+)\s*(?:years?|yrs?)`),
}

var bareYear = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// dateLayouts are the free-text date shapes resumes commonly use
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"01/2006",
	"1/2006",
	"01-2006",
	"January 2006",
	"Jan 2006",
	"Jan. 2006",
}

// ExperienceScorer rates whether a candidate has the years a job asks for
type ExperienceScorer struct {
	now func() time.Time
}

// NewExperienceScorer returns a scorer that resolves "Present" to the current time
func NewExperienceScorer() *ExperienceScorer {
	return &ExperienceScorer{now: time.Now}
}

// NewExperienceScorerAt returns a scorer with a fixed reference time
func NewExperienceScorerAt(now time.Time) *ExperienceScorer {
	return &ExperienceScorer{now: func() time.Time { return now }}
}

// Score rates candidate years against the job minimum. known is false when
// the resume carries no experience signal at all.
//
// No minimum scores 1. Otherwise meeting the minimum scores 1, no
// experience scores 0, an unknown amount scores NeutralExperienceScore and
// anything else is years/minimum.
func (s *ExperienceScorer) Score(years float64, known bool, minYears int) float64 {
	if minYears <= 0 {
		return 1
	}
	if !known {
		return NeutralExperienceScore
	}
	switch {
	case years >= float64(minYears):
		return 1
	case years <= 0:
		return 0
	default:
		return years / float64(minYears)
	}
}

// EstimateYears estimates total experience from an explicit "N years" claim
// in the text, then from the summed durations of the entries, then from the
// number of entries. known is false when neither text nor entries help.
func (s *ExperienceScorer) EstimateYears(text string, entries []types.WorkExperience) (years float64, known bool) {
	if y, ok := YearsFromText(text); ok {
		return y, true
	}
	if len(entries) == 0 {
		return 0, false
	}
	if y := s.YearsFromEntries(entries); y > 0 {
		return y, true
	}
	return YearsPerPosition * float64(len(entries)), true
}

// YearsFromText returns the first explicit years-of-experience figure in text
func YearsFromText(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	for _, p := range yearsPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return float64(n), true
			}
		}
	}
	return 0, false
}

// YearsFromEntries sums entry durations in years
func (s *ExperienceScorer) YearsFromEntries(entries []types.WorkExperience) float64 {
	total := 0
	for _, e := range entries {
		total += s.entryMonths(e)
	}
	return float64(total) / 12
}

// entryMonths is the length of one position. An unparsable start counts as
// 30 months; an unparsable end on a position not marked current counts as 24.
func (s *ExperienceScorer) entryMonths(e types.WorkExperience) int {
	start, ok := s.parseDate(e.StartDate)
	if !ok {
		return unknownStartMonths
	}
	end, ok := s.parseDate(e.EndDate)
	if !ok {
		if !e.IsCurrent {
			return unknownEndMonths
		}
		end = s.now()
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	return max(0, months)
}

// parseDate reads the date shapes in dateLayouts, present markers, and
// falls back to the first 19xx/20xx year in the string
func (s *ExperienceScorer) parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if textutil.IsPresent(raw) {
		return s.now(), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if y := bareYear.FindString(raw); y != "" {
		year, _ := strconv.Atoi(y)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
