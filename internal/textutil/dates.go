package textutil

import "strings"

// Present is the canonical marker for an ongoing date range
const Present = "Present"

// dateRangeSeparators are tried in order; spaced forms come first so that
// hyphens inside a date are not mistaken for the range separator.
var dateRangeSeparators = []string{" - ", " – ", " — ", " to ", " through ", " until ", "-", "–", "—"}

var presentWords = map[string]bool{
	"present": true,
	"current": true,
	"now":     true,
	"ongoing": true,
}

// ParseDateString trims a free-text date and maps present/current/now/ongoing to Present
func ParseDateString(s string) string {
	s = strings.TrimSpace(s)
	if presentWords[strings.ToLower(s)] {
		return Present
	}
	return s
}

// IsPresent reports whether s denotes an ongoing end date
func IsPresent(s string) bool {
	return presentWords[strings.ToLower(strings.TrimSpace(s))]
}

// SplitDateRange splits "Jan 2020 - Present" into its start and end parts.
// A string without a separator is treated as a lone end date.
func SplitDateRange(s string) (start, end string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		lower = s
	}
	for _, sep := range dateRangeSeparators {
		idx := strings.Index(lower, sep)
		if idx < 0 {
			continue
		}
		return ParseDateString(s[:idx]), ParseDateString(s[idx+len(sep):])
	}

	return "", ParseDateString(s)
}
