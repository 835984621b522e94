// Package textutil provides small, stateless helpers for normalizing resume and job text.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	unicodeSpaces     = strings.NewReplacer("\u00a0", " ", "\u200b", "", "\u2003", " ", "\u2002", " ", "\u2009", " ")
	multiBlankLines   = regexp.MustCompile(`\n{3,}`)
	multiSpaces       = regexp.MustCompile(` {2,}`)
	anyWhitespace     = regexp.MustCompile(`\s+`)
	bulletPrefix      = regexp.MustCompile(`^\s*[•●○◦▪▸►\-*+]\s*`)
	numberingPrefix   = regexp.MustCompile(`^\s*(\d+[.)]\s*|\(\d+\)\s*|[a-zA-Z][.)]\s+)`)
	sentenceEndings   = ".!?"
	headerPunctuation = ":-–—"
)

// CleanText normalizes decoded document text.
// Unicode spaces become ASCII spaces, line endings become LF, runs of blank
// lines collapse to one blank line, runs of spaces collapse to one space and
// every line is trimmed.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = unicodeSpaces.Replace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")
	text = multiSpaces.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = multiBlankLines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// NormalizeWhitespace collapses every whitespace run, newlines included, to a single space
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(anyWhitespace.ReplaceAllString(text, " "))
}

// ExtractLines returns the trimmed, non-empty lines of text
func ExtractLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// StripBullet removes a leading bullet glyph or list numbering ("1.", "(2)", "a)") from a line
func StripBullet(line string) string {
	line = bulletPrefix.ReplaceAllString(line, "")
	line = numberingPrefix.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// IsBullet reports whether a line opens with a bullet glyph or list numbering
func IsBullet(line string) bool {
	return bulletPrefix.MatchString(line) || numberingPrefix.MatchString(line)
}

// StripBullets applies StripBullet to every line of text
func StripBullets(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = StripBullet(line)
	}
	return strings.Join(lines, "\n")
}

// IsLikelyHeader reports whether a line is shaped like a section header:
// at most 50 characters, no sentence punctuation at the end, and either
// fully upper-case, ending with a colon, or at most four title-case words.
func IsLikelyHeader(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len([]rune(line)) > 50 {
		return false
	}
	if strings.ContainsAny(line[len(line)-1:], sentenceEndings) {
		return false
	}
	if isUpper(line) || strings.HasSuffix(line, ":") {
		return true
	}

	words := strings.Fields(line)
	if len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) {
			return false
		}
	}
	return true
}

// TrimHeaderPunctuation strips trailing colons and dashes from a header line
func TrimHeaderPunctuation(line string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line), headerPunctuation+" "))
}

// isUpper reports whether s has at least one letter and no lower-case letters
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// Truncate shortens s to limit runes, appending "..." when cut
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}
