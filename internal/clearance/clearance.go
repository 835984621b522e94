// Package clearance detects US government security clearance levels in
// resume and job text and checks candidate eligibility.
package clearance

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// predicate tests lower-cased text
type predicate func(lower string) bool

func pattern(expr string) predicate {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// rule ties a clearance level to the phrases that indicate it
type rule struct {
	level      types.ClearanceLevel
	predicates []predicate
}

// rules are evaluated highest level first and the first level with any hit wins,
// so "Secret ... TS/SCI" is TS/SCI regardless of which phrase appears first.
var rules = []rule{
	{types.ClearanceTSSCI, []predicate{
		pattern(`\bts[/-]?sci\b`),
		pattern(`\btop\s+secret[/-]?sci\b`),
		pattern(`\bts\s+w(?:ith)?\s+sci\b`),
		pattern(`\bsci\s+clearance\b`),
		pattern(`\bsci\s+eligible\b`),
	}},
	{types.ClearanceTopSecret, []predicate{
		pattern(`\btop\s+secret\b`),
		pattern(`\bts\s+clearance\b`),
		pattern(`\bts\s+eligible\b`),
		bareTS,
	}},
	{types.ClearanceSecret, []predicate{
		pattern(`\bsecret\s+clearance\b`),
		pattern(`\bsecret\s+eligible\b`),
		pattern(`\bactive\s+secret\b`),
		pattern(`\bcurrent\s+secret\b`),
		bareSecret,
	}},
	{types.ClearancePublicTrust, []predicate{
		pattern(`\bpublic\s+trust\b`),
		pattern(`\bmoderate\s+risk\b`),
		pattern(`\bhigh\s+risk\s+public\s+trust\b`),
		pattern(`\bmbi\b`),
	}},
}

var (
	tsWord        = regexp.MustCompile(`\bts\b`)
	secretWord    = regexp.MustCompile(`\bsecret\b`)
	serviceAfter  = regexp.MustCompile(`^\s+service`)
	topBeforeWord = regexp.MustCompile(`top\s$`)
)

// bareTS matches "ts" that is not joined to another token by "/" or "-" (as in "TS/SCI")
func bareTS(lower string) bool {
	for _, loc := range tsWord.FindAllStringIndex(lower, -1) {
		if loc[0] > 0 && isJoiner(lower[loc[0]-1]) {
			continue
		}
		if loc[1] < len(lower) && isJoiner(lower[loc[1]]) {
			continue
		}
		return true
	}
	return false
}

// bareSecret matches "secret" unless it reads "top secret" or "secret service"
func bareSecret(lower string) bool {
	for _, loc := range secretWord.FindAllStringIndex(lower, -1) {
		start := loc[0] - 4
		if start < 0 {
			start = 0
		}
		if topBeforeWord.MatchString(lower[start:loc[0]]) {
			continue
		}
		if serviceAfter.MatchString(lower[loc[1]:]) {
			continue
		}
		return true
	}
	return false
}

func isJoiner(b byte) bool {
	return b == '/' || b == '-'
}

// federalIndicators suggest a federal or defense background
var federalIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\bdod\b`),
	regexp.MustCompile(`\bdepartment\s+of\s+defense\b`),
	regexp.MustCompile(`\bdefense\s+contractor\b`),
	regexp.MustCompile(`\bcleared\b`),
	regexp.MustCompile(`\bclearance\b`),
	regexp.MustCompile(`\bpolygraph\b`),
	regexp.MustCompile(`\bfull\s+scope\s+poly\b`),
	regexp.MustCompile(`\bci\s+poly\b`),
	regexp.MustCompile(`\blifestyle\s+poly\b`),
	regexp.MustCompile(`\bnispom\b`),
	regexp.MustCompile(`\bscif\b`),
}

// Detect returns the highest clearance level mentioned in text, or ClearanceNone
func Detect(text string) types.ClearanceLevel {
	if text == "" {
		return types.ClearanceNone
	}
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, p := range r.predicates {
			if p(lower) {
				return r.level
			}
		}
	}
	return types.ClearanceNone
}

// Meets reports whether a candidate level satisfies a required level
func Meets(candidate, required types.ClearanceLevel) bool {
	return candidate.Meets(required)
}

// levelAliases maps free-form clearance names to levels
var levelAliases = map[string]types.ClearanceLevel{
	"none":          types.ClearanceNone,
	"none required": types.ClearanceNone,
	"public trust":  types.ClearancePublicTrust,
	"public_trust":  types.ClearancePublicTrust,
	"secret":        types.ClearanceSecret,
	"top secret":    types.ClearanceTopSecret,
	"top_secret":    types.ClearanceTopSecret,
	"topsecret":     types.ClearanceTopSecret,
	"ts":            types.ClearanceTopSecret,
	"ts/sci":        types.ClearanceTSSCI,
	"ts_sci":        types.ClearanceTSSCI,
	"tssci":         types.ClearanceTSSCI,
	"sci":           types.ClearanceTSSCI,
}

// ParseLevel parses a clearance name such as "Top Secret", "TS/SCI" or "PUBLIC_TRUST".
// Unknown and empty strings yield ClearanceNone.
func ParseLevel(s string) types.ClearanceLevel {
	if level, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return types.ClearanceNone
}

// HasFederalContext reports whether text mentions federal or defense work
func HasFederalContext(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range federalIndicators {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}
