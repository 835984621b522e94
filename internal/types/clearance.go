// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ClearanceLevel is a US government security clearance tier.
// Values are ordered: a higher value satisfies every lower requirement.
type ClearanceLevel int

// Clearance levels from lowest to highest
const (
	ClearanceNone ClearanceLevel = iota
	ClearancePublicTrust
	ClearanceSecret
	ClearanceTopSecret
	ClearanceTSSCI
)

var clearanceNames = map[ClearanceLevel]string{
	ClearanceNone:        "None Required",
	ClearancePublicTrust: "Public Trust",
	ClearanceSecret:      "Secret",
	ClearanceTopSecret:   "Top Secret",
	ClearanceTSSCI:       "TS/SCI",
}

var clearanceCodes = map[ClearanceLevel]string{
	ClearanceNone:        "NONE",
	ClearancePublicTrust: "PUBLIC_TRUST",
	ClearanceSecret:      "SECRET",
	ClearanceTopSecret:   "TOP_SECRET",
	ClearanceTSSCI:       "TS_SCI",
}

// String returns the human-readable clearance name
func (l ClearanceLevel) String() string {
	if name, ok := clearanceNames[l]; ok {
		return name
	}
	return "Unknown"
}

// Code returns the stable upper-case identifier used in serialized records
func (l ClearanceLevel) Code() string {
	if code, ok := clearanceCodes[l]; ok {
		return code
	}
	return "NONE"
}

// Meets reports whether l satisfies the required level
func (l ClearanceLevel) Meets(required ClearanceLevel) bool {
	return l >= required
}

// MarshalJSON encodes the level as its code
func (l ClearanceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Code())
}

// UnmarshalJSON accepts either a code string or the numeric level
func (l *ClearanceLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		level, ok := ParseClearanceCode(s)
		if !ok {
			return fmt.Errorf("unknown clearance level %q", s)
		}
		*l = level
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("clearance level must be a string or integer: %w", err)
	}
	if n < int(ClearanceNone) || n > int(ClearanceTSSCI) {
		return fmt.Errorf("clearance level %d out of range", n)
	}
	*l = ClearanceLevel(n)
	return nil
}

// ParseClearanceCode parses an identifier such as "TOP_SECRET" (case-insensitive)
func ParseClearanceCode(s string) (ClearanceLevel, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if key == "" {
		return ClearanceNone, true
	}
	for level, code := range clearanceCodes {
		if code == key {
			return level, true
		}
	}
	return ClearanceNone, false
}
