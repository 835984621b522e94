// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// JobFromMap builds a Job from a loosely typed record such as a decoded JSON or YAML document.
// Clearance may be given as a code ("SECRET"), a display name ("TS/SCI") or an integer,
// and "description" is accepted as an alias for raw_text.
func JobFromMap(data map[string]any) (*Job, error) {
	job := NewJob("")
	job.Title = ""

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			clearanceHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           job,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("failed to decode job record: %w", err)
	}

	if job.RawText == "" {
		if desc, ok := data["description"].(string); ok {
			job.RawText = desc
		}
	}
	if job.Title == "" {
		job.Title = "Unknown Position"
	}

	return job, nil
}

func clearanceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(ClearanceLevel(0)) || from.Kind() != reflect.String {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))
	if level, ok := ParseClearanceCode(s); ok {
		return level, nil
	}
	for level, name := range clearanceNames {
		if strings.EqualFold(name, s) {
			return level, nil
		}
	}
	return nil, fmt.Errorf("unknown clearance level %q", s)
}
