// Package schemas holds the JSON Schemas for the records the matcher emits.
package schemas

import "embed"

// Schema file names
const (
	Resume      = "resume.schema.json"
	Job         = "job.schema.json"
	MatchResult = "match_result.schema.json"
)

// FS contains every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS

// Names lists the embedded schemas
func Names() []string {
	return []string{Resume, Job, MatchResult}
}
