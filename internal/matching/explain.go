package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// yearsPerPositionNote is the rough tenure behind the experience note. The
// note is a display heuristic and deliberately separate from the experience score.
const yearsPerPositionNote = 2

var tierSummaries = map[string]string{
	types.TierExcellent: "Outstanding match with strong alignment across all criteria.",
	types.TierStrong:    "Strong candidate with good technical and experience fit.",
	types.TierGood:      "Solid match with some areas for growth.",
	types.TierFair:      "Moderate fit - may require additional training.",
	types.TierWeak:      "Limited match - significant gaps identified.",
}

// Explain assembles the human-readable explanation of a result
func Explain(r *types.MatchResult) string {
	if r.Disqualified {
		return "Not qualified: " + r.DisqualificationReason
	}

	parts := []string{tierSummaries[r.Tier()]}

	if n := len(r.MatchedSkills); n > 0 {
		parts = append(parts, fmt.Sprintf("Matches %d key skills: %s.", n, listPreview(r.MatchedSkills, 5)))
	}
	if n := len(r.MissingRequiredSkills); n > 0 {
		parts = append(parts, fmt.Sprintf("Missing %d required skills: %s.", n, listPreview(r.MissingRequiredSkills, 3)))
	}

	switch {
	case r.SemanticScore >= 0.8:
		parts = append(parts, "Strong semantic match with job description.")
	case r.SemanticScore >= 0.6:
		parts = append(parts, "Good semantic match with job description.")
	case r.SemanticScore >= 0.4:
		parts = append(parts, "Moderate semantic match with job description.")
	}

	for _, note := range []string{r.ExperienceNote, r.EducationNote} {
		if note != "" {
			parts = append(parts, note+".")
		}
	}

	if r.ClearanceMet {
		parts = append(parts, "Meets security clearance requirements.")
	}
	return strings.Join(parts, " ")
}

// listPreview joins the first limit items, marking truncation with "..."
func listPreview(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + "..."
}

// experienceNote compares the number of listed positions with the job's
// minimum years; empty when the job states no minimum
func experienceNote(c Candidate, job *types.Job) string {
	if job.MinExperienceYears == nil {
		return ""
	}
	positions := len(c.ExperienceEntries())
	if positions*yearsPerPositionNote >= *job.MinExperienceYears {
		return fmt.Sprintf("Experience appears sufficient (%d positions)", positions)
	}
	return fmt.Sprintf("May need more experience (has %d positions, requires %d+ years)", positions, *job.MinExperienceYears)
}

// educationNote summarizes the candidate's degrees; empty when the job lists
// no education requirements
func educationNote(c Candidate, job *types.Job) string {
	if len(job.EducationRequirements) == 0 {
		return ""
	}

	var entries []types.Education
	if src, ok := c.(educationSource); ok {
		entries = src.EducationEntries()
	}
	if len(entries) == 0 {
		return "No education information found"
	}

	var degrees []string
	for _, e := range entries {
		if e.Degree != "" {
			degrees = append(degrees, e.Degree)
		}
	}
	if len(degrees) == 0 {
		return fmt.Sprintf("Has %d education entries", len(entries))
	}
	if len(degrees) > 2 {
		degrees = degrees[:2]
	}
	return "Has education: " + strings.Join(degrees, ", ")
}

// Recommendations suggests how to close up to five skill gaps, in order
func Recommendations(missing []string) []string {
	recs := []string{}
	for _, skill := range missing {
		if len(recs) == types.MaxUpskillingItems {
			break
		}
		name := skills.Canonical(skill)
		if res, ok := types.LookupLearningResource(skill); ok {
			recs = append(recs, fmt.Sprintf("Learn %s: %s", name, res.LearningPath))
			continue
		}
		recs = append(recs, fmt.Sprintf("Develop %s skills", name))
	}
	return recs
}
