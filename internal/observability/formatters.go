// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items as bullets, then a count of the rest
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}
	s := r.Summary()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", orDash(s.Name)))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", orDash(s.Email)))
	sb.WriteString(fmt.Sprintf("Phone:      %s\n", orDash(r.Contact.Phone)))
	sb.WriteString(fmt.Sprintf("Location:   %s\n", orDash(r.Contact.Location)))
	sb.WriteString(fmt.Sprintf("Sections:   %s\n", orDash(strings.Join(s.SectionsFound, ", "))))
	sb.WriteString(fmt.Sprintf("Skills: %d  Positions: %d  Education: %d\n", s.SkillsCount, s.ExperienceCount, s.EducationCount))
	sb.WriteString("\n")

	writeList(&sb, "Skills", r.Skills, maxItemsToShow)

	if len(r.Experience) > 0 {
		sb.WriteString("Experience:\n")
		for _, e := range r.Experience[:min(len(r.Experience), 3)] {
			sb.WriteString(fmt.Sprintf("  • %s", orDash(e.Role)))
			if e.Company != "" {
				sb.WriteString(" @ " + e.Company)
			}
			if e.StartDate != "" {
				sb.WriteString(fmt.Sprintf(" (%s - %s)", e.StartDate, orDash(e.EndDate)))
			}
			sb.WriteString("\n")
		}
	}

	writeList(&sb, "Parse errors", r.ParseErrors, 3)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs a human-readable summary of a parsed job posting.
func (p *Printer) PrintJob(j *types.Job) {
	if j == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:      %s\n", j.Title))
	sb.WriteString(fmt.Sprintf("Company:    %s\n", orDash(j.Company)))
	sb.WriteString(fmt.Sprintf("Location:   %s%s\n", orDash(j.Location), workMode(j)))
	if j.MinExperienceYears != nil {
		years := fmt.Sprintf("%d+", *j.MinExperienceYears)
		if j.MaxExperienceYears != nil {
			years = fmt.Sprintf("%d-%d", *j.MinExperienceYears, *j.MaxExperienceYears)
		}
		sb.WriteString(fmt.Sprintf("Experience: %s years\n", years))
	}
	sb.WriteString(fmt.Sprintf("Clearance:  %s\n", j.ClearanceLevel))
	sb.WriteString("\n")

	writeList(&sb, "Required skills", j.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred skills", j.PreferredSkills, 3)
	writeList(&sb, "Education", j.EducationRequirements, 2)

	p.printBox("PARSED JOB", strings.TrimSuffix(sb.String(), "\n"))
}

func workMode(j *types.Job) string {
	var modes []string
	if j.IsRemote {
		modes = append(modes, "remote")
	}
	if j.IsHybrid {
		modes = append(modes, "hybrid")
	}
	if j.IsOnsite {
		modes = append(modes, "onsite")
	}
	if len(modes) == 0 {
		return ""
	}
	return " (" + strings.Join(modes, ", ") + ")"
}

// PrintMatch outputs the score breakdown and explanation for one result.
func (p *Printer) PrintMatch(r *types.MatchResult, w types.Weights) {
	if r == nil {
		return
	}

	var sb strings.Builder
	if r.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Job:        %s\n", r.JobTitle))
	}
	sb.WriteString(fmt.Sprintf("Score:      %.1f / 100 (%s)\n", r.Score, r.Tier()))

	if r.Disqualified {
		sb.WriteString("\n" + r.DisqualificationReason)
		p.printBox("MATCH RESULT", sb.String())
		return
	}

	b := r.Breakdown(w)
	sb.WriteString("\n")
	for _, name := range []string{"semantic", "skills", "experience"} {
		c := b.Components[name]
		sb.WriteString(fmt.Sprintf("  %-11s %.2f x %.2f = %5.1f\n", name, c.Score, c.Weight, c.Contribution))
	}
	sb.WriteString("\n")

	writeList(&sb, "Matched", r.MatchedSkills, maxItemsToShow)
	writeList(&sb, "Missing (required)", r.MissingRequiredSkills, 3)
	writeList(&sb, "Missing (preferred)", r.MissingPreferredSkills, 3)
	writeList(&sb, "Recommendations", r.UpskillingRecommendations, 3)

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs a compact table of results in the given order.
func (p *Printer) PrintRanking(results []*types.MatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range results {
		label := r.JobTitle
		if r.JobCompany != "" {
			label += " @ " + r.JobCompany
		}
		sb.WriteString(fmt.Sprintf("#%-2d %5.1f  %-12s %s\n", i+1, r.Score, r.Tier(), orDash(label)))
	}

	p.printBox(fmt.Sprintf("RANKED MATCHES (%d)", len(results)), strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
