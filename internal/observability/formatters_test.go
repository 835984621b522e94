package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.NewResume("text")
	r.Contact = types.ContactInfo{Name: "Jane Doe", Email: "jane.doe@gmail.com"}
	r.Skills = []string{"Go", "Python", "SQL", "Docker", "AWS", "Rust", "Terraform"}
	r.Experience = []types.WorkExperience{{Role: "Engineer", Company: "Acme", StartDate: "2020", EndDate: "Present"}}
	r.ParseErrors = []string{"Education extraction failed: boom"}

	p.PrintResume(r)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Engineer @ Acme (2020 - Present)")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Education extraction failed")
	assert.Contains(t, output, "Phone:      -")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(nil)
	assert.Empty(t, buf.String())
}

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	j := types.NewJob("text")
	j.Title = "Senior Backend Engineer"
	j.Company = "Acme"
	j.Location = "Arlington, VA"
	j.IsHybrid = true
	j.MinExperienceYears = types.IntPtr(5)
	j.MaxExperienceYears = types.IntPtr(8)
	j.ClearanceLevel = types.ClearanceTSSCI
	j.RequiredSkills = []string{"Go", "PostgreSQL"}
	j.PreferredSkills = []string{"Terraform"}

	p.PrintJob(j)
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB")
	assert.Contains(t, output, "Arlington, VA (hybrid)")
	assert.Contains(t, output, "5-8 years")
	assert.Contains(t, output, "TS/SCI")
	assert.Contains(t, output, "Preferred skills:")
	assert.Contains(t, output, "Terraform")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := &types.MatchResult{
		JobTitle:                  "Go Engineer",
		Score:                     72.4,
		SemanticScore:             0.61,
		SkillScore:                0.9,
		ExperienceScore:           0.7,
		MatchedSkills:             []string{"Go", "Kubernetes"},
		MissingRequiredSkills:     []string{"Rust"},
		UpskillingRecommendations: []string{"Develop Rust skills"},
	}
	p.PrintMatch(r, types.DefaultWeights())
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULT")
	assert.Contains(t, output, "72.4 / 100 (Strong)")
	assert.Contains(t, output, "skills")
	assert.Contains(t, output, "Missing (required):")
	assert.Contains(t, output, "Develop Rust skills")
}

func TestPrintMatch_Disqualified(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatch(&types.MatchResult{Disqualified: true, DisqualificationReason: "Clearance requirement not met."}, types.DefaultWeights())
	output := buf.String()

	assert.Contains(t, output, "Disqualified")
	assert.Contains(t, output, "Clearance requirement not met.")
	assert.NotContains(t, output, "semantic")
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRanking([]*types.MatchResult{
		{JobTitle: "Go Engineer", JobCompany: "Acme", Score: 88},
		{JobTitle: "Pastry Chef", Score: 12},
	})
	output := buf.String()

	assert.Contains(t, output, "RANKED MATCHES (2)")
	assert.Contains(t, output, "Go Engineer @ Acme")
	assert.Contains(t, output, "Excellent")
	assert.Contains(t, output, "Weak")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Len(t, lines, 5)
	assert.Contains(t, lines[3], "...")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
}
