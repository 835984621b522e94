package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane@example.com

SUMMARY
Backend engineer with eight years of experience.

Professional Experience:
Senior Engineer
Acme Corp | 2019 - Present
Built payment services.

EDUCATION
B.S. Computer Science, State University, 2015

Technical Skills
Go, Python, Docker`

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"EXPERIENCE", Experience},
		{"Work History", Experience},
		{"Professional Experience:", Experience},
		{"Education", Education},
		{"Technical Skills", Skills},
		{"Core Competencies", Skills},
		{"SUMMARY", Summary},
		{"CERTIFICATIONS & LICENSES", Certifications},
		{"PROJECTS -", Projects},
		{"Volunteer Work", Volunteer},
		{"Hobbies", Interests},
		{"References", References},
		{"I have lots of experience in Go.", ""},
		{"Acme Corp", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchHeader(tt.line))
		})
	}
}

func TestSegment(t *testing.T) {
	got := Segment(sampleResume)

	require.Len(t, got, 4)

	assert.Equal(t, "Backend engineer with eight years of experience.", got[Summary].Content)
	assert.Contains(t, got[Experience].Content, "Acme Corp | 2019 - Present")
	assert.NotContains(t, got[Experience].Content, "EDUCATION")
	assert.Equal(t, "B.S. Computer Science, State University, 2015", got[Education].Content)
	assert.Equal(t, "Go, Python, Docker", got[Skills].Content)

	assert.Equal(t, strings.Index(sampleResume, "SUMMARY"), got[Summary].StartIndex)
	assert.Equal(t, got[Experience].StartIndex, got[Summary].EndIndex)
	assert.Equal(t, len(sampleResume), got[Skills].EndIndex)
}

func TestSegment_NonOverlapping(t *testing.T) {
	ordered := Ordered(Segment(sampleResume))
	require.Len(t, ordered, 4)

	for i := 1; i < len(ordered); i++ {
		assert.LessOrEqual(t, ordered[i-1].EndIndex, ordered[i].StartIndex)
	}
	assert.Equal(t, Summary, ordered[0].Name)
	assert.Equal(t, Skills, ordered[3].Name)
}

func TestSegment_EmptySectionsDropped(t *testing.T) {
	got := Segment("SUMMARY\n\nEXPERIENCE\nAcme Corp")

	_, hasSummary := got[Summary]
	assert.False(t, hasSummary)
	assert.Equal(t, "Acme Corp", got[Experience].Content)
}

func TestSegment_FirstOccurrenceWins(t *testing.T) {
	got := Segment("SKILLS\nGo\n\nEXPERIENCE\nAcme\n\nSKILLS\nRust")

	assert.Equal(t, "Go", got[Skills].Content)
}

func TestSegment_NoHeaders(t *testing.T) {
	assert.Empty(t, Segment("just a paragraph of plain prose without any headings."))
	assert.Empty(t, Segment(""))
	assert.Empty(t, Segment("   \n  "))
}

func TestContent(t *testing.T) {
	got := Segment(sampleResume)
	assert.Equal(t, "Go, Python, Docker", Content(got, Skills))
	assert.Equal(t, "", Content(got, Awards))
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 13)
	assert.Equal(t, Contact, names[0])
}
