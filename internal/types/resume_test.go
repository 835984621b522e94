package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResume_SerializesEmptyCollections(t *testing.T) {
	data, err := json.Marshal(NewResume(""))
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"skills":[]`)
	assert.Contains(t, s, `"experience":[]`)
	assert.Contains(t, s, `"parse_errors":[]`)
	assert.Contains(t, s, `"contact":{}`)
}

func TestResume_Accessors(t *testing.T) {
	r := NewResume("raw")
	r.Skills = []string{"Go"}
	r.Experience = []WorkExperience{{Company: "Acme"}}
	r.Education = []Education{{Degree: "B.S."}}

	assert.Equal(t, "raw", r.Text())
	assert.Equal(t, []string{"Go"}, r.SkillList())
	assert.Len(t, r.ExperienceEntries(), 1)
	assert.Len(t, r.EducationEntries(), 1)
	assert.False(t, r.HasErrors())

	r.ParseErrors = append(r.ParseErrors, "Skill extraction failed: boom")
	assert.True(t, r.HasErrors())
}

func TestContactInfo_IsEmpty(t *testing.T) {
	assert.True(t, ContactInfo{}.IsEmpty())
	assert.False(t, ContactInfo{Email: "a@b.io"}.IsEmpty())
}

func TestResume_Summary(t *testing.T) {
	r := NewResume("text")
	r.Contact = ContactInfo{Name: "Jane Doe", Email: "jane@gmail.com"}
	r.Skills = []string{"Go", "SQL"}
	r.Sections = map[string]ParsedSection{
		"skills":     {Name: "skills", StartIndex: 300},
		"experience": {Name: "experience", StartIndex: 40},
		"education":  {Name: "education", StartIndex: 200},
	}

	s := r.Summary()
	assert.Equal(t, "Jane Doe", s.Name)
	assert.Equal(t, 2, s.SkillsCount)
	assert.Equal(t, 0, s.ExperienceCount)
	assert.Equal(t, []string{"experience", "education", "skills"}, s.SectionsFound)
	assert.False(t, s.HasErrors)
}
