package parsing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-matcher/internal/types"
)

const sampleResume = `Jane Doe
jane.doe@gmail.com | (512) 555-0199
Austin, TX

EXPERIENCE
Senior Software Engineer
Acme Corp | Jan 2020 - Present
- Built Python services on Kubernetes
Software Engineer
Beta Inc | 2016 - 2019
- Wrote Docker tooling

EDUCATION
Stanford University
B.S. in Computer Science, 2015

SKILLS
Python, Docker, PostgreSQL`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResumeParser_ParseText(t *testing.T) {
	p := NewResumeParser()
	got := p.ParseText(sampleResume, "")

	assert.Equal(t, "text", got.FileType)
	assert.Empty(t, got.ParseErrors)

	assert.Equal(t, "Jane Doe", got.Contact.Name)
	assert.Equal(t, "jane.doe@gmail.com", got.Contact.Email)
	assert.Equal(t, "(512) 555-0199", got.Contact.Phone)
	assert.Equal(t, "Austin, TX", got.Contact.Location)

	assert.Contains(t, got.Sections, "experience")
	assert.Contains(t, got.Sections, "education")
	assert.Contains(t, got.Sections, "skills")

	assert.Subset(t, got.Skills, []string{"Python", "Docker", "PostgreSQL", "Kubernetes"})

	require.Len(t, got.Experience, 2)
	assert.Equal(t, "Senior Software Engineer", got.Experience[0].Role)
	assert.Equal(t, "Acme Corp", got.Experience[0].Company)
	assert.True(t, got.Experience[0].IsCurrent)

	require.Len(t, got.Education, 1)
	assert.Equal(t, "Stanford University", got.Education[0].Institution)
}

func TestResumeParser_ParseTextEmpty(t *testing.T) {
	got := NewResumeParser().ParseText("", "paste")

	assert.Equal(t, "paste", got.FileType)
	assert.Empty(t, got.ParseErrors)
	assert.Empty(t, got.Skills)
	assert.NotNil(t, got.Skills)
	assert.NotNil(t, got.Sections)
}

func TestResumeParser_CustomSkills(t *testing.T) {
	p := NewResumeParser(WithCustomSkills("Temporal"), WithoutSoftSkills())
	got := p.ParseText("Built workflows with Temporal. Strong leadership and communication.", "text")

	assert.Contains(t, got.Skills, "Temporal")
	assert.NotContains(t, got.Skills, "Leadership")
}

func TestResumeParser_StageRecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := NewResumeParser(WithLogger(zap.New(core)))
	resume := types.NewResume("text")

	p.stage(resume, p.log, StageContact, func() { panic("boom") })
	ran := false
	p.stage(resume, p.log, StageSkill, func() { ran = true })

	assert.Equal(t, []string{"Contact extraction failed: boom"}, resume.ParseErrors)
	assert.True(t, ran, "later stages still run")
	assert.Equal(t, 1, logs.FilterMessage("extraction stage failed").Len())
}

func TestResumeParser_ParseFile(t *testing.T) {
	ctx := context.Background()
	p := NewResumeParser()

	t.Run("text file", func(t *testing.T) {
		path := writeFile(t, "resume.txt", sampleResume)
		got, err := p.ParseFile(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, path, got.FilePath)
		assert.Equal(t, "txt", got.FileType)
		assert.Equal(t, "jane.doe@gmail.com", got.Contact.Email)
		assert.Empty(t, got.ParseErrors)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := p.ParseFile(ctx, filepath.Join(t.TempDir(), "nope.pdf"))
		var notFound *FileNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "file not found")
	})

	t.Run("unsupported type", func(t *testing.T) {
		path := writeFile(t, "resume.xlsx", "data")
		_, err := p.ParseFile(ctx, path)
		var unsupported *UnsupportedFileTypeError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, ".xlsx", unsupported.Extension)
		assert.Contains(t, err.Error(), ".pdf")
	})

	t.Run("empty document is a soft error", func(t *testing.T) {
		path := writeFile(t, "blank.txt", "  \n\n ")
		got, err := p.ParseFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, []string{"No text could be extracted from the file"}, got.ParseErrors)
	})

	t.Run("corrupt document is a soft error", func(t *testing.T) {
		path := writeFile(t, "broken.docx", "not a zip archive")
		got, err := p.ParseFile(ctx, path)
		require.NoError(t, err)
		require.Len(t, got.ParseErrors, 1)
		assert.Contains(t, got.ParseErrors[0], "Failed to extract text from file")
	})
}

func TestResumeRoundTrip(t *testing.T) {
	original := NewResumeParser().ParseText(sampleResume, "text")

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded types.Resume
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, &decoded)
}
