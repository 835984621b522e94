package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name  string
		json  bool
		debug bool
	}{
		{"console info", false, false},
		{"json debug", true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.json, tc.debug)
			require.NoError(t, err)
			assert.Equal(t, tc.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestStringFields(t *testing.T) {
	fields := StringFields("  source  ", "  resume.pdf  ", "ignored", "   ", "   ", "empty key", "dangling")

	require.Len(t, fields, 1)
	assert.Equal(t, "source", fields[0].Key)
	assert.Equal(t, "resume.pdf", fields[0].String)

	assert.Empty(t, StringFields())
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	WithFields(l, zap.String(FieldJobID, "job-1")).Info("matched")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "job-1", entries[0].ContextMap()[FieldJobID])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	assert.NotPanics(t, func() { fallback.Info("another log") })
}

func TestEmbeddingFields(t *testing.T) {
	fields := EmbeddingFields("gemini", "text-embedding-004")
	require.Len(t, fields, 2)
	assert.Equal(t, FieldProvider, fields[0].Key)
	assert.Equal(t, FieldModel, fields[1].Key)

	assert.Empty(t, EmbeddingFields("", ""))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("  hello  ", 10))
	assert.Equal(t, "hel...", Truncate("hello", 3))
	assert.Equal(t, "", Truncate("hello", 0))
}
