package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearanceLevel_Ordering(t *testing.T) {
	assert.True(t, ClearanceTopSecret.Meets(ClearanceSecret))
	assert.False(t, ClearanceSecret.Meets(ClearanceTSSCI))
	assert.True(t, ClearanceNone.Meets(ClearanceNone))
	assert.True(t, ClearanceTSSCI.Meets(ClearancePublicTrust))
}

func TestClearanceLevel_Names(t *testing.T) {
	tests := []struct {
		level ClearanceLevel
		name  string
		code  string
	}{
		{ClearanceNone, "None Required", "NONE"},
		{ClearancePublicTrust, "Public Trust", "PUBLIC_TRUST"},
		{ClearanceSecret, "Secret", "SECRET"},
		{ClearanceTopSecret, "Top Secret", "TOP_SECRET"},
		{ClearanceTSSCI, "TS/SCI", "TS_SCI"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.level.String())
			assert.Equal(t, tt.code, tt.level.Code())

			parsed, ok := ParseClearanceCode(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.level, parsed)
		})
	}

	assert.Equal(t, "Unknown", ClearanceLevel(42).String())
	assert.Equal(t, "NONE", ClearanceLevel(42).Code())
}

func TestClearanceLevel_JSON(t *testing.T) {
	data, err := json.Marshal(ClearanceTopSecret)
	require.NoError(t, err)
	assert.Equal(t, `"TOP_SECRET"`, string(data))

	tests := []struct {
		input    string
		expected ClearanceLevel
		wantErr  bool
	}{
		{`"TS_SCI"`, ClearanceTSSCI, false},
		{`"public_trust"`, ClearancePublicTrust, false},
		{`""`, ClearanceNone, false},
		{`2`, ClearanceSecret, false},
		{`"COSMIC"`, 0, true},
		{`9`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var l ClearanceLevel
			err := json.Unmarshal([]byte(tt.input), &l)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l)
		})
	}
}
