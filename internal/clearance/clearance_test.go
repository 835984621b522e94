package clearance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected types.ClearanceLevel
	}{
		{"ts sci slash", "Active TS/SCI clearance with CI Poly", types.ClearanceTSSCI},
		{"ts sci hyphen", "Requires TS-SCI", types.ClearanceTSSCI},
		{"top secret sci", "Top Secret/SCI eligible", types.ClearanceTSSCI},
		{"ts with sci", "TS with SCI access", types.ClearanceTSSCI},
		{"sci eligible", "Must be SCI eligible", types.ClearanceTSSCI},
		{"top secret", "Holds a Top Secret clearance", types.ClearanceTopSecret},
		{"bare ts", "Clearance: TS", types.ClearanceTopSecret},
		{"ts clearance", "ts clearance preferred", types.ClearanceTopSecret},
		{"secret clearance", "Active Secret clearance", types.ClearanceSecret},
		{"bare secret", "Clearance level: Secret", types.ClearanceSecret},
		{"secret service is not a clearance", "Former Secret Service agent", types.ClearanceNone},
		{"public trust", "Public Trust position", types.ClearancePublicTrust},
		{"mbi", "MBI investigation completed", types.ClearancePublicTrust},
		{"highest wins", "Secret clearance required, TS/SCI preferred", types.ClearanceTSSCI},
		{"no clearance", "Go developer with Kubernetes experience", types.ClearanceNone},
		{"empty", "", types.ClearanceNone},
		{"ts inside word", "Built dashboards with charts", types.ClearanceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.text))
		})
	}
}

func TestMeets(t *testing.T) {
	tests := []struct {
		name      string
		candidate types.ClearanceLevel
		required  types.ClearanceLevel
		expected  bool
	}{
		{"nothing required", types.ClearanceNone, types.ClearanceNone, true},
		{"higher satisfies lower", types.ClearanceTSSCI, types.ClearanceSecret, true},
		{"equal satisfies", types.ClearanceSecret, types.ClearanceSecret, true},
		{"lower fails", types.ClearanceSecret, types.ClearanceTopSecret, false},
		{"none fails public trust", types.ClearanceNone, types.ClearancePublicTrust, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Meets(tt.candidate, tt.required))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected types.ClearanceLevel
	}{
		{"None Required", types.ClearanceNone},
		{"Public Trust", types.ClearancePublicTrust},
		{"PUBLIC_TRUST", types.ClearancePublicTrust},
		{"secret", types.ClearanceSecret},
		{"Top Secret", types.ClearanceTopSecret},
		{"TS", types.ClearanceTopSecret},
		{"TS/SCI", types.ClearanceTSSCI},
		{"ts_sci", types.ClearanceTSSCI},
		{"  tssci  ", types.ClearanceTSSCI},
		{"cosmic", types.ClearanceNone},
		{"", types.ClearanceNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestHasFederalContext(t *testing.T) {
	assert.True(t, HasFederalContext("Supported DoD programs inside a SCIF"))
	assert.True(t, HasFederalContext("Full Scope Poly required"))
	assert.True(t, HasFederalContext("Cleared engineers only"))
	assert.False(t, HasFederalContext("Startup building consumer apps"))
	assert.False(t, HasFederalContext(""))
}
