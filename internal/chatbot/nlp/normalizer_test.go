// internal/chatbot/nlp/normalizer_test.go
package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CompanyShorthand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"coy suffix", "How many personnel in 1 Coy", "how many personnel in 1 company"},
		{"co suffix", "strength of 2 co", "strength of 2 company"},
		{"coy prefix", "who is in coy 3", "who is in 3 company"},
		{"hq coy", "list HQ Coy personnel", "list hq company personnel"},
		{"headquarters", "Headquarters strength", "hq company strength"},
		{"already canonical", "1 company strength", "1 company strength"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_RankShorthand(t *testing.T) {
	assert.Equal(t, "naib subedar singh", Normalize("Nb Sub Singh"))
	assert.Equal(t, "subedar major kumar", Normalize("Sub Maj Kumar"))
	assert.Equal(t, "havaldar sharma", Normalize("Hav Sharma"))
	assert.Equal(t, "signal man verma", Normalize("Sig Man Verma"))
}

func TestNormalize_WhitespaceAndCase(t *testing.T) {
	assert.Equal(t, "details of 778g", Normalize("  Details   OF\t778G  "))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"How many personnel in 1 Coy",
		"Nb Sub Singh leave balance",
		"HQ Coy dashboard",
		"details of army number JC457693",
		"who is on leave today",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input: %q", in)
	}
}
