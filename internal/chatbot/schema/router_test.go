// internal/chatbot/schema/router_test.go
package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectScoped_Routes(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected string
	}{
		{"officer vocabulary", "who is the adjutant", "roles"},
		{"co keyword", "email of the co", "roles"},
		{"login vocabulary", "reset login for clerk", "roles"},
		{"soldier vocabulary", "how many soldiers are unfit", "personnel"},
		{"company vocabulary", "strength of 1 company", "personnel"},
		{"jco stays rank and file", "jco strength in 2 company", "personnel"},
		{"no route", "what can you tell me", "full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SelectScoped(tt.question).Name)
		})
	}
}

// Whole-word matching: "jco" contains "co" but must not hit the roles route.
func TestSelectScoped_WholeWordOnly(t *testing.T) {
	assert.Equal(t, "personnel", SelectScoped("jco count please").Name)
	assert.Equal(t, "roles", SelectScoped("co on leave").Name)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("personnel"))
	assert.True(t, Allowed("PERSONNEL"))
	assert.True(t, Allowed("roll_call_points"))
	assert.False(t, Allowed("secrets"))
	assert.False(t, Allowed(""))
}

func TestDescriptorPromptText(t *testing.T) {
	text := RankAndFile.PromptText()
	assert.Contains(t, text, "**personnel**:")
	assert.Contains(t, text, "- army_number (varchar)")
	assert.Contains(t, text, "HQ Company")

	rolesText := Roles.PromptText()
	assert.Contains(t, rolesText, "**users**:")
	assert.Contains(t, rolesText, "Never select the password column")
}
