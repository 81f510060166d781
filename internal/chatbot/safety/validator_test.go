// internal/chatbot/safety/validator_test.go
package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AcceptsSelects(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"simple select", "SELECT name FROM personnel WHERE army_number = ?"},
		{"lowercase select", "select company, count(*) from personnel group by company"},
		{"join", "SELECT p.name FROM loans l JOIN personnel p ON p.army_number = l.army_number"},
		{"backtick table", "SELECT * FROM `personnel` LIMIT 10"},
		{"scalar subqueries", "SELECT (SELECT COUNT(*) FROM tasks) AS t, (SELECT COUNT(*) FROM loans) AS l"},
		{"allow-listed table containing a keyword", "SELECT COUNT(*) FROM roll_call_points WHERE status = 'Pending'"},
		{"column named created_at", "SELECT username, created_at FROM users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Validate(tt.sql)
			assert.True(t, ok, "reason: %s", reason)
		})
	}
}

func TestValidate_RejectsUnsafe(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty", "   "},
		{"update", "UPDATE personnel SET name = 'x'"},
		{"delete disguised in select", "SELECT 1 FROM personnel WHERE 1=1; DELETE FROM personnel"},
		{"insert keyword", "SELECT * FROM personnel WHERE name = 'a' UNION INSERT INTO users VALUES (1)"},
		{"drop keyword", "SELECT 1; DROP TABLE personnel"},
		{"multiple statements", "SELECT 1; SELECT 2"},
		{"not a select", "SHOW TABLES"},
		{"table off the allow-list", "SELECT * FROM secrets"},
		{"join to unknown table", "SELECT * FROM personnel p JOIN payroll x ON x.id = p.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Validate(tt.sql)
			assert.False(t, ok)
			assert.NotEmpty(t, reason)
		})
	}
}

// A rejected statement reports the first failed check.
func TestValidate_Reasons(t *testing.T) {
	_, reason := Validate("UPDATE personnel SET x = 1")
	assert.Equal(t, "only SELECT queries are allowed", reason)

	_, reason = Validate("SELECT * FROM personnel; SELECT 1")
	assert.Equal(t, "multiple statements are not allowed", reason)

	_, reason = Validate("SELECT * FROM personnel WHERE note = 'please UPDATE me'")
	assert.Equal(t, "forbidden keyword: UPDATE", reason)

	_, reason = Validate("SELECT * FROM secrets")
	assert.Equal(t, "table not allowed: secrets", reason)
}
