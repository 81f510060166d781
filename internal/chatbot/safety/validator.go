// Package safety gates every SQL statement — template-generated and
// LLM-generated alike — before it can reach the executor. The check is a
// deliberate string-level gate: it must reject without needing a SQL parser
// to accept the text first.
package safety

import (
	"regexp"
	"strings"

	"hrms-chatbot/internal/chatbot/schema"
)

// forbiddenRe rejects any write/DDL/procedure keyword appearing as a word
// anywhere in the statement. Word boundaries matter: a raw substring scan
// would reject the allow-listed roll_call_points table for containing CALL.
var forbiddenRe = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|TRUNCATE|REPLACE|EXEC|CALL)\b`)

// tableRefRe extracts table names following FROM/JOIN, tolerating backtick
// quoting and aliases.
var tableRefRe = regexp.MustCompile("(?i)\\b(?:FROM|JOIN)\\s+`?(\\w+)`?")

// Validate checks that sql is exactly one read-only SELECT over allow-listed
// tables. Returns (false, reason) on the first failed check; a rejected
// query must be discarded, never executed.
func Validate(sql string) (bool, string) {
	s := strings.TrimSpace(sql)
	if s == "" {
		return false, "empty statement"
	}
	if !strings.HasPrefix(strings.ToUpper(s), "SELECT") {
		return false, "only SELECT queries are allowed"
	}
	if strings.Contains(s, ";") {
		return false, "multiple statements are not allowed"
	}
	if m := forbiddenRe.FindString(s); m != "" {
		return false, "forbidden keyword: " + strings.ToUpper(m)
	}
	for _, m := range tableRefRe.FindAllStringSubmatch(s, -1) {
		if !schema.Allowed(m[1]) {
			return false, "table not allowed: " + m[1]
		}
	}
	return true, ""
}
