package executor

import "strings"

// sensitiveColumns are always masked regardless of name shape.
var sensitiveColumns = map[string]struct{}{
	"uid_no":           {},
	"aadhar_card_no":   {},
	"pan_card_no":      {},
	"joint_account_no": {},
	"kin_account_no":   {},
}

// isSensitive reports whether a column's values must be masked. Beyond the
// fixed set, any column whose name mentions an account or uid is treated as
// sensitive so new schema columns fail closed.
func isSensitive(column string) bool {
	c := strings.ToLower(column)
	if _, ok := sensitiveColumns[c]; ok {
		return true
	}
	return strings.Contains(c, "account") || strings.Contains(c, "uid")
}

// maskValue keeps the last four characters visible. Values of four or fewer
// characters are masked entirely; an absent value stays the em dash it would
// render as unmasked.
func maskValue(v string) string {
	if v == "" {
		return "—"
	}
	if len(v) <= 4 {
		return "XXXX"
	}
	return "XXXX" + v[len(v)-4:]
}
