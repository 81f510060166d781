// internal/chatbot/schema/router.go
package schema

import (
	"strings"
	"unicode"
)

// Keyword routes are checked in order: role/officer vocabulary wins over
// rank-and-file vocabulary, because officer questions answered against the
// personnel table silently return nothing.
var rolesKeywords = []string{
	"commanding officer", "co", "2ic", "adjutant", "oc", "officer",
	"officers", "admin", "clerk", "login", "username", "user", "role",
}

var rankAndFileKeywords = []string{
	"soldier", "soldiers", "jawan", "havaldar", "naib subedar", "subedar",
	"agniveer", "signal man", "nco", "jco", "army", "personnel", "troop",
	"troops", "company",
}

// SelectScoped picks the narrowest schema descriptor for the LLM prompt.
// Input must already be normalized (lower case, aliases expanded). Matching
// is whole-word so "jco" never trips the "co" route.
func SelectScoped(normalized string) Descriptor {
	words := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	padded := " " + strings.Join(words, " ") + " "
	for _, kw := range rolesKeywords {
		if strings.Contains(padded, " "+kw+" ") {
			return Roles
		}
	}
	for _, kw := range rankAndFileKeywords {
		if strings.Contains(padded, " "+kw+" ") {
			return RankAndFile
		}
	}
	return Full
}
