// Package nlp is the question-understanding front of the pipeline:
// normalization, entity extraction and intent classification. All three are
// pure functions over the question text; nothing here touches the database.
package nlp

import (
	"regexp"
	"strings"
)

// aliasRules expand unit shorthand into the canonical vocabulary the
// extractor and the SQL templates expect. Each rule is a fixed point:
// applying it to its own output changes nothing, which keeps Normalize
// idempotent.
var aliasRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	// company shorthand: "1 coy", "1 co", "coy 1", "company 1" -> "1 company"
	{regexp.MustCompile(`\b(\d+)\s*(?:coy|co|company)\b`), "$1 company"},
	{regexp.MustCompile(`\b(?:coy|co|company)\s*(\d+)\b`), "$1 company"},
	{regexp.MustCompile(`\bhq\s*(?:coy|co|company)\b`), "hq company"},
	{regexp.MustCompile(`\bheadquarters\b`), "hq company"},
	// rank shorthand
	{regexp.MustCompile(`\bnb\s*sub\b`), "naib subedar"},
	{regexp.MustCompile(`\bsub\s*maj\b`), "subedar major"},
	{regexp.MustCompile(`\bhav(?:aldar)?\b`), "havaldar"},
	{regexp.MustCompile(`\bsigs?\s*man\b`), "signal man"},
}

// Normalize lower-cases, collapses whitespace and expands shorthand.
// Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Join(strings.Fields(s), " ")
	for _, rule := range aliasRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	// alias expansion can join tokens; fold whitespace once more
	return strings.Join(strings.Fields(s), " ")
}
