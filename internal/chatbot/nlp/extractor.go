// internal/chatbot/nlp/extractor.go
package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"hrms-chatbot/internal/models"
)

// Identifier shapes: JC457693, 15740527W, 778G, 156WE, A4203413X — mixed
// letters/digits, 3–12 characters. The explicit "army number <token>" phrase
// is preferred because bare patterns also match course codes and amounts.
var (
	idAfterPhraseRe = regexp.MustCompile(`\barmy\s*number\s+([a-z0-9]{3,12})\b`)
	idGenericRe     = regexp.MustCompile(`\b[a-z0-9]{3,12}\b`)
	hasLetterRe     = regexp.MustCompile(`[a-z]`)
	hasDigitRe      = regexp.MustCompile(`[0-9]`)

	dateISORe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dateSlashRe    = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	dateRelativeRe = regexp.MustCompile(`\b(today|yesterday|tomorrow)\b`)

	leaveCasualRe = regexp.MustCompile(`\bcl\b`)
	leaveAALRe    = regexp.MustCompile(`\baal\b`)
	leaveAnnualRe = regexp.MustCompile(`\bal\b`)
)

// companyAliases maps normalized text fragments to the enumerated company
// set. Normalization has already expanded "coy"/"co" shorthand.
var companyAliases = []struct {
	pattern   *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`\b1 company\b`), "1 Company"},
	{regexp.MustCompile(`\b2 company\b`), "2 Company"},
	{regexp.MustCompile(`\b3 company\b`), "3 Company"},
	{regexp.MustCompile(`\bhq company\b`), "HQ Company"},
}

// rankAliases are checked in order; first match wins. Longer ranks come
// before their substrings ("naib subedar" before "subedar").
var rankAliases = []struct {
	pattern   *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`\bsubedar major\b`), "Subedar Major"},
	{regexp.MustCompile(`\bnaib subedar\b`), "Naib Subedar"},
	{regexp.MustCompile(`\bsubedar\b`), "Subedar"},
	{regexp.MustCompile(`\bhavaldar\b`), "HAV"},
	{regexp.MustCompile(`\bl nk\b`), "L NK"},
	{regexp.MustCompile(`\bnk\b`), "NK"},
	{regexp.MustCompile(`\bagniveer\b`), "Agniveer"},
	{regexp.MustCompile(`\bsignal man\b`), "Signal Man"},
	{regexp.MustCompile(`\bjco\b`), "JCO"},
	{regexp.MustCompile(`\bnco\b`), "NCO"},
	{regexp.MustCompile(`\boc\b`), "OC"},
	{regexp.MustCompile(`\bco\b`), "CO"},
	{regexp.MustCompile(`\bor\b`), "OR"},
}

// Extract pulls structured entities out of normalized text. Each extractor
// keeps at most the first match; absence is a zero value, never an error.
func Extract(normalized string, now time.Time) models.EntitySet {
	return models.EntitySet{
		Identifier: extractIdentifier(normalized),
		Company:    extractCompany(normalized),
		Date:       extractDate(normalized, now),
		Rank:       extractRank(normalized),
		LeaveType:  extractLeaveType(normalized),
	}
}

func extractIdentifier(s string) string {
	if m := idAfterPhraseRe.FindStringSubmatch(s); m != nil {
		return strings.ToUpper(m[1])
	}
	// generic tokens must mix letters and digits so plain words and bare
	// numbers (years, counts) never read as identifiers
	for _, m := range idGenericRe.FindAllString(s, -1) {
		if hasLetterRe.MatchString(m) && hasDigitRe.MatchString(m) {
			return strings.ToUpper(m)
		}
	}
	return ""
}

func extractCompany(s string) string {
	for _, a := range companyAliases {
		if a.pattern.MatchString(s) {
			return a.canonical
		}
	}
	return ""
}

func extractDate(s string, now time.Time) *time.Time {
	if m := dateRelativeRe.FindString(s); m != "" {
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		switch m {
		case "yesterday":
			d = d.AddDate(0, 0, -1)
		case "tomorrow":
			d = d.AddDate(0, 0, 1)
		}
		return &d
	}
	if m := dateISORe.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3])
	}
	if m := dateSlashRe.FindStringSubmatch(s); m != nil {
		// D/M/Y order; 2-digit years are this century
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return buildDate(year, m[2], m[1])
	}
	return nil
}

// buildDate validates calendar components; out-of-range dates are dropped
// rather than silently normalized.
func buildDate(y, m, d string) *time.Time {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil
	}
	return &t
}

func extractRank(s string) string {
	for _, a := range rankAliases {
		if a.pattern.MatchString(s) {
			return a.canonical
		}
	}
	return ""
}

func extractLeaveType(s string) string {
	switch {
	case leaveCasualRe.MatchString(s), strings.Contains(s, "casual"):
		return "CL"
	case leaveAALRe.MatchString(s):
		return "AAL"
	case leaveAnnualRe.MatchString(s),
		strings.Contains(s, "annual"),
		strings.Contains(s, "leave"):
		return "AL"
	}
	return ""
}
