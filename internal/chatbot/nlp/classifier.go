// internal/chatbot/nlp/classifier.go
package nlp

import (
	"regexp"
	"strings"

	"hrms-chatbot/internal/models"
)

// rule is one (predicate, intent) pair. Rules are evaluated top to bottom
// and the first match wins; order is load-bearing.
type rule struct {
	intent models.Intent
	match  func(q string, e models.EntitySet) bool
}

var (
	lookupVerbRe     = regexp.MustCompile(`\b(details?|info|information|show|get|find|look\s*up|who\s+is|about)\b`)
	lookupPhraseRe   = regexp.MustCompile(`\b(details?|info|information|show|get|find|look\s*up|who\s+is)\b.*\b(army\s*number|\d{5,})`)
	listCompanyRe    = regexp.MustCompile(`\b(who\s+is\s+in|list\s+(all\s+)?(personnel|soldiers?|troops?|persons?|people|members?)|names?\s+in)\b.*\bcompany\b`)
	listCompanyAltRe = regexp.MustCompile(`\b(personnel|persons?|people|members?)\s+in\s+(\d|one|two|three|hq)\s*company\b`)
	companyCountRe   = regexp.MustCompile(`\bhow\s+many\s+(personnel|soldiers?|troops?|people|persons?|members?)\b|\b(count|number\s+of)\s+(personnel|persons?|people|in\s+company)\b|\b(personnel|persons?|people)\s+in\s+(each\s+)?company\b`)
	leaveRe          = regexp.MustCompile(`\bleave\s*(status|balance|details?)\b|\bon\s+leave\b|\bwho\s+is\s+on\s+leave\b|\bleave\s+for\s+army\b`)
	familyRe         = regexp.MustCompile(`\b(family|dependents?|children|kin)\b`)
	coursesRe        = regexp.MustCompile(`\bcourses?\b|\btraining\s*(completed|history)\b`)
	weightRe         = regexp.MustCompile(`\b(weight|fit|unfit|fitness|shape|category)\b`)
	loanRe           = regexp.MustCompile(`\bloans?\b|\bhome\s*loan\b|\bpersonal\s*loan\b|\bemi\b`)
	taskRe           = regexp.MustCompile(`\btasks?\b|\bpending\s*task\b|\bassigned\s*to\b`)
	paradeRe         = regexp.MustCompile(`\bparade\s*state\b|\battendance\b|\bpresent\s*today\b`)
	analyticalRe     = regexp.MustCompile(`\b(average|compare|trend|highest|lowest|total\s*amount)\b`)
	schemaRe         = regexp.MustCompile(`\btables?\b|\bschema\b|\bcolumns?\b|\bdatabase\s*structure\b`)
	dashboardRe      = regexp.MustCompile(`\bdashboard\b|\boverall\s+status\b|\bunit\s+summary\b`)
)

// Specific domain rules come before the generic lookup rule so "family
// details of 778G" lands on the family intent, not a bare lookup.
var rules = []rule{
	// Count phrasing ("how many personnel in 1 Company") also matches the
	// list rule's "personnel in <N> company" shape, so count is checked first.
	{models.IntentCompanyCount, func(q string, e models.EntitySet) bool {
		return companyCountRe.MatchString(q)
	}},
	{models.IntentPersonnelListCompany, func(q string, e models.EntitySet) bool {
		return listCompanyRe.MatchString(q) || listCompanyAltRe.MatchString(q)
	}},
	{models.IntentLeaveBalance, func(q string, e models.EntitySet) bool {
		return (leaveRe.MatchString(q) || e.LeaveType != "") && strings.Contains(q, "balance")
	}},
	{models.IntentLeaveStatus, func(q string, e models.EntitySet) bool {
		return leaveRe.MatchString(q)
	}},
	{models.IntentFamilyLookup, func(q string, e models.EntitySet) bool {
		return familyRe.MatchString(q) && (e.Identifier != "" || strings.Contains(q, "army"))
	}},
	{models.IntentCoursesLookup, func(q string, e models.EntitySet) bool {
		return coursesRe.MatchString(q) && (e.Identifier != "" || strings.Contains(q, "army"))
	}},
	{models.IntentWeightFitness, func(q string, e models.EntitySet) bool {
		return weightRe.MatchString(q)
	}},
	{models.IntentLoanQuery, func(q string, e models.EntitySet) bool {
		return loanRe.MatchString(q)
	}},
	{models.IntentTaskQuery, func(q string, e models.EntitySet) bool {
		return taskRe.MatchString(q)
	}},
	{models.IntentParadeState, func(q string, e models.EntitySet) bool {
		return paradeRe.MatchString(q)
	}},
	{models.IntentAnalytical, func(q string, e models.EntitySet) bool {
		return analyticalRe.MatchString(q)
	}},
	{models.IntentSchema, func(q string, e models.EntitySet) bool {
		return schemaRe.MatchString(q)
	}},
	{models.IntentDashboardSummary, func(q string, e models.EntitySet) bool {
		return dashboardRe.MatchString(q)
	}},
	{models.IntentPersonnelLookup, func(q string, e models.EntitySet) bool {
		return lookupPhraseRe.MatchString(q) || (e.Identifier != "" && lookupVerbRe.MatchString(q))
	}},
}

// Classify maps normalized text plus extracted entities to one intent tag.
// Pure: the entity set is read, never mutated. With no rule hit the intent
// defaults to a personnel lookup when an identifier was extracted, else the
// generic intent.
func Classify(normalized string, entities models.EntitySet) models.Intent {
	for _, r := range rules {
		if r.match(normalized, entities) {
			return r.intent
		}
	}
	if entities.Identifier != "" {
		return models.IntentPersonnelLookup
	}
	return models.IntentGeneral
}
