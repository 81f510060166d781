// internal/chatbot/nlp/classifier_test.go
package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hrms-chatbot/internal/models"
)

// classify runs the full front of the pipeline the way the service does.
func classify(t *testing.T, raw string) models.Intent {
	t.Helper()
	normalized := Normalize(raw)
	entities := Extract(normalized, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	return Classify(normalized, entities)
}

func TestClassify_Intents(t *testing.T) {
	tests := []struct {
		name     string
		question string
		expected models.Intent
	}{
		{"lookup by phrase", "Details of army number JC457693", models.IntentPersonnelLookup},
		{"lookup by identifier", "Show me 778G", models.IntentPersonnelLookup},
		{"list company", "Who is in 1 Coy", models.IntentPersonnelListCompany},
		{"company count", "How many personnel in 1 Company", models.IntentCompanyCount},
		{"company count each", "personnel in each company", models.IntentCompanyCount},
		{"leave balance", "Leave balance of 15740527W", models.IntentLeaveBalance},
		{"leave status", "Who is on leave today", models.IntentLeaveStatus},
		{"family", "Family details of 778G", models.IntentFamilyLookup},
		{"courses", "Courses done by army number 778G", models.IntentCoursesLookup},
		{"weight", "How many unfit personnel", models.IntentWeightFitness},
		{"loans", "Home loan details of 778G", models.IntentLoanQuery},
		{"tasks", "Show pending tasks", models.IntentTaskQuery},
		{"parade", "Parade state for today", models.IntentParadeState},
		{"analytical", "Average age by company", models.IntentAnalytical},
		{"schema", "What tables do you have", models.IntentSchema},
		{"dashboard", "Show me the dashboard", models.IntentDashboardSummary},
		{"general", "hello there", models.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(t, tt.question))
		})
	}
}

// Identifier-bearing questions with no matching verb still resolve to a
// lookup rather than the generic intent.
func TestClassify_IdentifierDefaultsToLookup(t *testing.T) {
	assert.Equal(t, models.IntentPersonnelLookup, classify(t, "778G"))
}

// Order matters: "leave balance" must win over the broader leave-status rule,
// count phrasing must win over the "personnel in <N> company" list shape, and
// family questions without an anchor fall through to the LLM path.
func TestClassify_RuleOrder(t *testing.T) {
	assert.Equal(t, models.IntentLeaveBalance, classify(t, "leave balance of 778G"))
	assert.Equal(t, models.IntentLeaveStatus, classify(t, "leave status of 778G"))
	assert.Equal(t, models.IntentCompanyCount, classify(t, "How many personnel in 2 Company"))
	assert.Equal(t, models.IntentPersonnelListCompany, classify(t, "personnel in 2 Company"))
	assert.Equal(t, models.IntentGeneral, classify(t, "family welfare thoughts"))
}

func TestClassify_Pure(t *testing.T) {
	e := models.EntitySet{Identifier: "778G"}
	before := e
	Classify("details of 778g", e)
	assert.Equal(t, before, e)
}
