// internal/chatbot/format/format_test.go
package format

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hrms-chatbot/internal/models"
)

func TestResult_Empty(t *testing.T) {
	assert.Equal(t, "No records found.", Result(nil, models.IntentPersonnelLookup, "x"))
	assert.Equal(t, "No records found.", Result(&models.ResultSet{Columns: []string{"name"}}, models.IntentGeneral, ""))
}

func TestResult_FactSheet(t *testing.T) {
	rs := &models.ResultSet{
		Columns: []string{"name", "army_number", "blood_group", "trade"},
		Rows: []map[string]interface{}{{
			"name":        "Ram Singh",
			"army_number": "778G",
			"blood_group": nil,
			"trade":       "",
		}},
	}

	out := Result(rs, models.IntentPersonnelLookup, "Personnel Record")

	assert.Contains(t, out, "**Personnel Record**")
	assert.Contains(t, out, "- **Name**: Ram Singh")
	assert.Contains(t, out, "- **Army Number**: 778G")
	// NULL and empty fields are skipped, not rendered as dashes
	assert.NotContains(t, out, "Blood Group")
	assert.NotContains(t, out, "Trade")
}

func TestResult_CountBullets(t *testing.T) {
	rs := &models.ResultSet{
		Columns: []string{"company", "count"},
		Rows: []map[string]interface{}{
			{"company": "1 Company", "count": int64(120)},
			{"company": "2 Company", "count": int64(95)},
		},
	}

	out := Result(rs, models.IntentCompanyCount, "Personnel Strength")

	assert.Contains(t, out, "- 1 Company: 120")
	assert.Contains(t, out, "- 2 Company: 95")
	assert.Contains(t, out, "**Total: 215 personnel**")
}

func TestResult_LoanBullets(t *testing.T) {
	rs := &models.ResultSet{
		Columns: []string{"loan_type", "count", "total"},
		Rows: []map[string]interface{}{
			{"loan_type": "Home Loan", "count": int64(12), "total": "4500000"},
		},
	}

	out := Result(rs, models.IntentLoanQuery, "")
	assert.Contains(t, out, "- Home Loan: 12 loans")
	assert.Contains(t, out, "₹4500000 total")
}

func TestResult_Dashboard(t *testing.T) {
	rs := &models.ResultSet{
		Columns: []string{"detachments", "pending_tasks", "agniveer_count"},
		Rows: []map[string]interface{}{{
			"detachments":    int64(4),
			"pending_tasks":  int64(7),
			"agniveer_count": int64(31),
		}},
	}

	out := Result(rs, models.IntentDashboardSummary, "")

	assert.Contains(t, out, "**Unit Dashboard**")
	assert.Contains(t, out, "- Detachments: 4")
	assert.Contains(t, out, "- Pending Tasks: 7")
	assert.Contains(t, out, "- Agniveers: 31")
	// fixed order: detachments before tasks
	assert.Less(t, strings.Index(out, "Detachments"), strings.Index(out, "Pending Tasks"))
}

func TestResult_TableCapsAtFiftyRows(t *testing.T) {
	rs := &models.ResultSet{Columns: []string{"name"}}
	for i := 0; i < 60; i++ {
		rs.Rows = append(rs.Rows, map[string]interface{}{"name": fmt.Sprintf("p%02d", i)})
	}

	out := Result(rs, models.IntentPersonnelListCompany, "Company Nominal Roll")

	assert.Contains(t, out, "| Name |")
	assert.Contains(t, out, "p49")
	assert.NotContains(t, out, "p50")
	assert.Contains(t, out, "*+10 more rows not shown.*")
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "—", formatCell(nil))
	assert.Equal(t, "2026-08-28", formatCell(time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "72.50", formatCell(72.5))
	assert.Equal(t, "72", formatCell(72.0))
	assert.Equal(t, "x", formatCell("x"))
	assert.Equal(t, "—", formatCell(""))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Army Number", titleCase("army_number"))
	assert.Equal(t, "Date Of Birth", titleCase("date_of_birth"))
	assert.Equal(t, "UID NO", titleCase("uid_no"))
	assert.Equal(t, "EMI Per Month", titleCase("emi_per_month"))
}

func TestClarificationAndUsage(t *testing.T) {
	assert.Contains(t, Clarification(), "778G")
	assert.Contains(t, Usage(), "How many personnel in 1 Company?")
	assert.Equal(t, "broken\n\ntry again", Error("broken", "try again"))
	assert.Equal(t, "broken", Error("broken", ""))
}
