// Package sqlgen turns (intent, entities) into parameterized, read-only
// SELECT statements. Every caller-supplied value is bound as a `?`
// placeholder; the only literal fragments are table/column names drawn from
// the allow-list. Generate is a pure function — no branch touches the
// database.
package sqlgen

import (
	"strings"

	"hrms-chatbot/internal/models"
)

// Generate returns the query for an intent, or ok=false when no branch
// matches the available entities (which sends the question to the fallback
// orchestrator). The schema intent is answered from live introspection by
// the service and has no template here.
func Generate(intent models.Intent, e models.EntitySet, requester models.RequesterContext) (models.GeneratedQuery, bool) {
	switch intent {
	case models.IntentPersonnelLookup:
		if e.Identifier == "" {
			return models.GeneratedQuery{}, false
		}
		return q(`
			SELECT name, army_number, `+"`rank`"+`, trade, company, date_of_birth, date_of_enrollment,
			       date_of_tos, date_of_tors, blood_group, religion, food_preference,
			       height, weight, chest, kin_name, kin_relation, personnel_status
			FROM personnel WHERE army_number = ? LIMIT 1`,
			e.Identifier), true

	case models.IntentPersonnelListCompany:
		if e.Company == "" {
			return models.GeneratedQuery{}, false
		}
		return q(`
			SELECT name, army_number, `+"`rank`"+`, trade, company
			FROM personnel WHERE company = ? ORDER BY `+"`rank`"+`, name LIMIT 50`,
			e.Company), true

	case models.IntentCompanyCount:
		if e.Company != "" {
			return q("SELECT company, COUNT(*) AS count FROM personnel WHERE company = ? GROUP BY company",
				e.Company), true
		}
		return q("SELECT company, COUNT(*) AS count FROM personnel WHERE company IS NOT NULL GROUP BY company ORDER BY company"), true

	case models.IntentLeaveStatus:
		switch {
		case e.Identifier != "":
			return q(`
				SELECT army_number, name, leave_type, leave_days, from_date, to_date, request_status, leave_reason, company
				FROM leave_status_info WHERE army_number = ? ORDER BY from_date DESC LIMIT 20`,
				e.Identifier), true
		case e.Date != nil:
			return q(`
				SELECT army_number, name, leave_type, from_date, to_date, request_status, company
				FROM leave_status_info WHERE ? BETWEEN from_date AND to_date AND request_status = 'Approved'
				ORDER BY from_date LIMIT 50`,
				*e.Date), true
		default:
			return q("SELECT request_status, COUNT(*) AS count FROM leave_status_info GROUP BY request_status ORDER BY count DESC"), true
		}

	case models.IntentLeaveBalance:
		if e.Identifier == "" {
			return models.GeneratedQuery{}, false
		}
		return q(`
			SELECT year, al_days, cl_days, aal_days, total_days, remarks
			FROM leave_details WHERE army_number = ? ORDER BY year DESC LIMIT 5`,
			e.Identifier), true

	case models.IntentWeightFitness:
		if e.Company != "" {
			return q("SELECT status_type, COUNT(*) AS count FROM weight_info WHERE company = ? GROUP BY status_type",
				e.Company), true
		}
		return q("SELECT status_type, COUNT(*) AS count FROM weight_info GROUP BY status_type"), true

	case models.IntentLoanQuery:
		switch {
		case e.Identifier != "":
			return q(`
				SELECT army_number, loan_type, total_amount, bank_details, emi_per_month, pending, remarks
				FROM loans WHERE army_number = ? ORDER BY sr_no LIMIT 20`,
				e.Identifier), true
		case e.Rank != "" && e.Company != "":
			return q(`
				SELECT p.name, p.army_number, p.`+"`rank`"+`, l.loan_type, l.total_amount, l.pending
				FROM loans l JOIN personnel p ON p.army_number = l.army_number
				WHERE p.`+"`rank`"+` LIKE ? AND p.company = ? AND l.loan_type LIKE ?
				LIMIT 30`,
				"%"+e.Rank+"%", e.Company, "%HOME%"), true
		case e.Company != "":
			return q(`
				SELECT l.loan_type, COUNT(*) AS count, SUM(l.total_amount) AS total
				FROM loans l JOIN personnel p ON p.army_number = l.army_number
				WHERE p.company = ? GROUP BY l.loan_type`,
				e.Company), true
		default:
			return q("SELECT loan_type, COUNT(*) AS count, SUM(total_amount) AS total FROM loans GROUP BY loan_type"), true
		}

	case models.IntentTaskQuery:
		return q(`
			SELECT task_name, description, priority, assigned_to, assigned_by, due_date, task_status, remarks
			FROM tasks WHERE task_status IN ('Pending', 'In Progress') ORDER BY due_date LIMIT 30`), true

	case models.IntentFamilyLookup:
		if e.Identifier == "" {
			return models.GeneratedQuery{}, false
		}
		return q(`
			SELECT relation, name, date_of_birth, uid_no, part_ii_order
			FROM family_members WHERE army_number = ? ORDER BY relation`,
			e.Identifier), true

	case models.IntentCoursesLookup:
		if e.Identifier == "" {
			return models.GeneratedQuery{}, false
		}
		return q(`
			SELECT course, from_date, to_date, institute, grading, remarks
			FROM courses WHERE army_number = ? ORDER BY from_date DESC LIMIT 20`,
			e.Identifier), true

	case models.IntentParadeState:
		if e.Date != nil {
			return q(`
				SELECT report_date, company, grandTotal_auth, grandTotal_present_unit, grandTotal_lve, grandTotal_att
				FROM parade_state_daily WHERE report_date = ? ORDER BY company LIMIT 20`,
				*e.Date), true
		}
		return q(`
			SELECT report_date, company, grandTotal_auth, grandTotal_present_unit
			FROM parade_state_daily ORDER BY report_date DESC LIMIT 10`), true

	case models.IntentDashboardSummary:
		return Dashboard(e, requester), true
	}

	return models.GeneratedQuery{}, false
}

// GenerateAnalytical covers the comparison/average branches, which also key
// on the question wording (the only intent that does).
func GenerateAnalytical(normalized string, e models.EntitySet) (models.GeneratedQuery, bool) {
	switch {
	case strings.Contains(normalized, "average") && strings.Contains(normalized, "age"):
		if e.Company != "" {
			return q(`
				SELECT company, COUNT(*) AS count, ROUND(AVG(TIMESTAMPDIFF(YEAR, date_of_birth, CURDATE())), 1) AS avg_age
				FROM personnel WHERE company = ? AND date_of_birth IS NOT NULL GROUP BY company`,
				e.Company), true
		}
		return q(`
			SELECT company, COUNT(*) AS count, ROUND(AVG(TIMESTAMPDIFF(YEAR, date_of_birth, CURDATE())), 1) AS avg_age
			FROM personnel WHERE date_of_birth IS NOT NULL AND company IS NOT NULL GROUP BY company ORDER BY company`), true

	case strings.Contains(normalized, "loan") &&
		(strings.Contains(normalized, "highest") || strings.Contains(normalized, "total")):
		return q(`
			SELECT p.company, COUNT(l.id) AS loan_count, SUM(l.total_amount) AS total_amount
			FROM loans l JOIN personnel p ON p.army_number = l.army_number
			GROUP BY p.company ORDER BY total_amount DESC LIMIT 10`), true
	}
	return models.GeneratedQuery{}, false
}

func q(sql string, params ...interface{}) models.GeneratedQuery {
	return models.GeneratedQuery{SQL: strings.TrimSpace(sql), Params: params}
}
