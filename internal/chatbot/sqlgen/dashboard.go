package sqlgen

import (
	"strings"

	"hrms-chatbot/internal/models"
)

// metric is one scalar subquery of the dashboard. Fragments with a company
// placeholder receive the resolved company as a bound param; when no company
// restriction applies the unscoped fragment is used instead.
type metric struct {
	alias    string
	scoped   string
	unscoped string
}

const (
	officerRanks = "'Lt', 'Capt', 'Major', 'Lt Col', 'Col'"
	jcoRanks     = "'Subedar Major', 'Subedar', 'Naib Subedar'"
)

var dashboardMetrics = []metric{
	{"detachments",
		"SELECT COUNT(*) FROM dets WHERE company = ?",
		"SELECT COUNT(*) FROM dets"},
	{"officerCount",
		"SELECT COUNT(*) FROM personnel WHERE `rank` IN (" + officerRanks + ") AND company = ?",
		"SELECT COUNT(*) FROM personnel WHERE `rank` IN (" + officerRanks + ")"},
	{"jcoCount",
		"SELECT COUNT(*) FROM personnel WHERE `rank` IN (" + jcoRanks + ") AND company = ?",
		"SELECT COUNT(*) FROM personnel WHERE `rank` IN (" + jcoRanks + ")"},
	{"orCount",
		"SELECT COUNT(*) FROM personnel WHERE `rank` NOT IN (" + officerRanks + ", " + jcoRanks + ") AND company = ?",
		"SELECT COUNT(*) FROM personnel WHERE `rank` NOT IN (" + officerRanks + ", " + jcoRanks + ")"},
	// Interviews only apply to the Agniveer/OR cohort.
	{"interview_pending",
		"SELECT COUNT(*) FROM personnel WHERE interview_status = 0 AND `rank` NOT IN (" + officerRanks + ", " + jcoRanks + ") AND company = ?",
		"SELECT COUNT(*) FROM personnel WHERE interview_status = 0 AND `rank` NOT IN (" + officerRanks + ", " + jcoRanks + ")"},
	{"interview_total",
		"SELECT COUNT(*) FROM personnel WHERE interview_status IS NOT NULL AND `rank` NOT IN (" + officerRanks + ", " + jcoRanks + ") AND company = ?",
		"SELECT COUNT(*) FROM personnel WHERE interview_status IS NOT NULL AND `rank` NOT IN (" + officerRanks + ", " + jcoRanks + ")"},
	{"projects",
		"SELECT COUNT(*) FROM projects WHERE company = ?",
		"SELECT COUNT(*) FROM projects"},
	{"sensitive_count",
		"SELECT COUNT(*) FROM sensitive_marking WHERE company = ?",
		"SELECT COUNT(*) FROM sensitive_marking"},
	{"boards_count",
		"SELECT COUNT(*) FROM boards WHERE company = ?",
		"SELECT COUNT(*) FROM boards"},
	{"attachment_count",
		"SELECT COUNT(*) FROM assigned_personnel WHERE company = ?",
		"SELECT COUNT(*) FROM assigned_personnel"},
	{"courses_count",
		"SELECT COUNT(DISTINCT course) FROM courses",
		"SELECT COUNT(DISTINCT course) FROM courses"},
	{"loan_count",
		"SELECT COUNT(*) FROM loans l JOIN personnel p ON p.army_number = l.army_number WHERE p.company = ?",
		"SELECT COUNT(*) FROM loans"},
	{"roll_call_pending_points",
		"SELECT COUNT(*) FROM roll_call_points WHERE status = 'Pending' AND company = ?",
		"SELECT COUNT(*) FROM roll_call_points WHERE status = 'Pending'"},
}

var taskMetrics = []metric{
	{"total_tasks",
		"SELECT COUNT(*) FROM tasks WHERE assigned_to = ?",
		"SELECT COUNT(*) FROM tasks"},
	{"pending_tasks",
		"SELECT COUNT(*) FROM tasks WHERE task_status = 'Pending' AND assigned_to = ?",
		"SELECT COUNT(*) FROM tasks WHERE task_status = 'Pending'"},
}

var agniveerMetric = metric{"agniveer_count",
	"SELECT COUNT(*) FROM personnel WHERE personnel_status = 'Agniveer' AND company = ?",
	"SELECT COUNT(*) FROM personnel WHERE personnel_status = 'Agniveer'"}

// Dashboard assembles the summary as one statement of scalar subqueries so
// the whole snapshot is a single round trip. The company restriction uses the
// requester's company, falling back to the one parsed from the question, and
// is skipped entirely when that company is unknown or the Admin sentinel.
// Task counts are keyed on the requester's own identifier when known. The
// agniveer column is always present and additionally honors privileged roles:
// those see the unit-wide number even with a company restriction in force.
func Dashboard(entities models.EntitySet, requester models.RequesterContext) models.GeneratedQuery {
	company := requester.Company
	if company == "" {
		company = entities.Company
	}
	restrict := company != "" && company != models.AdminCompany

	var cols []string
	var params []interface{}
	appendMetric := func(m metric, scoped bool, param interface{}) {
		if !scoped {
			cols = append(cols, "("+m.unscoped+") AS "+m.alias)
			return
		}
		cols = append(cols, "("+m.scoped+") AS "+m.alias)
		params = append(params, repeatParam(m.scoped, param)...)
	}

	for _, m := range dashboardMetrics {
		appendMetric(m, restrict, company)
	}
	for _, m := range taskMetrics {
		appendMetric(m, requester.Identifier != "", requester.Identifier)
	}
	appendMetric(agniveerMetric, restrict && !requester.Privileged(), company)

	return models.GeneratedQuery{
		SQL:    "SELECT " + strings.Join(cols, ",\n       "),
		Params: params,
	}
}

// repeatParam repeats the param once per `?` in the fragment.
func repeatParam(fragment string, param interface{}) []interface{} {
	n := strings.Count(fragment, "?")
	out := make([]interface{}, n)
	for i := range out {
		out[i] = param
	}
	return out
}
