// Package format renders result sets as the markdown-ish text replies the
// HRMS frontend displays. Layout is picked per intent: single-record fact
// sheets, grouped-count bullets, dashboard bullets, or a capped table.
package format

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"hrms-chatbot/internal/models"
)

// displayRows caps how many rows the generic table renders before summarizing
// the remainder.
const displayRows = 50

// dashboardLabels maps dashboard aliases to display labels, in render order.
var dashboardOrder = []string{
	"detachments", "officerCount", "jcoCount", "orCount",
	"interview_pending", "interview_total", "projects", "sensitive_count",
	"boards_count", "attachment_count", "courses_count", "loan_count",
	"roll_call_pending_points", "total_tasks", "pending_tasks", "agniveer_count",
}

var dashboardLabels = map[string]string{
	"detachments":              "Detachments",
	"officerCount":             "Officers",
	"jcoCount":                 "JCOs",
	"orCount":                  "Other Ranks",
	"interview_pending":        "Interviews Pending",
	"interview_total":          "Interviews Total",
	"projects":                 "Projects",
	"sensitive_count":          "Sensitive Cases",
	"boards_count":             "Boards of Officers",
	"attachment_count":         "Attachments",
	"courses_count":            "Courses",
	"loan_count":               "Active Loans",
	"roll_call_pending_points": "Roll Call Points Pending",
	"total_tasks":              "Total Tasks",
	"pending_tasks":            "Pending Tasks",
	"agniveer_count":           "Agniveers",
}

// Result renders a result set for the given intent under an optional title.
func Result(rs *models.ResultSet, intent models.Intent, title string) string {
	if rs == nil || len(rs.Rows) == 0 {
		return "No records found."
	}

	switch intent {
	case models.IntentPersonnelLookup:
		return factSheet(rs.Rows[0], title)
	case models.IntentCompanyCount, models.IntentWeightFitness:
		if isCountShape(rs) {
			return countBullets(rs, title)
		}
	case models.IntentLoanQuery:
		if isAggregateShape(rs) {
			return loanBullets(rs, title)
		}
	case models.IntentDashboardSummary:
		return dashboard(rs.Rows[0], title)
	}
	return table(rs, title)
}

// factSheet renders one record as "**Field**: value" lines, skipping NULL
// and empty fields so partial records read cleanly.
func factSheet(row map[string]interface{}, title string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("**" + title + "**\n\n")
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := formatCell(row[k])
		if v == "—" || v == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("- **%s**: %s\n", titleCase(k), v))
	}
	return strings.TrimRight(b.String(), "\n")
}

// countBullets renders (group, count) rows plus a grand total.
func countBullets(rs *models.ResultSet, title string) string {
	groupCol, countCol := rs.Columns[0], rs.Columns[len(rs.Columns)-1]
	var b strings.Builder
	if title != "" {
		b.WriteString("**" + title + "**\n\n")
	}
	total := int64(0)
	for _, row := range rs.Rows {
		n := toInt64(row[countCol])
		total += n
		b.WriteString(fmt.Sprintf("- %s: %d\n", formatCell(row[groupCol]), n))
	}
	b.WriteString(fmt.Sprintf("\n**Total: %d personnel**", total))
	return b.String()
}

// loanBullets renders per-type loan aggregates with rupee amounts.
func loanBullets(rs *models.ResultSet, title string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("**" + title + "**\n\n")
	}
	for _, row := range rs.Rows {
		line := fmt.Sprintf("- %s: %d loans", formatCell(row[rs.Columns[0]]), toInt64(row["count"]))
		if amt, ok := row["total"]; ok && amt != nil {
			line += fmt.Sprintf(", ₹%s total", formatCell(amt))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// dashboard renders the single-row summary as labeled bullets in fixed order.
func dashboard(row map[string]interface{}, title string) string {
	var b strings.Builder
	if title == "" {
		title = "Unit Dashboard"
	}
	b.WriteString("**" + title + "**\n\n")
	for _, alias := range dashboardOrder {
		v, ok := row[alias]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s\n", dashboardLabels[alias], formatCell(v)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// table renders up to displayRows rows as a markdown table, noting how many
// rows were held back.
func table(rs *models.ResultSet, title string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("**" + title + "**\n\n")
	}

	headers := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		headers[i] = titleCase(c)
	}
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(rs.Columns)) + "\n")

	shown := rs.Rows
	if len(shown) > displayRows {
		shown = shown[:displayRows]
	}
	for _, row := range shown {
		cells := make([]string, len(rs.Columns))
		for i, c := range rs.Columns {
			cells[i] = formatCell(row[c])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	hidden := len(rs.Rows) - len(shown)
	if rs.Truncated || hidden > 0 {
		if hidden == 0 {
			b.WriteString("\n*More rows available; refine the question to narrow the result.*")
		} else {
			b.WriteString(fmt.Sprintf("\n*+%d more rows not shown.*", hidden))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Clarification asks the user to rephrase, with example questions.
func Clarification() string {
	return "I couldn't work out what data you need. Try questions like:\n" +
		"- *Details of army number 778G*\n" +
		"- *How many personnel in 1 Company?*\n" +
		"- *Leave balance of 12345X*\n" +
		"- *Show pending tasks*\n" +
		"- *Dashboard summary*"
}

// Usage is the reply for an empty message.
func Usage() string {
	return "Ask me about personnel, leave, loans, courses, tasks, parade state or the unit dashboard. " +
		"For example: *Details of army number 778G* or *How many personnel in 1 Company?*"
}

// Error renders a user-facing failure with an actionable suggestion.
func Error(msg, suggestion string) string {
	out := msg
	if suggestion != "" {
		out += "\n\n" + suggestion
	}
	return out
}

// formatCell renders one cell value. NULL and empty strings render as an em
// dash, floats are rounded to two decimals, dates drop the time component.
func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "—"
	case time.Time:
		return t.Format("2006-01-02")
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "—"
		}
		if t == math.Trunc(t) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%.2f", t)
	case float32:
		return formatCell(float64(t))
	case string:
		if t == "" {
			return "—"
		}
		return t
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		return parseInt(string(t))
	case string:
		return parseInt(t)
	default:
		return 0
	}
}

func parseInt(s string) int64 {
	var n int64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n)
	if err != nil {
		return 0
	}
	return n
}

// isCountShape reports whether a result looks like (group, ..., count) rows
// small enough for bullets.
func isCountShape(rs *models.ResultSet) bool {
	if len(rs.Rows) == 0 || len(rs.Rows) > 20 {
		return false
	}
	last := strings.ToLower(rs.Columns[len(rs.Columns)-1])
	return last == "count" || strings.HasSuffix(last, "_count")
}

// isAggregateShape reports whether a loan result is a per-type aggregate
// rather than individual loan rows.
func isAggregateShape(rs *models.ResultSet) bool {
	for _, c := range rs.Columns {
		if strings.EqualFold(c, "count") {
			return true
		}
	}
	return false
}

// titleCase renders a snake_case column name as a display label.
func titleCase(col string) string {
	parts := strings.Split(col, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		switch strings.ToLower(p) {
		case "id", "uid", "emi", "al", "cl", "aal", "jco", "or", "no":
			parts[i] = strings.ToUpper(p)
		default:
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
