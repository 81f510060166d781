// Package schema holds the queryable-table allow-list and the schema
// descriptors exposed to the LLM fallback. The allow-list is the single
// source of truth for the safety validator; the descriptors narrow what the
// model can see so it has less room to invent columns.
package schema

import "strings"

// AllowedTables is the fixed set of tables any executed SQL may reference.
var AllowedTables = map[string]struct{}{
	"personnel": {}, "users": {}, "family_members": {}, "children": {},
	"courses": {}, "detailed_courses": {}, "candidate_on_courses": {},
	"leave_details": {}, "leave_status_info": {}, "leave_history": {},
	"weight_info": {}, "ideal_weights": {}, "loans": {}, "tasks": {},
	"department_accounts": {}, "department_transactions": {},
	"parade_state_daily": {}, "daily_events": {}, "assigned_det": {},
	"assigned_personnel": {}, "dets": {}, "posting_details_table": {},
	"board_members": {}, "boards": {}, "punishments": {}, "mobile_phones": {},
	"vehicle_detail": {}, "marital_discord_cases": {}, "personnel_sports": {},
	"sensitive_marking": {}, "monthly_medical_status": {}, "td_table": {},
	"stores": {}, "store_items": {}, "sales": {}, "units_served": {},
	"project_heads": {}, "projects": {}, "roll_call_points": {},
	"trade_manpower_daily": {}, "assistant_test": {},
}

// Allowed reports whether a table name is queryable (case-insensitive).
func Allowed(name string) bool {
	_, ok := AllowedTables[strings.ToLower(name)]
	return ok
}

// Column is one (name, declared type) pair.
type Column struct {
	Name string
	Type string
}

// Table is an ordered column list for one table.
type Table struct {
	Name    string
	Columns []Column
}

// Descriptor is one scoped view of the database handed to the LLM prompt.
type Descriptor struct {
	Name   string
	Note   string
	Tables []Table
}

// PromptText renders the descriptor in the schema-block format the prompt
// contract expects.
func (d Descriptor) PromptText() string {
	var b strings.Builder
	for _, t := range d.Tables {
		b.WriteString("\n**")
		b.WriteString(t.Name)
		b.WriteString("**:\n")
		for _, c := range t.Columns {
			b.WriteString("  - ")
			b.WriteString(c.Name)
			b.WriteString(" (")
			b.WriteString(c.Type)
			b.WriteString(")\n")
		}
	}
	if d.Note != "" {
		b.WriteString("\n")
		b.WriteString(d.Note)
		b.WriteString("\n")
	}
	return b.String()
}

// Roles is the privileged-role-scoped variant: the login/roles table where
// commissioned officers and system roles live. Officers do not appear in the
// personnel table at all.
var Roles = Descriptor{
	Name: "roles",
	Note: "Commissioned Officers (CO, OC, 2IC, ADJUTANT) exist ONLY in the users table " +
		"and usually have a NULL army_number. Never select the password column.",
	Tables: []Table{
		{
			Name: "users",
			Columns: []Column{
				{"id", "int"},
				{"username", "varchar"},
				{"email", "varchar"},
				{"role", "varchar"},
				{"company", "varchar"},
				{"army_number", "varchar"},
				{"created_at", "timestamp"},
			},
		},
	},
}

// RankAndFile is the soldier-scoped variant: JCOs, NCOs and Other Ranks.
var RankAndFile = Descriptor{
	Name: "personnel",
	Note: "The personnel table holds ONLY soldiers (Subedar Major, Subedar, Naib Subedar, " +
		"Havaldar, Other Ranks). Company values are '1 Company', '2 Company', '3 Company', " +
		"'HQ Company'. Quote `rank` with backticks.",
	Tables: []Table{
		{
			Name: "personnel",
			Columns: []Column{
				{"army_number", "varchar"},
				{"name", "varchar"},
				{"rank", "varchar"},
				{"trade", "varchar"},
				{"company", "varchar"},
				{"date_of_birth", "date"},
				{"date_of_enrollment", "date"},
				{"onleave_status", "tinyint"},
				{"detachment_status", "tinyint"},
				{"td_status", "tinyint"},
				{"interview_status", "tinyint"},
				{"personnel_status", "varchar"},
			},
		},
	},
}

// Full is the unscoped variant: every frequently-queried table with its
// working column set. Used when no keyword route matches.
var Full = Descriptor{
	Name: "full",
	Note: RankAndFile.Note + " " + Roles.Note,
	Tables: append(append([]Table{}, RankAndFile.Tables...), append([]Table{
		{
			Name: "leave_status_info",
			Columns: []Column{
				{"army_number", "varchar"}, {"name", "varchar"},
				{"leave_type", "varchar"}, {"leave_days", "int"},
				{"from_date", "date"}, {"to_date", "date"},
				{"request_status", "varchar"}, {"leave_reason", "varchar"},
				{"company", "varchar"},
			},
		},
		{
			Name: "leave_details",
			Columns: []Column{
				{"army_number", "varchar"}, {"year", "int"},
				{"al_days", "int"}, {"cl_days", "int"}, {"aal_days", "int"},
				{"total_days", "int"}, {"remarks", "varchar"},
			},
		},
		{
			Name: "loans",
			Columns: []Column{
				{"army_number", "varchar"}, {"loan_type", "varchar"},
				{"total_amount", "decimal"}, {"bank_details", "varchar"},
				{"emi_per_month", "decimal"}, {"pending", "varchar"},
				{"remarks", "varchar"},
			},
		},
		{
			Name: "tasks",
			Columns: []Column{
				{"task_name", "varchar"}, {"description", "varchar"},
				{"priority", "varchar"}, {"assigned_to", "varchar"},
				{"assigned_by", "varchar"}, {"due_date", "date"},
				{"task_status", "varchar"}, {"remarks", "varchar"},
			},
		},
		{
			Name: "family_members",
			Columns: []Column{
				{"army_number", "varchar"}, {"relation", "varchar"},
				{"name", "varchar"}, {"date_of_birth", "date"},
				{"uid_no", "varchar"}, {"part_ii_order", "varchar"},
			},
		},
		{
			Name: "courses",
			Columns: []Column{
				{"army_number", "varchar"}, {"course", "varchar"},
				{"from_date", "date"}, {"to_date", "date"},
				{"institute", "varchar"}, {"grading", "varchar"},
				{"remarks", "varchar"},
			},
		},
		{
			Name: "weight_info",
			Columns: []Column{
				{"army_number", "varchar"}, {"company", "varchar"},
				{"status_type", "varchar"}, {"weight", "decimal"},
			},
		},
		{
			Name: "parade_state_daily",
			Columns: []Column{
				{"report_date", "date"}, {"company", "varchar"},
				{"grandTotal_auth", "int"}, {"grandTotal_present_unit", "int"},
				{"grandTotal_lve", "int"}, {"grandTotal_att", "int"},
			},
		},
	}, Roles.Tables...)...),
}
