// internal/models/question.go
package models

import (
	"strings"
	"time"
)

// Intent is the fixed tag assigned by the classifier.
type Intent string

const (
	IntentPersonnelLookup      Intent = "personnel_lookup"
	IntentPersonnelListCompany Intent = "personnel_list_company"
	IntentCompanyCount         Intent = "company_count"
	IntentLeaveStatus          Intent = "leave_status"
	IntentLeaveBalance         Intent = "leave_balance"
	IntentWeightFitness        Intent = "weight_fitness"
	IntentLoanQuery            Intent = "loan_query"
	IntentTaskQuery            Intent = "task_query"
	IntentFamilyLookup         Intent = "family_lookup"
	IntentCoursesLookup        Intent = "courses_lookup"
	IntentParadeState          Intent = "parade_state"
	IntentAnalytical           Intent = "analytical"
	IntentSchema               Intent = "schema"
	IntentDashboardSummary     Intent = "dashboard_summary"
	IntentGeneral              Intent = "general"
)

// Companies is the enumerated set a company entity may take.
var Companies = []string{"1 Company", "2 Company", "3 Company", "HQ Company"}

// AdminCompany is the sentinel requester company that lifts company scoping
// on dashboard aggregates.
const AdminCompany = "Admin"

// PrivilegedRoles are requester roles with unit-wide visibility.
var PrivilegedRoles = map[string]struct{}{
	"ADMIN":    {},
	"CO":       {},
	"2IC":      {},
	"ADJUTANT": {},
	"TRGJCO":   {},
	"OC":       {},
}

// EntitySet holds the structured fields pulled from one question. A zero
// value means the entity was absent; extraction never errors.
type EntitySet struct {
	Identifier string
	Company    string
	Date       *time.Time
	Rank       string
	LeaveType  string
}

// RequesterContext identifies the caller, populated by the auth collaborator.
// It is consumed only to scope dashboard-style aggregates.
type RequesterContext struct {
	Identifier string
	Company    string
	Role       string
}

// Privileged reports whether the requester role has unit-wide visibility.
func (r RequesterContext) Privileged() bool {
	_, ok := PrivilegedRoles[strings.ToUpper(r.Role)]
	return ok
}

// Question is the per-request unit of work. It is never persisted.
type Question struct {
	Raw        string
	Normalized string
	Intent     Intent
	Entities   EntitySet
}
