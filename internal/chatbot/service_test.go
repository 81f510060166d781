// internal/chatbot/service_test.go
package chatbot

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-chatbot/internal/common/config"
	"hrms-chatbot/internal/common/database"
	"hrms-chatbot/internal/common/logger"
	"hrms-chatbot/internal/common/observability"
	"hrms-chatbot/internal/models"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Chatbot.MaxRows = 200
	cfg.LLM.Enabled = false
	cfg.LLM.HistoryLimit = 10

	svc := NewService(cfg, logger.NewNoOpLogger(), database.NewMySQLFromDB(db), nil, observability.New("chatbot-test"))
	t.Cleanup(func() { svc.Close() })
	return svc, mock
}

var requester = models.RequesterContext{Identifier: "100X", Company: "1 Company", Role: "NK"}

func TestHandle_EmptyMessageGivesUsageWithoutQuerying(t *testing.T) {
	svc, mock := newTestService(t)

	resp := svc.Handle(context.Background(), models.ChatRequest{Message: "   "}, requester)

	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Reply, "army number 778G")
	// no database interaction at all
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle_PersonnelLookupRoundTrip(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM personnel WHERE army_number = \\?").
		WithArgs("778G").
		WillReturnRows(sqlmock.NewRows([]string{"name", "army_number", "company"}).
			AddRow("Ram Singh", "778G", "1 Company"))

	resp := svc.Handle(context.Background(), models.ChatRequest{
		Message: "Details of army number 778G",
	}, requester)

	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Reply, "**Personnel Record**")
	assert.Contains(t, resp.Reply, "Ram Singh")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle_CompanyCount(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT company, COUNT\\(\\*\\) AS count FROM personnel WHERE company = \\?").
		WithArgs("1 Company").
		WillReturnRows(sqlmock.NewRows([]string{"company", "count"}).
			AddRow("1 Company", 120))

	resp := svc.Handle(context.Background(), models.ChatRequest{
		Message: "How many personnel in 1 Company",
	}, requester)

	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Reply, "- 1 Company: 120")
	assert.Contains(t, resp.Reply, "**Total: 120 personnel**")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle_FamilyLookupAddsChildren(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM family_members WHERE army_number = \\?").
		WithArgs("778G").
		WillReturnRows(sqlmock.NewRows([]string{"relation", "name"}).
			AddRow("Wife", "Sita Devi"))
	mock.ExpectQuery("FROM children WHERE army_number = \\?").
		WithArgs("778G").
		WillReturnRows(sqlmock.NewRows([]string{"name", "class"}).
			AddRow("Arjun", "VI"))

	resp := svc.Handle(context.Background(), models.ChatRequest{
		Message: "Family details of 778G",
	}, requester)

	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Reply, "Sita Devi")
	assert.Contains(t, resp.Reply, "**Children**")
	assert.Contains(t, resp.Reply, "Arjun")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle_FamilyChildrenFailureKeepsAnswer(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM family_members WHERE army_number = \\?").
		WithArgs("778G").
		WillReturnRows(sqlmock.NewRows([]string{"relation", "name"}).
			AddRow("Wife", "Sita Devi"))
	mock.ExpectQuery("FROM children WHERE army_number = \\?").
		WillReturnError(assert.AnError)

	resp := svc.Handle(context.Background(), models.ChatRequest{
		Message: "Family details of 778G",
	}, requester)

	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Reply, "Sita Devi")
	assert.NotContains(t, resp.Reply, "Children")
}

func TestHandle_SchemaQuestion(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM INFORMATION_SCHEMA.COLUMNS").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE"}).
			AddRow("personnel", "army_number", "varchar").
			AddRow("personnel", "name", "varchar").
			AddRow("migrations_internal", "id", "int"))

	resp := svc.Handle(context.Background(), models.ChatRequest{
		Message: "What tables do you have?",
	}, requester)

	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Reply, "**personnel**:")
	assert.Contains(t, resp.Reply, "army_number (varchar)")
	// tables outside the allow-list never appear
	assert.NotContains(t, resp.Reply, "migrations_internal")
}

func TestHandle_LookupWithoutIdentifierAsksForOne(t *testing.T) {
	svc, mock := newTestService(t)

	resp := svc.Handle(context.Background(), models.ChatRequest{
		Message: "show details of army number",
	}, requester)

	assert.Nil(t, resp.Error)
	assert.Contains(t, resp.Reply, "army number")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A data-store failure on the deterministic path is reported to the user,
// not silently retried through the LLM fallback.
func TestHandle_ExecutionFailureIsSurfaced(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM personnel WHERE army_number = \\?").
		WillReturnError(assert.AnError)

	resp := svc.Handle(context.Background(), models.ChatRequest{
		Message: "Details of army number 778G",
	}, requester)

	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Reply, "I couldn't complete that.")
	assert.Contains(t, resp.Reply, "Try rephrasing")
	assert.NoError(t, mock.ExpectationsWereMet())
}
