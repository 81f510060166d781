// Package executor runs validated SELECT statements and converts the raw
// rows into the transport-neutral result set the formatter consumes.
package executor

import (
	"context"
	"database/sql"
	"time"

	"hrms-chatbot/internal/common/database"
	apperrors "hrms-chatbot/internal/common/errors"
	"hrms-chatbot/internal/common/logger"
	"hrms-chatbot/internal/common/metrics"
	"hrms-chatbot/internal/models"
)

// Executor is shared across requests and is safe for concurrent use.
type Executor struct {
	db      *database.MySQLClient
	logger  logger.Logger
	maxRows int
}

func New(db *database.MySQLClient, log logger.Logger, maxRows int) *Executor {
	if maxRows <= 0 {
		maxRows = 200
	}
	return &Executor{db: db, logger: log, maxRows: maxRows}
}

// Run executes a generated query and returns at most maxRows rows. Sensitive
// columns are masked here so no caller can forget to. Database failures come
// back as ExecutionError.
func (e *Executor) Run(ctx context.Context, q models.GeneratedQuery, intent models.Intent) (*models.ResultSet, error) {
	start := time.Now()
	rows, err := e.db.Query(ctx, q.SQL, q.Params...)
	if err != nil {
		e.logger.Error("query execution failed", map[string]interface{}{"error": err.Error()})
		return nil, apperrors.NewExecutionError("query execution failed", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, apperrors.NewExecutionError("failed to read result columns", err)
	}

	rs := &models.ResultSet{Columns: cols}
	values := make([]interface{}, len(cols))
	scanArgs := make([]interface{}, len(cols))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if len(rs.Rows) >= e.maxRows {
			rs.Truncated = true
			break
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, apperrors.NewExecutionError("failed to scan row", err)
		}
		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			row[col] = normalizeCell(col, values[i])
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExecutionError("row iteration failed", err)
	}

	metrics.QueryDuration.WithLabelValues(string(intent)).Observe(time.Since(start).Seconds())
	return rs, nil
}

// normalizeCell converts driver values into formatter-friendly types and
// applies masking. NULLs stay nil; the formatter renders them.
func normalizeCell(column string, v interface{}) interface{} {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case []byte:
		s := string(t)
		if isSensitive(column) {
			return maskValue(s)
		}
		return s
	case string:
		if isSensitive(column) {
			return maskValue(t)
		}
		return t
	case sql.RawBytes:
		s := string(t)
		if isSensitive(column) {
			return maskValue(s)
		}
		return s
	default:
		return v
	}
}
