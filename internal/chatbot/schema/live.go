// internal/chatbot/schema/live.go
package schema

import (
	"context"
	"strings"

	"hrms-chatbot/internal/common/database"
	apperrors "hrms-chatbot/internal/common/errors"
)

const columnsQuery = `
	SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE
	FROM INFORMATION_SCHEMA.COLUMNS
	WHERE TABLE_SCHEMA = DATABASE()
	ORDER BY TABLE_NAME, ORDINAL_POSITION`

// FetchLive reads the live table/column list, restricted to allow-listed
// tables, rendered in the same block format as Descriptor.PromptText.
// This is internal fixed SQL; it never passes through the generated-query
// path and never leaves this package unrendered.
func FetchLive(ctx context.Context, db *database.MySQLClient) (string, error) {
	rows, err := db.Query(ctx, columnsQuery)
	if err != nil {
		return "", apperrors.NewExecutionError("schema introspection failed", err)
	}
	defer rows.Close()

	var b strings.Builder
	current := ""
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return "", apperrors.NewExecutionError("schema introspection failed", err)
		}
		if !Allowed(table) {
			continue
		}
		if table != current {
			current = table
			b.WriteString("\n**")
			b.WriteString(table)
			b.WriteString("**:\n")
		}
		b.WriteString("  - ")
		b.WriteString(column)
		b.WriteString(" (")
		b.WriteString(dataType)
		b.WriteString(")\n")
	}
	if err := rows.Err(); err != nil {
		return "", apperrors.NewExecutionError("schema introspection failed", err)
	}
	if b.Len() == 0 {
		return "No schema.", nil
	}
	return b.String(), nil
}

// FetchLiveColumns returns the allow-listed live schema as table -> columns,
// used by the lexical introspection fallback.
func FetchLiveColumns(ctx context.Context, db *database.MySQLClient) (map[string][]string, error) {
	rows, err := db.Query(ctx, columnsQuery)
	if err != nil {
		return nil, apperrors.NewExecutionError("schema introspection failed", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return nil, apperrors.NewExecutionError("schema introspection failed", err)
		}
		if !Allowed(table) {
			continue
		}
		out[table] = append(out[table], column)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExecutionError("schema introspection failed", err)
	}
	return out, nil
}
