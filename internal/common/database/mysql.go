// internal/common/database/mysql.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hrms-chatbot/internal/common/config"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLClient wraps the SQL database connection.
type MySQLClient struct {
	DB *sql.DB
}

// NewMySQL creates a new MySQL client.
func NewMySQL(cfg config.MySQLConfig) (*MySQLClient, error) {
	db, err := sql.Open("mysql", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &MySQLClient{DB: db}, nil
}

// NewMySQLFromDB wraps an existing handle (used by tests with sqlmock).
func NewMySQLFromDB(db *sql.DB) *MySQLClient {
	return &MySQLClient{DB: db}
}

// Ping tests the database connection.
func (c *MySQLClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection.
func (c *MySQLClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query executes a query that returns rows.
func (c *MySQLClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row.
func (c *MySQLClient) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}
