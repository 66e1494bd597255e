package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 1 * time.Minute
)

// NewPostgresConnection creates and returns a new PostgreSQL database connection.
// It also pings the database to ensure connectivity.
func NewPostgresConnection(dataSourceName string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	return db, nil
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			telegram_id BIGINT PRIMARY KEY,
			full_name   TEXT NOT NULL,
			is_admin    BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS statuses (
			id          BIGSERIAL PRIMARY KEY,
			telegram_id BIGINT NOT NULL REFERENCES employees (telegram_id) ON DELETE CASCADE,
			status      TEXT NOT NULL,
			description TEXT,
			status_date DATE NOT NULL,
			UNIQUE (telegram_id, status_date)
		)`,
		`CREATE TABLE IF NOT EXISTS schedule_jobs (
			job_name TEXT PRIMARY KEY,
			hour     SMALLINT NOT NULL,
			minute   SMALLINT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
