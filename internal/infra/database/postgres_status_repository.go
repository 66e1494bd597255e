package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/status"

	"github.com/jmoiron/sqlx"
)

var ErrStatusNotFound = errors.New("status record not found")

type PostgresStatusRepository struct {
	db *sqlx.DB
}

func NewPostgresStatusRepository(db *sqlx.DB) *PostgresStatusRepository {
	return &PostgresStatusRepository{db: db}
}

// Upsert writes the record for (telegramID, date), overwriting the kind and
// description of an existing one. The unique index on (telegram_id,
// status_date) makes a second record for the same day impossible.
func (r *PostgresStatusRepository) Upsert(ctx context.Context, telegramID int64, date time.Time, kind status.Kind, description string) error {
	query := `INSERT INTO statuses (telegram_id, status_date, status, description)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (telegram_id, status_date)
              DO UPDATE SET status = EXCLUDED.status, description = EXCLUDED.description`

	desc := sql.NullString{String: description, Valid: description != ""}
	if _, err := r.db.ExecContext(ctx, query, telegramID, date, kind, desc); err != nil {
		return fmt.Errorf("error upserting status: %w", err)
	}
	return nil
}

func (r *PostgresStatusRepository) Get(ctx context.Context, telegramID int64, date time.Time) (*status.Record, error) {
	query := `SELECT id, telegram_id, status_date, status, description
              FROM statuses WHERE telegram_id = $1 AND status_date = $2`
	rec := &status.Record{}
	err := r.db.GetContext(ctx, rec, query, telegramID, date)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("error getting status: %w", err)
	}
	return rec, nil
}

func (r *PostgresStatusRepository) ListByDate(ctx context.Context, date time.Time) ([]*status.Record, error) {
	query := `SELECT id, telegram_id, status_date, status, description
              FROM statuses WHERE status_date = $1 ORDER BY telegram_id`
	records := make([]*status.Record, 0)
	if err := r.db.SelectContext(ctx, &records, query, date); err != nil {
		return nil, fmt.Errorf("error listing statuses by date: %w", err)
	}
	return records, nil
}

func (r *PostgresStatusRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]*status.Record, error) {
	query := `SELECT id, telegram_id, status_date, status, description
              FROM statuses WHERE status_date BETWEEN $1 AND $2 ORDER BY status_date, telegram_id`
	records := make([]*status.Record, 0)
	if err := r.db.SelectContext(ctx, &records, query, start, end); err != nil {
		return nil, fmt.Errorf("error listing statuses by period: %w", err)
	}
	return records, nil
}
