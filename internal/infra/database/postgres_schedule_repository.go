package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faton6/Worker-checker/internal/domain/schedule"

	"github.com/jmoiron/sqlx"
)

var ErrScheduleNotFound = errors.New("schedule triggers not found")

type PostgresScheduleRepository struct {
	db *sqlx.DB
}

func NewPostgresScheduleRepository(db *sqlx.DB) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{db: db}
}

func (r *PostgresScheduleRepository) Load(ctx context.Context) ([]schedule.Trigger, error) {
	query := `SELECT job_name, hour, minute FROM schedule_jobs`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error loading schedule: %w", err)
	}
	defer rows.Close()

	triggers := make([]schedule.Trigger, 0, 4)
	for rows.Next() {
		var t schedule.Trigger
		if err := rows.Scan(&t.Job, &t.At.Hour, &t.At.Minute); err != nil {
			return nil, fmt.Errorf("error scanning schedule trigger: %w", err)
		}
		triggers = append(triggers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule triggers: %w", err)
	}
	if len(triggers) == 0 {
		return nil, ErrScheduleNotFound
	}
	return triggers, nil
}

// Save rewrites the whole trigger table in one transaction so a partial
// schedule is never observable.
func (r *PostgresScheduleRepository) Save(ctx context.Context, triggers []schedule.Trigger) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting schedule transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_jobs`); err != nil {
		return fmt.Errorf("error clearing schedule: %w", err)
	}
	for _, t := range triggers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_jobs (job_name, hour, minute) VALUES ($1, $2, $3)`,
			t.Job, t.At.Hour, t.At.Minute)
		if err != nil {
			return fmt.Errorf("error saving schedule trigger %s: %w", t.Job, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing schedule: %w", err)
	}
	return nil
}
