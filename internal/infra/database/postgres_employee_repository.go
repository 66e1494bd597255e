package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Faton6/Worker-checker/internal/domain/employee"

	"github.com/jmoiron/sqlx"
)

// Custom errors
var ErrEmployeeNotFound = errors.New("employee not found")
var ErrDuplicateTelegramID = errors.New("employee with this Telegram ID already exists")

type PostgresEmployeeRepository struct {
	db *sqlx.DB
}

func NewPostgresEmployeeRepository(db *sqlx.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	query := `INSERT INTO employees (telegram_id, full_name, is_admin)
              VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, e.TelegramID, e.FullName, e.IsAdmin)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateTelegramID
		}
		return fmt.Errorf("error creating employee: %w", err)
	}
	return nil
}

func (r *PostgresEmployeeRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*employee.Employee, error) {
	query := `SELECT telegram_id, full_name, is_admin FROM employees WHERE telegram_id = $1`
	e := &employee.Employee{}
	err := r.db.GetContext(ctx, e, query, telegramID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("error getting employee by Telegram ID: %w", err)
	}
	return e, nil
}

// Delete removes the employee row; the statuses foreign key cascades their
// status records in the same statement.
func (r *PostgresEmployeeRepository) Delete(ctx context.Context, telegramID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("error deleting employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *PostgresEmployeeRepository) SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE employees SET is_admin = $1 WHERE telegram_id = $2`, isAdmin, telegramID)
	if err != nil {
		return fmt.Errorf("error updating admin flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *PostgresEmployeeRepository) ListAll(ctx context.Context) ([]*employee.Employee, error) {
	query := `SELECT telegram_id, full_name, is_admin FROM employees ORDER BY full_name`
	employees := make([]*employee.Employee, 0)
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("error listing employees: %w", err)
	}
	return employees, nil
}

func (r *PostgresEmployeeRepository) ListAdmins(ctx context.Context) ([]*employee.Employee, error) {
	query := `SELECT telegram_id, full_name, is_admin FROM employees WHERE is_admin = TRUE ORDER BY full_name`
	admins := make([]*employee.Employee, 0)
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("error listing admins: %w", err)
	}
	return admins, nil
}
