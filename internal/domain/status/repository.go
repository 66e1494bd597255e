package status

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving status records.
type Repository interface {
	// Upsert inserts the record for (telegramID, date) or overwrites the kind
	// and description of an existing one. Never produces two records for the
	// same employee and date.
	Upsert(ctx context.Context, telegramID int64, date time.Time, kind Kind, description string) error
	// Get returns the record for the given employee and date, or
	// ErrStatusNotFound.
	Get(ctx context.Context, telegramID int64, date time.Time) (*Record, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Record, error)
	// ListByPeriod returns all records with start <= date <= end.
	ListByPeriod(ctx context.Context, start, end time.Time) ([]*Record, error)
}
