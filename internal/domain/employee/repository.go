package employee

import "context"

// Repository defines the operations for persisting and retrieving Employee entities.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*Employee, error)
	// Delete removes the employee and cascades to their status records.
	Delete(ctx context.Context, telegramID int64) error
	SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) error
	ListAll(ctx context.Context) ([]*Employee, error)
	ListAdmins(ctx context.Context) ([]*Employee, error)
}
