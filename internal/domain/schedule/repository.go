package schedule

import "context"

// Repository persists the trigger table. The four triggers are always
// written as a unit so a partially updated schedule is never observable.
type Repository interface {
	// Load returns the persisted triggers, or ErrScheduleNotFound when the
	// table has never been written.
	Load(ctx context.Context) ([]Trigger, error)
	// Save atomically replaces all persisted triggers.
	Save(ctx context.Context, triggers []Trigger) error
}
