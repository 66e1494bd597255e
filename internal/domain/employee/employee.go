package employee

import "strings"

// Employee represents a registered member of the organization.
// TelegramID doubles as the primary key: registration is keyed by the
// Telegram account, one row per person.
type Employee struct {
	TelegramID int64  `db:"telegram_id"`
	FullName   string `db:"full_name"`
	IsAdmin    bool   `db:"is_admin"`
}

// FirstName returns the first word of the full name, used in the compact
// daily summary.
func (e *Employee) FirstName() string {
	fields := strings.Fields(e.FullName)
	if len(fields) == 0 {
		return e.FullName
	}
	return fields[0]
}
