package status

import (
	"database/sql"
	"time"
)

// Kind is the enumerated daily work state of an employee.
type Kind string

const (
	KindPresent   Kind = "PRESENT"
	KindRemote    Kind = "REMOTE"
	KindSickLeave Kind = "SICK_LEAVE"
	KindVacation  Kind = "VACATION"
	KindOther     Kind = "OTHER"
	// KindUnknown is assigned by the escalation job when an employee has not
	// answered by the cutoff. It never carries a description.
	KindUnknown Kind = "UNKNOWN"
)

// Kinds lists every kind in report order.
var Kinds = []Kind{KindPresent, KindRemote, KindSickLeave, KindVacation, KindOther, KindUnknown}

var labels = map[Kind]string{
	KindPresent:   "Очно",
	KindRemote:    "Удаленно",
	KindSickLeave: "Больничный",
	KindVacation:  "В отпуске",
	KindOther:     "Другое",
	KindUnknown:   "Не известно",
}

// Label returns the user-facing name of the kind.
func (k Kind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Record is one employee's status for one calendar date. The store enforces
// a single record per (employee, date) pair via upsert semantics.
type Record struct {
	ID          int64          `db:"id"`
	TelegramID  int64          `db:"telegram_id"`
	Date        time.Time      `db:"status_date"`
	Kind        Kind           `db:"status"`
	Description sql.NullString `db:"description"`
}
