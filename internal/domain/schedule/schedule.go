package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Job names of the four daily pipeline stages, also used as keys in the
// persisted trigger table.
const (
	JobRequest  = "status_request"
	JobReminder = "status_reminder"
	JobEscalate = "status_escalate"
	JobReport   = "admin_report"
)

// Offsets of the downstream stages, in minutes after the reminder.
const (
	escalateLag = 5
	reportLag   = 10
)

// TimeOfDay is a wall-clock trigger time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict 24-hour "HH:MM" value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Add returns the time shifted forward by the given number of minutes,
// wrapping past midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	total := (t.Hour*60 + t.Minute + minutes) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// CronSpec renders the trigger as a weekday cron expression.
func (t TimeOfDay) CronSpec() string {
	return fmt.Sprintf("%d %d * * 1-5", t.Minute, t.Hour)
}

// Trigger binds a pipeline job to its wall-clock time.
type Trigger struct {
	Job string
	At  TimeOfDay
}

// Config is the single schedule specification: one base time plus named
// offsets. All four trigger times are always derived from it as a unit,
// never mutated independently.
type Config struct {
	Base          TimeOfDay
	ReminderDelay int // minutes between request and reminder
}

// Triggers derives the four pipeline triggers in their fixed relative order:
// request, reminder, escalate, report.
func (c Config) Triggers() []Trigger {
	reminder := c.Base.Add(c.ReminderDelay)
	return []Trigger{
		{Job: JobRequest, At: c.Base},
		{Job: JobReminder, At: reminder},
		{Job: JobEscalate, At: reminder.Add(escalateLag)},
		{Job: JobReport, At: reminder.Add(reportLag)},
	}
}
