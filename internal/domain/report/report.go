// Package report turns a roster snapshot plus a set of status records into
// the administrator-facing views. All functions are pure: they take no locks
// and mutate no shared state.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	"github.com/Faton6/Worker-checker/internal/domain/status"
)

// DailySummary groups the roster by status kind for one date. Employees
// without a record for the date land in the unknown bucket.
type DailySummary struct {
	Date   time.Time
	Groups map[status.Kind][]string // first names, roster order
}

// BuildDailySummary buckets every employee by their status for the date.
func BuildDailySummary(date time.Time, employees []*employee.Employee, records []*status.Record) DailySummary {
	byEmployee := recordsByEmployee(records)

	groups := make(map[status.Kind][]string, len(status.Kinds))
	for _, e := range employees {
		kind := status.KindUnknown
		if rec, ok := byEmployee[e.TelegramID]; ok {
			kind = rec.Kind
		}
		groups[kind] = append(groups[kind], e.FirstName())
	}
	return DailySummary{Date: date, Groups: groups}
}

// Total returns the number of bucketed employees across all groups.
func (s DailySummary) Total() int {
	n := 0
	for _, names := range s.Groups {
		n += len(names)
	}
	return n
}

// Format renders the summary: a count for every bucket, and first names for
// every bucket except the present one.
func (s DailySummary) Format() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("В офисе: %d", len(s.Groups[status.KindPresent])))
	for _, kind := range status.Kinds[1:] {
		names := s.Groups[kind]
		b.WriteString(fmt.Sprintf("\n%s: %d - %s", kind.Label(), len(names), strings.Join(names, ", ")))
	}
	return b.String()
}

// Row is one line of the tabular export.
type Row struct {
	FullName    string
	Status      string
	Description string
}

// Headers of the tabular export, in column order.
var Headers = []string{"ФИО", "Статус", "Описание"}

// BuildTable produces one row per registered employee with a localized
// status label and a "-" placeholder where no description exists.
func BuildTable(employees []*employee.Employee, records []*status.Record) []Row {
	byEmployee := recordsByEmployee(records)

	rows := make([]Row, 0, len(employees))
	for _, e := range employees {
		row := Row{FullName: e.FullName, Status: status.KindUnknown.Label(), Description: "-"}
		if rec, ok := byEmployee[e.TelegramID]; ok {
			row.Status = rec.Kind.Label()
			if rec.Description.Valid && rec.Description.String != "" {
				row.Description = rec.Description.String
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatRoster renders a per-employee text listing for one date.
func FormatRoster(employees []*employee.Employee, records []*status.Record) string {
	byEmployee := recordsByEmployee(records)

	var b strings.Builder
	for _, e := range employees {
		label := status.KindUnknown.Label()
		if rec, ok := byEmployee[e.TelegramID]; ok {
			label = rec.Kind.Label()
			if rec.Kind == status.KindOther && rec.Description.Valid && rec.Description.String != "" {
				label += fmt.Sprintf(" (%s)", rec.Description.String)
			}
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", e.FullName, label))
	}
	return b.String()
}

// PeriodAnalytics counts status-kind occurrences over a date range. Days
// without a record are not counted: unlike the daily summary, the range
// view reports only what was actually stored.
type PeriodAnalytics map[status.Kind]int

// BuildPeriodAnalytics tallies the given records by kind.
func BuildPeriodAnalytics(records []*status.Record) PeriodAnalytics {
	counts := make(PeriodAnalytics)
	for _, rec := range records {
		counts[rec.Kind]++
	}
	return counts
}

// Format renders non-zero counts in report order. A range with no records
// produces an empty listing, not an error.
func (a PeriodAnalytics) Format() string {
	var b strings.Builder
	for _, kind := range status.Kinds {
		if n := a[kind]; n > 0 {
			b.WriteString(fmt.Sprintf("%s: %d раз(а)\n", kind.Label(), n))
		}
	}
	return b.String()
}

func recordsByEmployee(records []*status.Record) map[int64]*status.Record {
	m := make(map[int64]*status.Record, len(records))
	for _, rec := range records {
		m[rec.TelegramID] = rec
	}
	return m
}
