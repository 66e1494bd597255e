package report

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	"github.com/Faton6/Worker-checker/internal/domain/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

func roster() []*employee.Employee {
	return []*employee.Employee{
		{TelegramID: 1, FullName: "Анна Иванова", IsAdmin: true},
		{TelegramID: 2, FullName: "Борис Петров"},
		{TelegramID: 3, FullName: "Виктор Сидоров"},
	}
}

func record(id int64, kind status.Kind, description string) *status.Record {
	return &status.Record{
		TelegramID:  id,
		Date:        testDate,
		Kind:        kind,
		Description: sql.NullString{String: description, Valid: description != ""},
	}
}

func TestBuildDailySummary(t *testing.T) {
	records := []*status.Record{
		record(1, status.KindPresent, ""),
		record(2, status.KindRemote, ""),
	}

	summary := BuildDailySummary(testDate, roster(), records)

	assert.Equal(t, []string{"Анна"}, summary.Groups[status.KindPresent])
	assert.Equal(t, []string{"Борис"}, summary.Groups[status.KindRemote])
	// An employee with no record for the date lands in the unknown bucket.
	assert.Equal(t, []string{"Виктор"}, summary.Groups[status.KindUnknown])
	assert.Equal(t, 3, summary.Total())
}

func TestBuildDailySummaryAllUnanswered(t *testing.T) {
	summary := BuildDailySummary(testDate, roster(), nil)
	assert.Len(t, summary.Groups[status.KindUnknown], 3)
	assert.Equal(t, 3, summary.Total())
}

func TestDailySummaryFormat(t *testing.T) {
	records := []*status.Record{
		record(1, status.KindPresent, ""),
		record(2, status.KindVacation, ""),
	}

	text := BuildDailySummary(testDate, roster(), records).Format()

	// Counts for every bucket; first names for every bucket except present.
	assert.Contains(t, text, "В офисе: 1")
	assert.NotContains(t, text, "В офисе: 1 - ")
	assert.Contains(t, text, "В отпуске: 1 - Борис")
	assert.Contains(t, text, "Не известно: 1 - Виктор")
	assert.Contains(t, text, "Больничный: 0")
}

func TestBuildTable(t *testing.T) {
	records := []*status.Record{
		record(2, status.KindOther, "dentist"),
	}

	rows := BuildTable(roster(), records)

	require.Len(t, rows, 3)
	assert.Equal(t, Row{FullName: "Анна Иванова", Status: "Не известно", Description: "-"}, rows[0])
	assert.Equal(t, Row{FullName: "Борис Петров", Status: "Другое", Description: "dentist"}, rows[1])
	assert.Equal(t, Row{FullName: "Виктор Сидоров", Status: "Не известно", Description: "-"}, rows[2])
}

func TestFormatRoster(t *testing.T) {
	records := []*status.Record{
		record(1, status.KindRemote, ""),
		record(2, status.KindOther, "dentist"),
	}

	text := FormatRoster(roster(), records)

	assert.Contains(t, text, "Анна Иванова: Удаленно")
	assert.Contains(t, text, "Борис Петров: Другое (dentist)")
	assert.Contains(t, text, "Виктор Сидоров: Не известно")
}

func TestBuildPeriodAnalytics(t *testing.T) {
	day2 := testDate.AddDate(0, 0, 1)
	records := []*status.Record{
		record(1, status.KindPresent, ""),
		record(2, status.KindPresent, ""),
		{TelegramID: 1, Date: day2, Kind: status.KindSickLeave},
	}

	analytics := BuildPeriodAnalytics(records)

	assert.Equal(t, 2, analytics[status.KindPresent])
	assert.Equal(t, 1, analytics[status.KindSickLeave])
	// Unlike the daily summary, days without a record contribute nothing:
	// employee 3 never answered and appears in no count.
	assert.Equal(t, 0, analytics[status.KindUnknown])
}

func TestPeriodAnalyticsEmptyRange(t *testing.T) {
	analytics := BuildPeriodAnalytics(nil)
	assert.Empty(t, analytics.Format())
}

func TestPeriodAnalyticsFormat(t *testing.T) {
	analytics := PeriodAnalytics{status.KindPresent: 4, status.KindOther: 1}
	text := analytics.Format()
	assert.Contains(t, text, "Очно: 4 раз(а)")
	assert.Contains(t, text, "Другое: 1 раз(а)")
	assert.NotContains(t, text, "Больничный")
}
