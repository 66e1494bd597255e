package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	"github.com/Faton6/Worker-checker/internal/domain/report"
	"github.com/Faton6/Worker-checker/internal/domain/status"
	domainTelegram "github.com/Faton6/Worker-checker/internal/domain/telegram"
	"github.com/Faton6/Worker-checker/internal/infra/excel"

	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// ReportService builds the administrator-facing views out of the roster and
// status snapshots and delivers them.
type ReportService struct {
	employees employee.Repository
	statuses  status.Repository
	client    domainTelegram.Client
	logger    *logrus.Entry
	location  *time.Location
}

func NewReportService(
	er employee.Repository,
	sr status.Repository,
	tc domainTelegram.Client,
	logger *logrus.Entry,
	location *time.Location,
) *ReportService {
	return &ReportService{
		employees: er,
		statuses:  sr,
		client:    tc,
		logger:    logger,
		location:  location,
	}
}

// Today returns the current calendar date in the configured timezone.
func (s *ReportService) Today() time.Time {
	return todayIn(s.location)
}

// DailySummaryText builds the bucketed text summary for the date.
func (s *ReportService) DailySummaryText(ctx context.Context, date time.Time) (string, error) {
	summary, err := s.dailySummary(ctx, date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Отчет по статусам сотрудников на %s:\n%s", date.Format(dateLayout), summary.Format()), nil
}

// SendDailyReportToAdmins delivers today's summary to every administrator.
// Per-admin delivery failures are isolated and logged.
func (s *ReportService) SendDailyReportToAdmins(ctx context.Context) error {
	text, err := s.DailySummaryText(ctx, s.Today())
	if err != nil {
		return err
	}
	admins, err := s.employees.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins for daily report: %w", err)
	}

	for _, a := range admins {
		if err := s.client.SendMessage(a.TelegramID, text, nil); err != nil {
			s.logger.WithError(err).WithField("admin_id", a.TelegramID).Error("Failed to deliver daily report")
		}
	}
	s.logger.WithField("admins", len(admins)).Info("Daily report delivered")
	return nil
}

// SendSummaryTo delivers the date's text summary to one chat.
func (s *ReportService) SendSummaryTo(ctx context.Context, chatID int64, date time.Time) error {
	text, err := s.DailySummaryText(ctx, date)
	if err != nil {
		return err
	}
	return s.client.SendMessage(chatID, text, nil)
}

// SendSpreadsheetTo delivers the date's roster listing plus the xlsx export
// document to one chat.
func (s *ReportService) SendSpreadsheetTo(ctx context.Context, chatID int64, date time.Time) error {
	employees, records, err := s.snapshot(ctx, date)
	if err != nil {
		return err
	}

	listing := fmt.Sprintf("Отчет по статусам сотрудников на %s:\n%s",
		date.Format(dateLayout), report.FormatRoster(employees, records))
	if err := s.client.SendMessage(chatID, listing, nil); err != nil {
		return fmt.Errorf("failed to send roster listing: %w", err)
	}

	workbook, err := excel.BuildStatusReport(report.BuildTable(employees, records))
	if err != nil {
		return fmt.Errorf("failed to build xlsx report: %w", err)
	}
	return s.client.SendDocument(chatID, workbook, "Отчет.xlsx", "Отчет по статусам сотрудников.")
}

// SendAnalyticsTo delivers per-kind occurrence counts over the inclusive
// range to one chat. A range with no records yields an empty listing.
func (s *ReportService) SendAnalyticsTo(ctx context.Context, chatID int64, start, end time.Time) error {
	records, err := s.statuses.ListByPeriod(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to list statuses for analytics: %w", err)
	}

	analytics := report.BuildPeriodAnalytics(records)
	text := fmt.Sprintf("Аналитические данные за период с %s по %s:\n%s",
		start.Format(dateLayout), end.Format(dateLayout), analytics.Format())
	return s.client.SendMessage(chatID, text, nil)
}

func (s *ReportService) dailySummary(ctx context.Context, date time.Time) (report.DailySummary, error) {
	employees, records, err := s.snapshot(ctx, date)
	if err != nil {
		return report.DailySummary{}, err
	}
	return report.BuildDailySummary(date, employees, records), nil
}

func (s *ReportService) snapshot(ctx context.Context, date time.Time) ([]*employee.Employee, []*status.Record, error) {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list employees for report: %w", err)
	}
	records, err := s.statuses.ListByDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list statuses for report: %w", err)
	}
	return employees, records, nil
}
