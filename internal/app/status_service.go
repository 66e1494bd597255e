package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	"github.com/Faton6/Worker-checker/internal/domain/status"
	domainTelegram "github.com/Faton6/Worker-checker/internal/domain/telegram"
	idb "github.com/Faton6/Worker-checker/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// StatusService drives the daily status pipeline: interactive requests,
// reminders, escalation to the unknown status, and status writes coming
// from employee answers.
type StatusService struct {
	employees employee.Repository
	statuses  status.Repository
	client    domainTelegram.Client
	logger    *logrus.Entry
	location  *time.Location
}

func NewStatusService(
	er employee.Repository,
	sr status.Repository,
	tc domainTelegram.Client,
	logger *logrus.Entry,
	location *time.Location,
) *StatusService {
	return &StatusService{
		employees: er,
		statuses:  sr,
		client:    tc,
		logger:    logger,
		location:  location,
	}
}

// Today returns the current calendar date in the configured timezone,
// normalized the way status records store it.
func (s *StatusService) Today() time.Time {
	return todayIn(s.location)
}

// SendStatusRequest sends the interactive status prompt to one employee.
// Safe to resend: answering simply overwrites the day's record.
func (s *StatusService) SendStatusRequest(telegramID int64) error {
	markup := statusKeyboard()
	return s.client.SendMessage(telegramID,
		"Пожалуйста, выберите ваш статус на сегодня:",
		&telebot.SendOptions{ReplyMarkup: markup})
}

// RequestAll sends the status prompt to every registered employee. A
// delivery failure for one employee never blocks the rest.
func (s *StatusService) RequestAll(ctx context.Context) error {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees for status request: %w", err)
	}

	for _, e := range employees {
		if err := s.SendStatusRequest(e.TelegramID); err != nil {
			s.logger.WithError(err).WithField("telegram_id", e.TelegramID).Error("Failed to send status request")
		}
	}
	s.logger.WithField("employees", len(employees)).Info("Status requests sent")
	return nil
}

// RemindUnanswered nudges every employee who has no status record for today.
// Employees who already answered are skipped.
func (s *StatusService) RemindUnanswered(ctx context.Context) error {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees for reminders: %w", err)
	}
	today := s.Today()

	for _, e := range employees {
		answered, err := s.hasAnswered(ctx, e.TelegramID, today)
		if err != nil {
			s.logger.WithError(err).WithField("telegram_id", e.TelegramID).Error("Failed to check status before reminder")
			continue
		}
		if answered {
			continue
		}
		err = s.client.SendMessage(e.TelegramID,
			"Напоминаем, что вы еще не указали свой статус на сегодня. Пожалуйста, сделайте это до 9:00.", nil)
		if err != nil {
			s.logger.WithError(err).WithField("telegram_id", e.TelegramID).Error("Failed to send reminder")
		}
	}
	return nil
}

// EscalateUnanswered assigns the unknown status to every employee still
// without a record for today and notifies both the employee and every
// administrator. Running it twice on the same day is a no-op for employees
// already escalated: the synthesized record makes them look answered.
func (s *StatusService) EscalateUnanswered(ctx context.Context) error {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees for escalation: %w", err)
	}
	admins, err := s.employees.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins for escalation: %w", err)
	}
	today := s.Today()

	for _, e := range employees {
		answered, err := s.hasAnswered(ctx, e.TelegramID, today)
		if err != nil {
			s.logger.WithError(err).WithField("telegram_id", e.TelegramID).Error("Failed to check status before escalation")
			continue
		}
		if answered {
			continue
		}

		if err := s.statuses.Upsert(ctx, e.TelegramID, today, status.KindUnknown, ""); err != nil {
			s.logger.WithError(err).WithField("telegram_id", e.TelegramID).Error("Failed to assign unknown status")
			continue
		}
		s.logger.WithField("telegram_id", e.TelegramID).Info("Employee escalated to unknown status")

		err = s.client.SendMessage(e.TelegramID,
			"Вам автоматически присвоен статус 'Не известно', так как вы не ответили на запрос.", nil)
		if err != nil {
			s.logger.WithError(err).WithField("telegram_id", e.TelegramID).Error("Failed to notify escalated employee")
		}

		text := fmt.Sprintf("Сотрудник %s не ответил на запрос. Статус проставлен как 'Не известно'.", e.FullName)
		s.sendToAdmins(admins, text, nil)
	}
	return nil
}

// SetStatus upserts the employee's status for today. A status of the "other"
// kind carries the employee's free-text description and additionally
// notifies every administrator.
func (s *StatusService) SetStatus(ctx context.Context, telegramID int64, kind status.Kind, description string) error {
	if kind != status.KindOther {
		description = ""
	}
	if err := s.statuses.Upsert(ctx, telegramID, s.Today(), kind, description); err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"telegram_id": telegramID, "status": kind}).Info("Status saved")

	if kind == status.KindOther {
		fullName := s.fullNameOf(ctx, telegramID)
		text := fmt.Sprintf("Сотрудник [%s](tg://user?id=%d) установил статус: %s (%s).",
			fullName, telegramID, kind.Label(), description)
		s.NotifyAdmins(ctx, text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	}
	return nil
}

// NotifyAdmins fans a message out to every administrator, isolating
// per-recipient delivery failures.
func (s *StatusService) NotifyAdmins(ctx context.Context, text string, options *telebot.SendOptions) {
	admins, err := s.employees.ListAdmins(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list admins for notification")
		return
	}
	s.sendToAdmins(admins, text, options)
}

func (s *StatusService) sendToAdmins(admins []*employee.Employee, text string, options *telebot.SendOptions) {
	for _, a := range admins {
		if err := s.client.SendMessage(a.TelegramID, text, options); err != nil {
			s.logger.WithError(err).WithField("admin_id", a.TelegramID).Error("Failed to notify admin")
		}
	}
}

func (s *StatusService) hasAnswered(ctx context.Context, telegramID int64, date time.Time) (bool, error) {
	_, err := s.statuses.Get(ctx, telegramID, date)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, idb.ErrStatusNotFound) {
		return false, nil
	}
	return false, err
}

func (s *StatusService) fullNameOf(ctx context.Context, telegramID int64) string {
	e, err := s.employees.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return "Неизвестный пользователь"
	}
	return e.FullName
}

// statusKeyboard builds the inline prompt keyboard. Callback payloads are
// the numeric status codes understood by the status callback handler.
func statusKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	btnPresent := markup.Data("Очно", "status", "1")
	btnRemote := markup.Data("Удаленно", "status", "2")
	btnSick := markup.Data("Больничный", "status", "3")
	btnVacation := markup.Data("В отпуске", "status", "4")
	btnOther := markup.Data("Другое", "status", "5")
	markup.Inline(
		markup.Row(btnPresent, btnRemote),
		markup.Row(btnSick, btnVacation, btnOther),
	)
	return markup
}

func todayIn(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
