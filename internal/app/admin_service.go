package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	"github.com/Faton6/Worker-checker/internal/domain/schedule"
	domainTelegram "github.com/Faton6/Worker-checker/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// Custom application-level errors for admin operations
var ErrNotAdmin = errors.New("performing user is not an administrator")
var ErrTargetNotAdmin = errors.New("target user is not an administrator")

// Rescheduler swaps the live trigger table of the running scheduler.
type Rescheduler interface {
	Reschedule(triggers []schedule.Trigger) error
}

// AdminService implements administrator actions: admin flag toggles,
// broadcast, and the atomic schedule change.
type AdminService struct {
	employees     employee.Repository
	scheduleRepo  schedule.Repository
	rescheduler   Rescheduler
	client        domainTelegram.Client
	logger        *logrus.Entry
	reminderDelay int
}

func NewAdminService(
	er employee.Repository,
	scr schedule.Repository,
	rescheduler Rescheduler,
	tc domainTelegram.Client,
	logger *logrus.Entry,
	reminderDelay int,
) *AdminService {
	return &AdminService{
		employees:     er,
		scheduleRepo:  scr,
		rescheduler:   rescheduler,
		client:        tc,
		logger:        logger,
		reminderDelay: reminderDelay,
	}
}

// EnsureAdmin verifies the performing user carries the admin flag. Called at
// the start of every admin-only handler; returns ErrNotAdmin as a refusal.
func (s *AdminService) EnsureAdmin(ctx context.Context, telegramID int64) error {
	e, err := s.employees.GetByTelegramID(ctx, telegramID)
	if err != nil || !e.IsAdmin {
		return ErrNotAdmin
	}
	return nil
}

// AddAdmin grants the admin flag to a registered employee. Granting an
// already held flag is a no-op.
func (s *AdminService) AddAdmin(ctx context.Context, targetID int64) error {
	if _, err := s.employees.GetByTelegramID(ctx, targetID); err != nil {
		return err
	}
	if err := s.employees.SetAdmin(ctx, targetID, true); err != nil {
		return fmt.Errorf("failed to grant admin flag: %w", err)
	}
	s.logger.WithField("telegram_id", targetID).Info("Admin flag granted")
	return nil
}

// RemoveAdmin revokes the admin flag from an administrator.
func (s *AdminService) RemoveAdmin(ctx context.Context, targetID int64) error {
	target, err := s.employees.GetByTelegramID(ctx, targetID)
	if err != nil {
		return err
	}
	if !target.IsAdmin {
		return ErrTargetNotAdmin
	}
	if err := s.employees.SetAdmin(ctx, targetID, false); err != nil {
		return fmt.Errorf("failed to revoke admin flag: %w", err)
	}
	s.logger.WithField("telegram_id", targetID).Info("Admin flag revoked")
	return nil
}

// Broadcast fans the text out to every registered employee. Delivery
// failures are logged per recipient and never abort the loop. Returns the
// delivered and failed counts.
func (s *AdminService) Broadcast(ctx context.Context, text string) (delivered, failed int, err error) {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list employees for broadcast: %w", err)
	}

	message := fmt.Sprintf("Сообщение от администратора:\n\n%s", text)
	for _, e := range employees {
		sendErr := s.client.SendMessage(e.TelegramID, message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
		if sendErr != nil {
			failed++
			s.logger.WithError(sendErr).WithField("telegram_id", e.TelegramID).Error("Failed to deliver broadcast")
			continue
		}
		delivered++
	}
	s.logger.WithFields(logrus.Fields{"delivered": delivered, "failed": failed}).Info("Broadcast completed")
	return delivered, failed, nil
}

// ChangeSchedule derives all four trigger times from the new base, persists
// them as a unit and swaps the live cron entries. The four triggers are
// never updated independently.
func (s *AdminService) ChangeSchedule(ctx context.Context, base schedule.TimeOfDay) ([]schedule.Trigger, error) {
	cfg := schedule.Config{Base: base, ReminderDelay: s.reminderDelay}
	triggers := cfg.Triggers()

	if err := s.scheduleRepo.Save(ctx, triggers); err != nil {
		return nil, fmt.Errorf("failed to persist schedule: %w", err)
	}
	if err := s.rescheduler.Reschedule(triggers); err != nil {
		return nil, fmt.Errorf("failed to apply schedule: %w", err)
	}

	s.logger.WithField("base", base.String()).Info("Schedule changed")
	return triggers, nil
}
