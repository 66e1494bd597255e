package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	idb "github.com/Faton6/Worker-checker/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for registration handling
var ErrAlreadyRegistered = errors.New("employee is already registered")
var ErrEmptyName = errors.New("employee name is empty")

// EmployeeService handles self-service registration and deletion.
type EmployeeService struct {
	employees employee.Repository
	logger    *logrus.Entry
}

func NewEmployeeService(er employee.Repository, logger *logrus.Entry) *EmployeeService {
	return &EmployeeService{employees: er, logger: logger}
}

// Get returns the employee registered under the given Telegram ID, or
// database.ErrEmployeeNotFound.
func (s *EmployeeService) Get(ctx context.Context, telegramID int64) (*employee.Employee, error) {
	return s.employees.GetByTelegramID(ctx, telegramID)
}

// List returns the full roster.
func (s *EmployeeService) List(ctx context.Context) ([]*employee.Employee, error) {
	return s.employees.ListAll(ctx)
}

// Register creates a new employee with the admin flag off. Registration for
// an already known Telegram ID is rejected.
func (s *EmployeeService) Register(ctx context.Context, telegramID int64, fullName string) (*employee.Employee, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrEmptyName
	}

	_, err := s.employees.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, idb.ErrEmployeeNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}

	e := &employee.Employee{TelegramID: telegramID, FullName: fullName, IsAdmin: false}
	if err := s.employees.Create(ctx, e); err != nil {
		if errors.Is(err, idb.ErrDuplicateTelegramID) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"telegram_id": telegramID, "full_name": fullName}).Info("Employee registered")
	return e, nil
}

// Delete removes the employee's registration together with all of their
// status records.
func (s *EmployeeService) Delete(ctx context.Context, telegramID int64) error {
	if err := s.employees.Delete(ctx, telegramID); err != nil {
		return err
	}
	s.logger.WithField("telegram_id", telegramID).Info("Employee registration deleted")
	return nil
}
