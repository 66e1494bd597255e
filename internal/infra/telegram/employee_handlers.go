package telegram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faton6/Worker-checker/internal/app"
	"github.com/Faton6/Worker-checker/internal/domain/status"
	idb "github.com/Faton6/Worker-checker/internal/infra/database"

	"gopkg.in/telebot.v3"
)

// statusByCode maps the inline button payloads to status kinds.
var statusByCode = map[string]status.Kind{
	"1": status.KindPresent,
	"2": status.KindRemote,
	"3": status.KindSickLeave,
	"4": status.KindVacation,
	"5": status.KindOther,
}

func (h *Handlers) handleStart(c telebot.Context) error {
	senderID := c.Sender().ID

	_, err := h.employees.Get(h.ctx, senderID)
	if err == nil {
		return c.Send("Вы уже зарегистрированы.")
	}
	if !errors.Is(err, idb.ErrEmployeeNotFound) {
		h.logger.WithError(err).WithField("sender_id", senderID).Error("Failed to check registration")
		return c.Send("Произошла ошибка. Пожалуйста, попробуйте позже.")
	}

	h.flows.Begin(senderID, FlowRegistration)
	return c.Send("Добро пожаловать! Пожалуйста, введите ваше полное ФИО для регистрации в системе.")
}

func (h *Handlers) flowRegistration(c telebot.Context) error {
	senderID := c.Sender().ID
	fullName := strings.TrimSpace(c.Text())

	e, err := h.employees.Register(h.ctx, senderID, fullName)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyName):
			return c.Send("Имя не может быть пустым. Используйте /start, чтобы попробовать снова.")
		case errors.Is(err, app.ErrAlreadyRegistered):
			return c.Send("Вы уже зарегистрированы.")
		default:
			h.logger.WithError(err).WithField("sender_id", senderID).Error("Failed to register employee")
			return c.Send("Произошла ошибка при регистрации. Пожалуйста, попробуйте позже.")
		}
	}

	return c.Send(fmt.Sprintf(
		"Спасибо, %s! Вы успешно зарегистрированы.\n"+
			"Этот бот поможет вам сообщать о вашем статусе каждый день. "+
			"Используйте команду /help для получения списка доступных команд.", e.FullName))
}

func (h *Handlers) handleHelp(c telebot.Context) error {
	return c.Send(
		"/start - Регистрация в системе\n" +
			"/status - Проверить или изменить статус\n" +
			"/admin - Панель администратора\n" +
			"/help - Показать это сообщение\n" +
			"/delete_me - Удалить свою регистрацию")
}

func (h *Handlers) handleDeleteMe(c telebot.Context) error {
	h.flows.Begin(c.Sender().ID, FlowDeleteConfirm)
	return c.Send("Вы уверены, что хотите удалить свою регистрацию? Это действие необратимо. " +
		"Введите 'Да', чтобы подтвердить, или 'Нет', чтобы отменить.")
}

func (h *Handlers) flowDeleteConfirm(c telebot.Context) error {
	senderID := c.Sender().ID
	if !strings.EqualFold(strings.TrimSpace(c.Text()), "да") {
		return c.Send("Отмена удаления регистрации.")
	}

	if err := h.employees.Delete(h.ctx, senderID); err != nil {
		if errors.Is(err, idb.ErrEmployeeNotFound) {
			return c.Send("Вы не зарегистрированы.")
		}
		h.logger.WithError(err).WithField("sender_id", senderID).Error("Failed to delete registration")
		return c.Send("Произошла ошибка при удалении регистрации. Пожалуйста, попробуйте позже.")
	}
	return c.Send("Ваша регистрация удалена.")
}

func (h *Handlers) handleStatus(c telebot.Context) error {
	senderID := c.Sender().ID

	if _, err := h.employees.Get(h.ctx, senderID); err != nil {
		if errors.Is(err, idb.ErrEmployeeNotFound) {
			return c.Send("Вы не зарегистрированы. Пожалуйста, используйте /start для регистрации.")
		}
		h.logger.WithError(err).WithField("sender_id", senderID).Error("Failed to check registration")
		return c.Send("Произошла ошибка. Пожалуйста, попробуйте позже.")
	}

	if err := h.statuses.SendStatusRequest(senderID); err != nil {
		h.logger.WithError(err).WithField("sender_id", senderID).Error("Failed to send status request")
	}
	return nil
}

// handleStatusCallback commits a button-selected status directly, except the
// "other" kind which always routes through the description flow.
func (h *Handlers) handleStatusCallback(c telebot.Context) error {
	senderID := c.Sender().ID
	kind, ok := statusByCode[c.Data()]
	if !ok {
		h.logger.WithField("payload", c.Data()).Warn("Unknown status callback payload")
		return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
	}

	if kind == status.KindOther {
		h.flows.Begin(senderID, FlowOtherStatus)
		if err := c.Send("Пожалуйста, уточните ваш статус."); err != nil {
			return err
		}
		return c.Respond()
	}

	if err := h.statuses.SetStatus(h.ctx, senderID, kind, ""); err != nil {
		h.logger.WithError(err).WithField("sender_id", senderID).Error("Failed to save status")
		return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
	}

	if err := c.Send(fmt.Sprintf(
		"Ваш статус сохранен: %s. Вы можете изменить его в любое время с помощью команды /status.",
		kind.Label())); err != nil {
		return err
	}
	return c.Respond()
}

func (h *Handlers) flowOtherStatus(c telebot.Context) error {
	senderID := c.Sender().ID
	description := strings.TrimSpace(c.Text())

	if err := h.statuses.SetStatus(h.ctx, senderID, status.KindOther, description); err != nil {
		h.logger.WithError(err).WithField("sender_id", senderID).Error("Failed to save other status")
		return c.Send("Произошла ошибка при сохранении статуса. Пожалуйста, попробуйте позже.")
	}
	return c.Send("Ваш статус сохранен. Вы можете изменить его в любое время с помощью команды /status.")
}
