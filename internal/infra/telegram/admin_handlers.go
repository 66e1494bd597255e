package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Faton6/Worker-checker/internal/app"
	"github.com/Faton6/Worker-checker/internal/domain/schedule"
	idb "github.com/Faton6/Worker-checker/internal/infra/database"

	"gopkg.in/telebot.v3"
)

const analyticsPeriodDays = 30

func (h *Handlers) handleAdmin(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}

	markup := &telebot.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("Получить статистику", "admin", "stats"),
			markup.Data("Проверить статус сотрудников", "admin", "check"),
		),
		markup.Row(
			markup.Data("Добавить администратора", "admin", "add_admin"),
			markup.Data("Удалить администратора", "admin", "remove_admin"),
		),
		markup.Row(
			markup.Data("Отправить сообщение всем", "admin", "broadcast"),
			markup.Data("Изменить расписание", "admin", "schedule"),
		),
		markup.Row(
			markup.Data("Получить отчет за дату", "admin", "report_date"),
			markup.Data("Получить аналитические данные", "admin", "analytics"),
		),
	)
	return c.Send("Выберите действие:", markup)
}

func (h *Handlers) handleAdminCallback(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}
	senderID := c.Sender().ID
	action := c.Data()

	h.logger.WithField("sender_id", senderID).WithField("action", action).Info("Admin action")

	switch action {
	case "stats":
		markup := &telebot.ReplyMarkup{}
		markup.Inline(
			markup.Row(markup.Data("Получить статистику за сегодня", "admin", "today_report")),
			markup.Row(markup.Data("Получить xlsx отчет со статистикой", "admin", "xlsx_report")),
		)
		if err := c.Send("Выберите опцию:", markup); err != nil {
			return err
		}

	case "today_report":
		if err := h.reports.SendSummaryTo(h.ctx, senderID, h.reports.Today()); err != nil {
			h.logger.WithError(err).Error("Failed to send daily summary")
			return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
		}

	case "xlsx_report":
		if err := h.reports.SendSpreadsheetTo(h.ctx, senderID, h.reports.Today()); err != nil {
			h.logger.WithError(err).Error("Failed to send xlsx report")
			return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
		}

	case "check":
		markup := &telebot.ReplyMarkup{}
		markup.Inline(
			markup.Row(markup.Data("Проверить статус всех сотрудников", "admin", "check_all")),
			markup.Row(markup.Data("Проверить статус конкретного сотрудника", "admin", "check_one")),
		)
		if err := c.Send("Выберите опцию:", markup); err != nil {
			return err
		}

	case "check_all":
		if err := h.statuses.RequestAll(h.ctx); err != nil {
			h.logger.WithError(err).Error("Failed to request all statuses")
			return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
		}
		if err := c.Send("Запрос статусов всех сотрудников отправлен."); err != nil {
			return err
		}

	case "check_one":
		if err := h.sendEmployeePicker(c); err != nil {
			return err
		}

	case "add_admin":
		h.flows.Begin(senderID, FlowAddAdmin)
		if err := c.Send("Введите Telegram ID пользователя, которого хотите сделать администратором."); err != nil {
			return err
		}

	case "remove_admin":
		h.flows.Begin(senderID, FlowRemoveAdmin)
		if err := c.Send("Введите Telegram ID администратора, которого хотите удалить."); err != nil {
			return err
		}

	case "broadcast":
		h.flows.Begin(senderID, FlowBroadcast)
		if err := c.Send("Введите сообщение, которое вы хотите отправить всем сотрудникам."); err != nil {
			return err
		}

	case "schedule":
		h.flows.Begin(senderID, FlowScheduleChange)
		if err := c.Send("Введите новое время отправки запросов в формате ЧЧ:ММ (24-часовой формат)."); err != nil {
			return err
		}

	case "report_date":
		h.flows.Begin(senderID, FlowReportDate)
		if err := c.Send("Введите дату в формате ГГГГ-ММ-ДД для получения отчета."); err != nil {
			return err
		}

	case "analytics":
		end := h.reports.Today()
		start := end.AddDate(0, 0, -analyticsPeriodDays)
		if err := h.reports.SendAnalyticsTo(h.ctx, senderID, start, end); err != nil {
			h.logger.WithError(err).Error("Failed to send analytics")
			return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
		}

	default:
		h.logger.WithField("action", action).Warn("Unknown admin action")
		return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
	}

	return c.Respond()
}

func (h *Handlers) sendEmployeePicker(c telebot.Context) error {
	employees, err := h.employees.List(h.ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list employees for picker")
		return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
	}
	if len(employees) == 0 {
		return c.Send("Нет зарегистрированных сотрудников.")
	}

	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(employees))
	for _, e := range employees {
		btn := markup.Data(e.FullName, "admin_emp", strconv.FormatInt(e.TelegramID, 10))
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)
	return c.Send("Выберите сотрудника:", markup)
}

func (h *Handlers) handleEmployeeSelect(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}

	targetID, err := strconv.ParseInt(c.Data(), 10, 64)
	if err != nil {
		h.logger.WithField("payload", c.Data()).Warn("Invalid employee picker payload")
		return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
	}

	target, err := h.employees.Get(h.ctx, targetID)
	if err != nil {
		if errors.Is(err, idb.ErrEmployeeNotFound) {
			if err := c.Send("Сотрудник не найден."); err != nil {
				return err
			}
			return c.Respond()
		}
		h.logger.WithError(err).Error("Failed to look up selected employee")
		return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
	}

	if err := h.statuses.SendStatusRequest(targetID); err != nil {
		h.logger.WithError(err).WithField("telegram_id", targetID).Error("Failed to send status request")
		return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
	}
	if err := c.Send(fmt.Sprintf("Запрос статуса отправлен сотруднику %s.", target.FullName)); err != nil {
		return err
	}
	return c.Respond()
}

func (h *Handlers) flowAddAdmin(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}

	targetID, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil {
		return c.Send("Некорректный ID. Попробуйте еще раз.")
	}

	if err := h.admin.AddAdmin(h.ctx, targetID); err != nil {
		if errors.Is(err, idb.ErrEmployeeNotFound) {
			return c.Send("Пользователь с этим ID не зарегистрирован.")
		}
		h.logger.WithError(err).WithField("target_id", targetID).Error("Failed to add admin")
		return c.Send("Произошла ошибка. Пожалуйста, попробуйте позже.")
	}
	return c.Send("Пользователь успешно назначен администратором.")
}

func (h *Handlers) flowRemoveAdmin(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}

	targetID, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil {
		return c.Send("Некорректный ID. Попробуйте еще раз.")
	}

	if err := h.admin.RemoveAdmin(h.ctx, targetID); err != nil {
		switch {
		case errors.Is(err, idb.ErrEmployeeNotFound):
			return c.Send("Пользователь с этим ID не зарегистрирован.")
		case errors.Is(err, app.ErrTargetNotAdmin):
			return c.Send("Этот пользователь не является администратором.")
		default:
			h.logger.WithError(err).WithField("target_id", targetID).Error("Failed to remove admin")
			return c.Send("Произошла ошибка. Пожалуйста, попробуйте позже.")
		}
	}
	return c.Send("Администратор успешно удален.")
}

func (h *Handlers) flowBroadcast(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}

	if _, _, err := h.admin.Broadcast(h.ctx, strings.TrimSpace(c.Text())); err != nil {
		h.logger.WithError(err).Error("Broadcast failed")
		return c.Send("Произошла ошибка при отправке сообщения.")
	}
	return c.Send("Сообщение отправлено всем сотрудникам.")
}

func (h *Handlers) flowScheduleChange(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}

	base, err := schedule.ParseTimeOfDay(c.Text())
	if err != nil {
		return c.Send("Некорректный формат времени. Пожалуйста, введите в формате ЧЧ:ММ.")
	}

	if _, err := h.admin.ChangeSchedule(h.ctx, base); err != nil {
		h.logger.WithError(err).Error("Schedule change failed")
		return c.Send("Произошла ошибка при изменении расписания.")
	}
	return c.Send(fmt.Sprintf("Время отправки запросов изменено на %s.", base))
}

func (h *Handlers) flowReportDate(c telebot.Context) error {
	if refused, err := h.refuseNonAdmin(c); refused {
		return err
	}

	reportDate, err := time.Parse("2006-01-02", strings.TrimSpace(c.Text()))
	if err != nil {
		return c.Send("Некорректный формат даты. Пожалуйста, введите в формате ГГГГ-ММ-ДД.")
	}

	if err := h.reports.SendSpreadsheetTo(h.ctx, c.Sender().ID, reportDate); err != nil {
		h.logger.WithError(err).Error("Failed to send dated report")
		return c.Send("Произошла ошибка при формировании отчета.")
	}
	return nil
}

// refuseNonAdmin reports whether the sender lacks the admin flag, replying
// with a refusal when so; admin-only handlers call it first.
func (h *Handlers) refuseNonAdmin(c telebot.Context) (bool, error) {
	if err := h.admin.EnsureAdmin(h.ctx, c.Sender().ID); err != nil {
		h.logger.WithField("sender_id", c.Sender().ID).Warn("Unauthorized admin action attempt")
		return true, c.Send("У вас нет прав администратора.")
	}
	return false, nil
}
