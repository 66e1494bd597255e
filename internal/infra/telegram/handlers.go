package telegram

import (
	"context"

	"github.com/Faton6/Worker-checker/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// Handlers wires all bot commands, callbacks and the conversation text
// router. Inbound text is interpreted through the FlowStore: a user with an
// active flow has their next message consumed as that flow's answer,
// regardless of content.
type Handlers struct {
	ctx       context.Context
	flows     *FlowStore
	employees *app.EmployeeService
	statuses  *app.StatusService
	admin     *app.AdminService
	reports   *app.ReportService
	logger    *logrus.Entry
}

func NewHandlers(
	ctx context.Context,
	flows *FlowStore,
	employees *app.EmployeeService,
	statuses *app.StatusService,
	admin *app.AdminService,
	reports *app.ReportService,
	logger *logrus.Entry,
) *Handlers {
	return &Handlers{
		ctx:       ctx,
		flows:     flows,
		employees: employees,
		statuses:  statuses,
		admin:     admin,
		reports:   reports,
		logger:    logger,
	}
}

// Register attaches every handler to the bot.
func (h *Handlers) Register(b *telebot.Bot) {
	b.Handle("/start", h.handleStart)
	b.Handle("/help", h.handleHelp)
	b.Handle("/status", h.handleStatus)
	b.Handle("/delete_me", h.handleDeleteMe)
	b.Handle("/admin", h.handleAdmin)

	b.Handle(&telebot.Btn{Unique: "status"}, h.handleStatusCallback)
	b.Handle(&telebot.Btn{Unique: "admin"}, h.handleAdminCallback)
	b.Handle(&telebot.Btn{Unique: "admin_emp"}, h.handleEmployeeSelect)

	b.Handle(telebot.OnText, h.handleText)
}

// handleText routes an inbound message to the sender's active flow. Users
// without an active flow are ignored. The flow is cleared before handling:
// every flow step is terminal.
func (h *Handlers) handleText(c telebot.Context) error {
	senderID := c.Sender().ID
	flow, ok := h.flows.Pop(senderID)
	if !ok {
		return nil
	}

	h.logger.WithFields(logrus.Fields{"sender_id": senderID, "flow": flow}).Debug("Flow input received")

	switch flow {
	case FlowRegistration:
		return h.flowRegistration(c)
	case FlowDeleteConfirm:
		return h.flowDeleteConfirm(c)
	case FlowOtherStatus:
		return h.flowOtherStatus(c)
	case FlowAddAdmin:
		return h.flowAddAdmin(c)
	case FlowRemoveAdmin:
		return h.flowRemoveAdmin(c)
	case FlowBroadcast:
		return h.flowBroadcast(c)
	case FlowScheduleChange:
		return h.flowScheduleChange(c)
	case FlowReportDate:
		return h.flowReportDate(c)
	default:
		h.logger.WithField("flow", flow).Warn("Unknown flow, input dropped")
		return nil
	}
}
