package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	"github.com/Faton6/Worker-checker/internal/domain/schedule"
	"github.com/Faton6/Worker-checker/internal/domain/status"
	idb "github.com/Faton6/Worker-checker/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// memEmployeeRepo is an in-memory employee.Repository.
type memEmployeeRepo struct {
	employees map[int64]*employee.Employee
}

func newMemEmployeeRepo(employees ...*employee.Employee) *memEmployeeRepo {
	r := &memEmployeeRepo{employees: make(map[int64]*employee.Employee)}
	for _, e := range employees {
		copied := *e
		r.employees[e.TelegramID] = &copied
	}
	return r
}

func (r *memEmployeeRepo) Create(_ context.Context, e *employee.Employee) error {
	if _, ok := r.employees[e.TelegramID]; ok {
		return idb.ErrDuplicateTelegramID
	}
	copied := *e
	r.employees[e.TelegramID] = &copied
	return nil
}

func (r *memEmployeeRepo) GetByTelegramID(_ context.Context, telegramID int64) (*employee.Employee, error) {
	e, ok := r.employees[telegramID]
	if !ok {
		return nil, idb.ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memEmployeeRepo) Delete(_ context.Context, telegramID int64) error {
	if _, ok := r.employees[telegramID]; !ok {
		return idb.ErrEmployeeNotFound
	}
	delete(r.employees, telegramID)
	return nil
}

func (r *memEmployeeRepo) SetAdmin(_ context.Context, telegramID int64, isAdmin bool) error {
	e, ok := r.employees[telegramID]
	if !ok {
		return idb.ErrEmployeeNotFound
	}
	e.IsAdmin = isAdmin
	return nil
}

func (r *memEmployeeRepo) ListAll(_ context.Context) ([]*employee.Employee, error) {
	return r.list(func(*employee.Employee) bool { return true }), nil
}

func (r *memEmployeeRepo) ListAdmins(_ context.Context) ([]*employee.Employee, error) {
	return r.list(func(e *employee.Employee) bool { return e.IsAdmin }), nil
}

func (r *memEmployeeRepo) list(keep func(*employee.Employee) bool) []*employee.Employee {
	out := make([]*employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if keep(e) {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TelegramID < out[j].TelegramID })
	return out
}

// memStatusRepo is an in-memory status.Repository with upsert semantics.
type memStatusRepo struct {
	records map[string]*status.Record
	nextID  int64
}

func newMemStatusRepo() *memStatusRepo {
	return &memStatusRepo{records: make(map[string]*status.Record)}
}

func statusKey(telegramID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", telegramID, date.Format("2006-01-02"))
}

func (r *memStatusRepo) Upsert(_ context.Context, telegramID int64, date time.Time, kind status.Kind, description string) error {
	key := statusKey(telegramID, date)
	desc := sql.NullString{String: description, Valid: description != ""}
	if existing, ok := r.records[key]; ok {
		existing.Kind = kind
		existing.Description = desc
		return nil
	}
	r.nextID++
	r.records[key] = &status.Record{
		ID:          r.nextID,
		TelegramID:  telegramID,
		Date:        date,
		Kind:        kind,
		Description: desc,
	}
	return nil
}

func (r *memStatusRepo) Get(_ context.Context, telegramID int64, date time.Time) (*status.Record, error) {
	rec, ok := r.records[statusKey(telegramID, date)]
	if !ok {
		return nil, idb.ErrStatusNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *memStatusRepo) ListByDate(_ context.Context, date time.Time) ([]*status.Record, error) {
	return r.list(func(rec *status.Record) bool { return rec.Date.Equal(date) }), nil
}

func (r *memStatusRepo) ListByPeriod(_ context.Context, start, end time.Time) ([]*status.Record, error) {
	return r.list(func(rec *status.Record) bool {
		return !rec.Date.Before(start) && !rec.Date.After(end)
	}), nil
}

func (r *memStatusRepo) list(keep func(*status.Record) bool) []*status.Record {
	out := make([]*status.Record, 0, len(r.records))
	for _, rec := range r.records {
		if keep(rec) {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// memScheduleRepo records schedule saves.
type memScheduleRepo struct {
	triggers []schedule.Trigger
	saves    int
	saveErr  error
}

func (r *memScheduleRepo) Load(context.Context) ([]schedule.Trigger, error) {
	if len(r.triggers) == 0 {
		return nil, idb.ErrScheduleNotFound
	}
	return r.triggers, nil
}

func (r *memScheduleRepo) Save(_ context.Context, triggers []schedule.Trigger) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.triggers = append([]schedule.Trigger(nil), triggers...)
	return nil
}

// fakeRescheduler captures the last applied trigger set.
type fakeRescheduler struct {
	applied [][]schedule.Trigger
}

func (f *fakeRescheduler) Reschedule(triggers []schedule.Trigger) error {
	f.applied = append(f.applied, append([]schedule.Trigger(nil), triggers...))
	return nil
}

// sentMessage is one recorded outbound delivery.
type sentMessage struct {
	chatID   int64
	text     string
	filename string
}

// fakeClient records deliveries and can fail for selected recipients.
type fakeClient struct {
	sent    []sentMessage
	failFor map[int64]error
}

func newFakeClient() *fakeClient {
	return &fakeClient{failFor: make(map[int64]error)}
}

func (c *fakeClient) SendMessage(chatID int64, text string, _ *telebot.SendOptions) error {
	if err, ok := c.failFor[chatID]; ok {
		return err
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (c *fakeClient) SendDocument(chatID int64, _ []byte, filename, _ string) error {
	if err, ok := c.failFor[chatID]; ok {
		return err
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, filename: filename})
	return nil
}

func (c *fakeClient) sentTo(chatID int64) []sentMessage {
	out := make([]sentMessage, 0)
	for _, m := range c.sent {
		if m.chatID == chatID {
			out = append(out, m)
		}
	}
	return out
}
