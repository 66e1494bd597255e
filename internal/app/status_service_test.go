package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/employee"
	"github.com/Faton6/Worker-checker/internal/domain/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusService(employees *memEmployeeRepo, statuses *memStatusRepo, client *fakeClient) *StatusService {
	return NewStatusService(employees, statuses, client, testLogger(), time.UTC)
}

func TestEscalateUnanswered(t *testing.T) {
	ctx := context.Background()
	admin := &employee.Employee{TelegramID: 1, FullName: "Анна Иванова", IsAdmin: true}
	answered := &employee.Employee{TelegramID: 2, FullName: "Борис Петров"}
	silent := &employee.Employee{TelegramID: 3, FullName: "Виктор Сидоров"}

	employees := newMemEmployeeRepo(admin, answered, silent)
	statuses := newMemStatusRepo()
	client := newFakeClient()
	svc := newStatusService(employees, statuses, client)
	today := svc.Today()

	require.NoError(t, statuses.Upsert(ctx, admin.TelegramID, today, status.KindPresent, ""))
	require.NoError(t, statuses.Upsert(ctx, answered.TelegramID, today, status.KindRemote, ""))

	require.NoError(t, svc.EscalateUnanswered(ctx))

	rec, err := statuses.Get(ctx, silent.TelegramID, today)
	require.NoError(t, err)
	assert.Equal(t, status.KindUnknown, rec.Kind)
	assert.False(t, rec.Description.Valid)

	// The silent employee and the admin each received exactly one notification.
	require.Len(t, client.sentTo(silent.TelegramID), 1)
	adminMessages := client.sentTo(admin.TelegramID)
	require.Len(t, adminMessages, 1)
	assert.Contains(t, adminMessages[0].text, "Виктор Сидоров")

	// Employees with a record are left alone.
	assert.Empty(t, client.sentTo(answered.TelegramID))
}

func TestEscalateUnansweredIsIdempotent(t *testing.T) {
	ctx := context.Background()
	admin := &employee.Employee{TelegramID: 1, FullName: "Анна Иванова", IsAdmin: true}
	silent := &employee.Employee{TelegramID: 2, FullName: "Борис Петров"}

	employees := newMemEmployeeRepo(admin, silent)
	statuses := newMemStatusRepo()
	client := newFakeClient()
	svc := newStatusService(employees, statuses, client)
	require.NoError(t, statuses.Upsert(ctx, admin.TelegramID, svc.Today(), status.KindPresent, ""))

	require.NoError(t, svc.EscalateUnanswered(ctx))
	firstRunSent := len(client.sent)

	// The second run sees the synthesized record and does nothing.
	require.NoError(t, svc.EscalateUnanswered(ctx))
	assert.Equal(t, firstRunSent, len(client.sent))

	records, err := statuses.ListByDate(ctx, svc.Today())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSetStatusOverwritesSameDay(t *testing.T) {
	ctx := context.Background()
	e := &employee.Employee{TelegramID: 7, FullName: "Анна Иванова"}
	statuses := newMemStatusRepo()
	svc := newStatusService(newMemEmployeeRepo(e), statuses, newFakeClient())

	require.NoError(t, svc.SetStatus(ctx, e.TelegramID, status.KindPresent, ""))
	require.NoError(t, svc.SetStatus(ctx, e.TelegramID, status.KindRemote, ""))

	records, err := statuses.ListByDate(ctx, svc.Today())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, status.KindRemote, records[0].Kind)
}

func TestSetStatusOtherNotifiesAdmins(t *testing.T) {
	ctx := context.Background()
	admin := &employee.Employee{TelegramID: 1, FullName: "Анна Иванова", IsAdmin: true}
	e := &employee.Employee{TelegramID: 2, FullName: "Борис Петров"}

	statuses := newMemStatusRepo()
	client := newFakeClient()
	svc := newStatusService(newMemEmployeeRepo(admin, e), statuses, client)

	require.NoError(t, svc.SetStatus(ctx, e.TelegramID, status.KindOther, "dentist"))

	rec, err := statuses.Get(ctx, e.TelegramID, svc.Today())
	require.NoError(t, err)
	assert.Equal(t, status.KindOther, rec.Kind)
	assert.Equal(t, "dentist", rec.Description.String)

	adminMessages := client.sentTo(admin.TelegramID)
	require.Len(t, adminMessages, 1)
	assert.Contains(t, adminMessages[0].text, "dentist")
	assert.Contains(t, adminMessages[0].text, "Борис Петров")
}

func TestSetStatusDropsDescriptionForNonOther(t *testing.T) {
	ctx := context.Background()
	e := &employee.Employee{TelegramID: 5, FullName: "Анна Иванова"}
	statuses := newMemStatusRepo()
	svc := newStatusService(newMemEmployeeRepo(e), statuses, newFakeClient())

	require.NoError(t, svc.SetStatus(ctx, e.TelegramID, status.KindPresent, "ignored"))

	rec, err := statuses.Get(ctx, e.TelegramID, svc.Today())
	require.NoError(t, err)
	assert.False(t, rec.Description.Valid)
}

func TestRemindUnanswered(t *testing.T) {
	ctx := context.Background()
	answered := &employee.Employee{TelegramID: 1, FullName: "Анна Иванова"}
	silent := &employee.Employee{TelegramID: 2, FullName: "Борис Петров"}

	statuses := newMemStatusRepo()
	client := newFakeClient()
	svc := newStatusService(newMemEmployeeRepo(answered, silent), statuses, client)
	require.NoError(t, statuses.Upsert(ctx, answered.TelegramID, svc.Today(), status.KindPresent, ""))

	require.NoError(t, svc.RemindUnanswered(ctx))

	assert.Empty(t, client.sentTo(answered.TelegramID))
	reminders := client.sentTo(silent.TelegramID)
	require.Len(t, reminders, 1)
	assert.True(t, strings.Contains(reminders[0].text, "не указали"))
}

func TestRequestAllIsolatesDeliveryFailures(t *testing.T) {
	ctx := context.Background()
	a := &employee.Employee{TelegramID: 1, FullName: "Анна Иванова"}
	b := &employee.Employee{TelegramID: 2, FullName: "Борис Петров"}
	c := &employee.Employee{TelegramID: 3, FullName: "Виктор Сидоров"}

	client := newFakeClient()
	client.failFor[b.TelegramID] = assert.AnError
	svc := newStatusService(newMemEmployeeRepo(a, b, c), newMemStatusRepo(), client)

	require.NoError(t, svc.RequestAll(ctx))

	assert.Len(t, client.sentTo(a.TelegramID), 1)
	assert.Len(t, client.sentTo(c.TelegramID), 1)
}
