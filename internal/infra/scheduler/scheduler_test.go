package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/schedule"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPipeline struct{}

func (stubPipeline) RequestAll(context.Context) error         { return nil }
func (stubPipeline) RemindUnanswered(context.Context) error   { return nil }
func (stubPipeline) EscalateUnanswered(context.Context) error { return nil }

type stubReports struct{}

func (stubReports) SendDailyReportToAdmins(context.Context) error { return nil }

func newTestScheduler() *StatusScheduler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewStatusScheduler(stubPipeline{}, stubReports{}, logrus.NewEntry(logger), time.UTC)
}

func TestRescheduleRegistersAllJobs(t *testing.T) {
	s := newTestScheduler()
	cfg := schedule.Config{Base: schedule.TimeOfDay{Hour: 8, Minute: 30}, ReminderDelay: 10}

	require.NoError(t, s.Reschedule(cfg.Triggers()))

	assert.Len(t, s.entries, 4)
	assert.Len(t, s.cronEngine.Entries(), 4)
}

func TestRescheduleReplacesPreviousSet(t *testing.T) {
	s := newTestScheduler()
	first := schedule.Config{Base: schedule.TimeOfDay{Hour: 8, Minute: 30}, ReminderDelay: 10}
	second := schedule.Config{Base: schedule.TimeOfDay{Hour: 9, Minute: 0}, ReminderDelay: 15}

	require.NoError(t, s.Reschedule(first.Triggers()))
	require.NoError(t, s.Reschedule(second.Triggers()))

	// The old four entries are gone, not stacked under the new ones.
	assert.Len(t, s.cronEngine.Entries(), 4)
}

func TestRescheduleUnknownJobRollsBack(t *testing.T) {
	s := newTestScheduler()
	cfg := schedule.Config{Base: schedule.TimeOfDay{Hour: 8, Minute: 30}, ReminderDelay: 10}
	require.NoError(t, s.Reschedule(cfg.Triggers()))

	bad := []schedule.Trigger{
		{Job: schedule.JobRequest, At: schedule.TimeOfDay{Hour: 10}},
		{Job: "nonsense", At: schedule.TimeOfDay{Hour: 10, Minute: 5}},
	}
	err := s.Reschedule(bad)

	require.Error(t, err)
	// The previously registered set survives a failed swap intact.
	assert.Len(t, s.cronEngine.Entries(), 4)
	assert.Len(t, s.entries, 4)
}
