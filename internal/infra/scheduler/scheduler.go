package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Faton6/Worker-checker/internal/domain/schedule"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatusPipeline is the subset of the status service driven by the cron jobs.
type StatusPipeline interface {
	RequestAll(ctx context.Context) error
	RemindUnanswered(ctx context.Context) error
	EscalateUnanswered(ctx context.Context) error
}

// ReportSender delivers the end-of-pipeline admin report.
type ReportSender interface {
	SendDailyReportToAdmins(ctx context.Context) error
}

const jobTimeout = 5 * time.Minute

// StatusScheduler runs the four weekday pipeline jobs on a cron engine and
// supports swapping all four trigger times as a unit.
type StatusScheduler struct {
	cronEngine *cron.Cron
	statuses   StatusPipeline
	reports    ReportSender
	logger     *logrus.Entry

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewStatusScheduler(
	statuses StatusPipeline,
	reports ReportSender,
	logger *logrus.Entry,
	location *time.Location,
) *StatusScheduler {
	return &StatusScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		statuses:   statuses,
		reports:    reports,
		logger:     logger,
		entries:    make(map[string]cron.EntryID),
	}
}

// Start registers the triggers and starts the cron engine.
func (s *StatusScheduler) Start(triggers []schedule.Trigger) error {
	if err := s.Reschedule(triggers); err != nil {
		return err
	}
	s.cronEngine.Start()
	s.logger.Info("Status scheduler started")
	return nil
}

// Reschedule replaces all registered triggers with the given set. New
// entries are added before old ones are removed; on any failure the partial
// set is rolled back, so the four jobs are never left half-updated.
func (s *StatusScheduler) Reschedule(triggers []schedule.Trigger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make(map[string]cron.EntryID, len(triggers))
	for _, t := range triggers {
		job, err := s.jobFor(t.Job)
		if err != nil {
			s.removeAll(added)
			return err
		}
		id, err := s.cronEngine.AddFunc(t.At.CronSpec(), job)
		if err != nil {
			s.removeAll(added)
			return fmt.Errorf("failed to schedule job %s: %w", t.Job, err)
		}
		added[t.Job] = id
	}

	s.removeAll(s.entries)
	s.entries = added

	for _, t := range triggers {
		s.logger.WithFields(logrus.Fields{"job": t.Job, "at": t.At.String()}).Info("Job scheduled")
	}
	return nil
}

// Stop shuts the engine down, waiting for running jobs to finish.
func (s *StatusScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Status scheduler stopped")
}

func (s *StatusScheduler) jobFor(name string) (func(), error) {
	var run func(ctx context.Context) error
	switch name {
	case schedule.JobRequest:
		run = s.statuses.RequestAll
	case schedule.JobReminder:
		run = s.statuses.RemindUnanswered
	case schedule.JobEscalate:
		run = s.statuses.EscalateUnanswered
	case schedule.JobReport:
		run = s.reports.SendDailyReportToAdmins
	default:
		return nil, fmt.Errorf("unknown schedule job: %s", name)
	}

	logger := s.logger.WithField("job", name)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		logger.Info("Job triggered")
		if err := run(ctx); err != nil {
			logger.WithError(err).Error("Job run failed")
		}
	}, nil
}

func (s *StatusScheduler) removeAll(entries map[string]cron.EntryID) {
	for _, id := range entries {
		s.cronEngine.Remove(id)
	}
}
