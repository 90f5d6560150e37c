// Package scheduler runs the periodic sweeps and the outbox relay.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bloodbank-service/internal/config"
	"github.com/YusovID/bloodbank-service/internal/metrics"
	"github.com/YusovID/bloodbank-service/pkg/logger/sl"
	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work. It receives the scheduled instant as now.
type Job func(ctx context.Context, now time.Time) error

type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	timeout time.Duration
	now     func() time.Time
}

func New(log *slog.Logger, timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger{log: log}), cron.SkipIfStillRunning(cronLogger{log: log})),
		),
		log:     log,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Add registers job under name on a cron spec such as "@hourly" or "@every 5s".
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.Run(context.Background(), name, job) }); err != nil {
		return fmt.Errorf("failed to schedule job '%s' on '%s': %w", name, spec, err)
	}

	s.log.Info("job scheduled", slog.String("job", name), slog.String("spec", spec))

	return nil
}

// Run executes job once with the configured timeout and records its duration.
func (s *Scheduler) Run(ctx context.Context, name string, job Job) {
	log := s.log.With(slog.String("job", name))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	err := job(ctx, s.now())

	metrics.JobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		log.Error("job failed", sl.Err(err))
		return
	}

	log.Debug("job finished", slog.Duration("took", time.Since(start)))
}

// Start runs the cron loop until ctx is done, then waits for running jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")

	return nil
}

// Jobs bundles the sweeps wired into the scheduler.
type Jobs struct {
	Restoration Job
	Expiry      Job
	Relay       Job
	Reminder    Job
}

// Register schedules every configured job on the specs from cfg.
func (s *Scheduler) Register(cfg config.Scheduler, jobs Jobs) error {
	for _, j := range []struct {
		name string
		spec string
		job  Job
	}{
		{"restoration_sweep", cfg.RestorationSpec, jobs.Restoration},
		{"expiry_sweep", cfg.ExpirySpec, jobs.Expiry},
		{"outbox_relay", cfg.RelaySpec, jobs.Relay},
		{"appointment_reminders", cfg.ReminderSpec, jobs.Reminder},
	} {
		if j.job == nil || j.spec == "" {
			continue
		}

		if err := s.Add(j.name, j.spec, j.job); err != nil {
			return err
		}
	}

	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, sl.Err(err))...)
}
