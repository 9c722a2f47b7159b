package scheduler

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StateSource exposes the watcher's run state to the digest job.
type StateSource interface {
	Snapshot() app.Snapshot
}

// DigestScheduler periodically sends a one-line summary of the watcher's run
// state to the chat. It never replaces change notifications; it only
// confirms the watcher is alive.
type DigestScheduler struct {
	cronEngine *cron.Cron
	state      StateSource
	notifier   app.Notifier
	logger     *logrus.Entry
	cronSpec   string
}

func NewDigestScheduler(state StateSource, notifier app.Notifier, logger *logrus.Entry, cronSpec string) *DigestScheduler {
	return &DigestScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		state:      state,
		notifier:   notifier,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

// Start registers the digest job and launches the cron engine.
func (s *DigestScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.sendDigest); err != nil {
		return fmt.Errorf("invalid digest cron spec %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Digest scheduler started")
	return nil
}

func (s *DigestScheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute) // Context for the job
	defer cancel()

	text := "Daily watch digest. " + app.FormatSnapshot(s.state.Snapshot())
	if err := s.notifier.Send(ctx, text); err != nil {
		s.logger.WithError(err).Error("Failed to deliver digest")
		return
	}
	s.logger.Info("Digest delivered")
}

// Stop shuts the cron engine down and waits for a running job to finish.
func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Digest scheduler gracefully stopped")
}
