// internal/app/watcher.go
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

const (
	// RetryPeriod is the fixed pause between poll iterations. No backoff,
	// no jitter: every iteration retries at the same cadence.
	RetryPeriod = 10 * time.Minute

	// LookbackWindow is how far back the request window opens. The cursor
	// is anchored to process start and never advances, so every poll
	// re-requests the same wide window and only the most recent record is
	// inspected.
	LookbackWindow = 30 * 24 * time.Hour
)

// StatusFetcher requests every homework status update since fromDate (unix
// seconds) and returns the decoded payload verbatim.
type StatusFetcher interface {
	Fetch(ctx context.Context, fromDate int64) (any, error)
}

// Notifier delivers one text message to the configured destination. A
// failed delivery comes back as *telegram.SendError.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// StatusWatcher polls the homework API on a fixed cadence, announces review
// status transitions and reports failures, deduplicating repeats. All loop
// state lives here and is touched by the loop goroutine only; Snapshot is
// the read path for everyone else.
type StatusWatcher struct {
	fetcher  StatusFetcher
	notifier Notifier
	logger   *logrus.Entry

	retryPeriod time.Duration
	fromDate    int64 // unix seconds, fixed at construction

	lastStatus  string
	lastErrText string

	mu   sync.Mutex
	snap Snapshot
}

func NewStatusWatcher(fetcher StatusFetcher, notifier Notifier, logger *logrus.Entry) *StatusWatcher {
	now := time.Now()
	return &StatusWatcher{
		fetcher:     fetcher,
		notifier:    notifier,
		logger:      logger,
		retryPeriod: RetryPeriod,
		fromDate:    now.Add(-LookbackWindow).Unix(),
		snap:        Snapshot{StartedAt: now},
	}
}

// Run executes poll iterations until ctx is cancelled, sleeping the fixed
// retry period after every iteration regardless of its outcome.
func (w *StatusWatcher) Run(ctx context.Context) error {
	w.logger.WithFields(logrus.Fields{
		"retry_period": w.retryPeriod.String(),
		"from_date":    w.fromDate,
	}).Info("Status watcher started")

	for {
		if err := w.RunOnce(ctx); err != nil {
			// A broken notification channel cannot announce itself through
			// that same channel, so the failure ends up in the log only.
			w.logger.WithError(err).Error("Notification delivery failed")
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Status watcher stopped")
			return ctx.Err()
		case <-time.After(w.retryPeriod):
		}
	}
}

// RunOnce performs exactly one poll iteration. The returned error is always
// a delivery failure, either of a change notification or of a failure
// report; every other failure is reported or deduplicated inside.
func (w *StatusWatcher) RunOnce(ctx context.Context) error {
	pollErr := w.poll(ctx)
	w.observe(pollErr)

	if pollErr == nil {
		// A clean iteration resets error dedup: the next failure is news
		// again even when its text matches an older one.
		w.lastErrText = ""
		return nil
	}

	// Delivery failures escape the iteration untouched instead of feeding
	// the failure-report path.
	var sendErr *domainTelegram.SendError
	if errors.As(pollErr, &sendErr) {
		return pollErr
	}

	if ctx.Err() != nil {
		w.logger.WithError(pollErr).Debug("Skipping failure report during shutdown")
		return nil
	}
	return w.reportFailure(ctx, pollErr)
}

// poll runs fetch, validate, compare and notify for one iteration.
func (w *StatusWatcher) poll(ctx context.Context) error {
	response, err := w.fetcher.Fetch(ctx, w.fromDate)
	if err != nil {
		return err
	}

	record, status, err := homework.CheckResponse(response)
	if errors.Is(err, homework.ErrNoUpdates) {
		w.logger.Debug("No homework updates in the requested window")
		return nil
	}
	if err != nil {
		return err
	}

	if status == w.lastStatus {
		w.logger.WithField("status", status).Debug("Review status unchanged")
		return nil
	}

	// The transition is recorded before the notification goes out; a failed
	// send is never replayed as a change.
	w.lastStatus = status

	text, err := homework.ParseStatus(record)
	if err != nil {
		return err
	}
	if err := w.notifier.Send(ctx, text); err != nil {
		return err
	}

	w.recordNotification()
	w.logger.WithField("status", status).Info("Review status change delivered")
	return nil
}

// reportFailure announces a failed iteration unless the previous iteration
// already reported an error with the same text.
func (w *StatusWatcher) reportFailure(ctx context.Context, cause error) error {
	if cause.Error() == w.lastErrText {
		w.logger.WithError(cause).Debug("Suppressed duplicate failure report")
		return nil
	}

	// Recorded before the send: a recurring error is reported once even
	// when its own report never made it out.
	w.lastErrText = cause.Error()
	w.logger.WithError(cause).Error("Poll iteration failed")

	text := fmt.Sprintf("Program failure detected: %v", cause)
	if err := w.notifier.Send(ctx, text); err != nil {
		return err
	}

	w.recordNotification()
	return nil
}
