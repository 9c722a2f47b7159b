// internal/app/snapshot.go
package app

import (
	"fmt"
	"time"
)

// Snapshot is a point-in-time copy of the watcher's run state, safe to hand
// to other goroutines (owner commands, digest job).
type Snapshot struct {
	StartedAt     time.Time
	LastPollAt    time.Time
	Polls         int
	Notifications int
	CurrentStatus string
	LastError     string
}

// Snapshot returns a copy of the current run state.
func (w *StatusWatcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snap
}

// observe folds the outcome of one iteration into the snapshot.
func (w *StatusWatcher) observe(pollErr error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.snap.Polls++
	w.snap.LastPollAt = time.Now()
	w.snap.CurrentStatus = w.lastStatus
	if pollErr != nil {
		w.snap.LastError = pollErr.Error()
	} else {
		w.snap.LastError = ""
	}
}

func (w *StatusWatcher) recordNotification() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snap.Notifications++
}

// FormatSnapshot renders a snapshot as one chat-friendly line.
func FormatSnapshot(s Snapshot) string {
	status := s.CurrentStatus
	if status == "" {
		status = "not seen yet"
	}
	lastPoll := "never"
	if !s.LastPollAt.IsZero() {
		lastPoll = s.LastPollAt.Format("2006-01-02 15:04")
	}
	lastError := s.LastError
	if lastError == "" {
		lastError = "none"
	}

	return fmt.Sprintf(
		"Watching since %s. Last poll: %s. Polls: %d, notifications sent: %d. Current review status: %s. Last error: %s.",
		s.StartedAt.Format("2006-01-02 15:04"), lastPoll, s.Polls, s.Notifications, status, lastError,
	)
}
