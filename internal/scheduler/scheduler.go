// Package scheduler runs delayed, cancellable actions keyed by tab ID.
//
// The UI defers a few state changes (settling a tab after its confirmation
// animation, dismissing a toast). Each deferred action is keyed by the tab it
// touches so deleting the tab can cancel it before it fires.
package scheduler

import (
	"log/slog"
	"sync"
	"time"
)

type task struct {
	timer *time.Timer
	seq   uint64
}

// Scheduler holds at most one pending task per key.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]task
	seq     uint64
	stopped bool
	logger  *slog.Logger
}

// New creates an empty Scheduler. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		tasks:  make(map[string]task),
		logger: logger,
	}
}

// Schedule runs fn after delay unless the key is cancelled first.
// A task already pending under key is replaced.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.logger.Debug("Scheduler stopped, dropping task", "key", key)
		return
	}
	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
	}

	s.seq++
	seq := s.seq
	// The callback blocks in claim until we release mu, so it always sees this entry.
	timer := time.AfterFunc(delay, func() {
		if !s.claim(key, seq) {
			return
		}
		fn()
	})
	s.tasks[key] = task{timer: timer, seq: seq}
}

// claim removes the task if it is still the current one for key.
// A replaced or cancelled task loses the claim and must not run.
func (s *Scheduler) claim(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok || t.seq != seq {
		return false
	}
	delete(s.tasks, key)
	return true
}

// Cancel drops the pending task for key. Reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	s.logger.Debug("Cancelled pending task", "key", key)
	return true
}

// Pending reports whether a task is waiting under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Stop cancels every pending task and refuses new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
	s.stopped = true
}
