package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"healthlog/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// WakeupHandler is invoked when a registered wake-up fires. payload is the
// reminder ID the wake-up was registered with.
type WakeupHandler func(ctx context.Context, payload uint)

// onceSchedule fires exactly once at a fixed instant.
type onceSchedule struct {
	at time.Time
}

// Next returns the instant while it is still ahead of t. A zero time tells
// cron the entry will never run again.
func (s onceSchedule) Next(t time.Time) time.Time {
	if s.at.After(t) {
		return s.at
	}
	return time.Time{}
}

// Scheduler is the alarm collaborator: one pending wake-up per id, backed by cron.
type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	mu      sync.Mutex // To protect access to job management
	entries map[string]cron.EntryID
	handler WakeupHandler
}

// NewScheduler creates and starts the cron scheduler.
func NewScheduler(log logger.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds()) // Use seconds precision
	c.Start()
	log.Info("Cron scheduler started.")
	return &Scheduler{
		cron:    c,
		log:     log,
		entries: make(map[string]cron.EntryID),
	}
}

// SetWakeupHandler sets the function called for fired wake-ups.
// This is called during dependency injection setup to break the cycle between
// the scheduler and the reminder receiver.
func (s *Scheduler) SetWakeupHandler(handler WakeupHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
}

// RegisterWakeup arranges for the handler to run at the given instant with payload.
// Any wake-up already pending under id is replaced.
func (s *Scheduler) RegisterWakeup(id string, at time.Time, payload uint) error {
	if !at.After(time.Now()) {
		return fmt.Errorf("wake-up %s at %v is not in the future", id, at)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[id]; ok {
		s.cron.Remove(old)
		delete(s.entries, id)
	}

	var entryID cron.EntryID
	job := cron.FuncJob(func() {
		s.fire(id, &entryID, payload)
	})
	entryID = s.cron.Schedule(onceSchedule{at: at}, job)
	s.entries[id] = entryID
	s.log.Info(fmt.Sprintf("Registered wake-up %s at %v (Job ID: %d)", id, at, entryID))
	return nil
}

func (s *Scheduler) fire(id string, ref *cron.EntryID, payload uint) {
	s.mu.Lock()
	entryID := *ref
	// Only the entry currently registered under id may clear it; a replacement
	// registered after the job started must survive.
	if current, ok := s.entries[id]; ok && current == entryID {
		delete(s.entries, id)
	}
	s.cron.Remove(entryID)
	handler := s.handler
	s.mu.Unlock()

	if handler == nil {
		s.log.Warn(fmt.Sprintf("Wake-up %s fired but no handler is set", id))
		return
	}
	s.log.Info(fmt.Sprintf("Executing wake-up %s", id))
	// Use background context for cron job execution
	handler(context.Background(), payload)
}

// CancelWakeup removes the wake-up pending under id. No-op if there is none.
func (s *Scheduler) CancelWakeup(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.entries[id]
	if !ok {
		s.log.Debug(fmt.Sprintf("No pending wake-up %s to cancel.", id))
		return
	}
	s.cron.Remove(entryID)
	delete(s.entries, id)
	s.log.Info(fmt.Sprintf("Cancelled wake-up %s (Job ID: %d)", id, entryID))
}

// NextWakeup returns when the wake-up pending under id will fire.
func (s *Scheduler) NextWakeup(id string) (time.Time, bool) {
	s.mu.Lock()
	entryID, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	entry := s.cron.Entry(entryID)
	if !entry.Valid() {
		return time.Time{}, false
	}
	if sched, ok := entry.Schedule.(onceSchedule); ok {
		return sched.at, true
	}
	return entry.Next, true
}

// Pending returns the number of registered wake-ups.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop stops the cron scheduler and waits for running jobs to complete.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Cron scheduler stopped.")
}

// GetEntries returns the list of scheduled entries. Useful for debugging.
func (s *Scheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
