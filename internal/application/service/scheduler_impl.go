package service

import (
	"context"
	"fmt"
	"time"

	"healthlog/internal/domain/constant"
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"
	"healthlog/internal/pkg/metrics"
)

// WakeupID is the alarm identity of a reminder.
func WakeupID(reminderID uint) string {
	return fmt.Sprintf("reminder-%d", reminderID)
}

// ComputeNextTriggerTime returns the first instant strictly after now that falls
// on an enabled weekday at reminder.Hour:reminder.Minute:00, in now's location.
// Offsets 0 through 7 are tried, so any non-empty mask is satisfied within the
// window. An empty mask falls back to tomorrow at the same time.
func ComputeNextTriggerTime(reminder *entity.MedicationSetReminder, now time.Time) time.Time {
	base := time.Date(now.Year(), now.Month(), now.Day(), reminder.Hour, reminder.Minute, 0, 0, now.Location())
	for offset := 0; offset <= 7; offset++ {
		candidate := base.AddDate(0, 0, offset)
		day := constant.FromWeekday(candidate.Weekday())
		if constant.IsDayEnabled(reminder.DaysOfWeek, day) && candidate.After(now) {
			return candidate
		}
	}
	return base.AddDate(0, 0, 1)
}

type reminderScheduler struct {
	alarm        AlarmClock
	reminderRepo repository.ReminderRepository
	now          func() time.Time
	loc          *time.Location
	log          logger.Logger
	metrics      *metrics.Metrics
}

// NewReminderScheduler creates a new instance of ReminderScheduler implementation.
// now and loc may be nil, in which case time.Now and time.Local are used.
func NewReminderScheduler(
	alarm AlarmClock,
	reminderRepo repository.ReminderRepository,
	now func() time.Time,
	loc *time.Location,
	log logger.Logger,
	m *metrics.Metrics,
) ReminderScheduler {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &reminderScheduler{
		alarm:        alarm,
		reminderRepo: reminderRepo,
		now:          now,
		loc:          loc,
		log:          log,
		metrics:      m,
	}
}

func (s *reminderScheduler) NextTriggerTime(reminder *entity.MedicationSetReminder) time.Time {
	return ComputeNextTriggerTime(reminder, s.now().In(s.loc))
}

// ScheduleReminder registers the next occurrence with the alarm clock.
func (s *reminderScheduler) ScheduleReminder(ctx context.Context, reminder *entity.MedicationSetReminder) error {
	next := s.NextTriggerTime(reminder)
	if err := s.alarm.RegisterWakeup(WakeupID(reminder.ID), next, reminder.ID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to register wake-up for reminder %d", reminder.ID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.metrics.WakeupsScheduled.Inc()
	s.log.Info(fmt.Sprintf("Scheduled reminder %d for set %d at %v (%s)",
		reminder.ID, reminder.SetID, next, constant.ToDisplayString(reminder.DaysOfWeek)))
	return nil
}

// CancelReminder removes the pending wake-up for a reminder.
func (s *reminderScheduler) CancelReminder(ctx context.Context, reminderID uint) error {
	s.alarm.CancelWakeup(WakeupID(reminderID))
	s.metrics.WakeupsCancelled.Inc()
	s.log.Debug(fmt.Sprintf("Cancelled wake-up for reminder %d", reminderID))
	return nil
}

// RescheduleAllReminders loads enabled reminders from the DB and schedules them.
func (s *reminderScheduler) RescheduleAllReminders(ctx context.Context) error {
	s.log.Info("Rescheduling reminders from database...")
	reminders, err := s.reminderRepo.FindEnabled(ctx)
	if err != nil {
		s.log.Error("Failed to retrieve enabled reminders for rescheduling", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	scheduledCount := 0
	for _, reminder := range reminders {
		if err := s.ScheduleReminder(ctx, reminder); err != nil {
			// Continue trying to schedule others
			continue
		}
		scheduledCount++
	}

	s.log.Info(fmt.Sprintf("Reschedule complete. Scheduled: %d of %d", scheduledCount, len(reminders)))
	return nil
}
