package service

import (
	"context"
	"time"

	"healthlog/internal/domain/entity"
)

// AlarmClock is the wake-up collaborator the scheduler programs. A wake-up
// fires once; registering an id that is already pending replaces it.
type AlarmClock interface {
	RegisterWakeup(id string, at time.Time, payload uint) error
	CancelWakeup(id string)
}

// ReminderScheduler defines the interface for reminder scheduling operations.
type ReminderScheduler interface {
	// ScheduleReminder registers the next occurrence of the reminder, replacing any pending one.
	ScheduleReminder(ctx context.Context, reminder *entity.MedicationSetReminder) error
	// CancelReminder removes the pending wake-up of a reminder, if any.
	CancelReminder(ctx context.Context, reminderID uint) error
	// RescheduleAllReminders schedules every enabled reminder. Called on startup,
	// since wake-ups do not survive a restart.
	RescheduleAllReminders(ctx context.Context) error
	// NextTriggerTime reports when the reminder would fire next from now.
	NextTriggerTime(reminder *entity.MedicationSetReminder) time.Time
}
