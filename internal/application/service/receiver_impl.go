package service

import (
	"context"
	"fmt"
	"time"

	"healthlog/internal/domain/repository"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"
	"healthlog/internal/pkg/metrics"
)

const (
	reminderNotificationTitle = "Medication reminder"
	fallbackSetName           = "your medications"
)

// NotificationKey is the notification slot shared by all reminders of a set.
func NotificationKey(setID uint) string {
	return fmt.Sprintf("medication-set-%d", setID)
}

// SetIDFromNotificationKey reverses NotificationKey.
func SetIDFromNotificationKey(key string) (uint, bool) {
	var id uint
	if _, err := fmt.Sscanf(key, "medication-set-%d", &id); err != nil || NotificationKey(id) != key {
		return 0, false
	}
	return id, true
}

// DayBounds returns local midnight of t's day and the following midnight.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

type reminderReceiver struct {
	scheduler    ReminderScheduler
	reminderRepo repository.ReminderRepository
	setRepo      repository.MedicationSetRepository
	logRepo      repository.MedicationSetLogRepository
	notifier     Notifier
	now          func() time.Time
	loc          *time.Location
	log          logger.Logger
	metrics      *metrics.Metrics
}

// NewReminderReceiver creates a new instance of ReminderReceiver implementation.
func NewReminderReceiver(
	scheduler ReminderScheduler,
	store *repository.Store,
	notifier Notifier,
	now func() time.Time,
	loc *time.Location,
	log logger.Logger,
	m *metrics.Metrics,
) ReminderReceiver {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &reminderReceiver{
		scheduler:    scheduler,
		reminderRepo: store.Reminders,
		setRepo:      store.MedicationSets,
		logRepo:      store.SetLogs,
		notifier:     notifier,
		now:          now,
		loc:          loc,
		log:          log,
		metrics:      m,
	}
}

// HandleBoot reschedules all reminders.
func (r *reminderReceiver) HandleBoot(ctx context.Context) error {
	r.log.Info("Handling boot event")
	return r.scheduler.RescheduleAllReminders(ctx)
}

// HandleReminderFired runs when a reminder wake-up is delivered.
func (r *reminderReceiver) HandleReminderFired(ctx context.Context, reminderID uint) error {
	r.metrics.RemindersFired.Inc()
	r.log.Info(fmt.Sprintf("Handling fired reminder %d", reminderID))

	reminder, err := r.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		r.log.Error(fmt.Sprintf("Failed to find reminder %d for notification", reminderID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if reminder == nil {
		r.log.Warn(fmt.Sprintf("Reminder %d not found during notification handling (already deleted?)", reminderID))
		return nil // Don't treat as error if already deleted
	}

	if reminder.Enabled {
		if err := r.scheduler.ScheduleReminder(ctx, reminder); err != nil {
			// Log error, today's notification still goes out.
			r.log.Error(fmt.Sprintf("Failed to reschedule reminder %d", reminderID), err)
		}
	}

	from, to := DayBounds(r.now(), r.loc)
	logged, err := r.logRepo.ExistsBetween(ctx, reminder.SetID, from, to)
	if err != nil {
		r.log.Error(fmt.Sprintf("Failed to check today's logs for set %d", reminder.SetID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if logged {
		r.metrics.NotificationsSuppressed.Inc()
		r.log.Info(fmt.Sprintf("Set %d already logged today, skipping notification for reminder %d", reminder.SetID, reminderID))
		return nil
	}

	name := fallbackSetName
	set, err := r.setRepo.FindByID(ctx, reminder.SetID)
	if err != nil {
		r.log.Error(fmt.Sprintf("Failed to load set %d, using generic label", reminder.SetID), err)
	} else if set != nil && set.Name != "" {
		name = set.Name
	}

	body := fmt.Sprintf("Time to take %s", name)
	if err := r.notifier.ShowNotification(ctx, NotificationKey(reminder.SetID), reminderNotificationTitle, body, DeepLinkMedicationSets); err != nil {
		r.log.Error(fmt.Sprintf("Failed to show notification for reminder %d", reminderID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrNotification, err)
	}
	r.metrics.NotificationsShown.Inc()
	return nil
}
