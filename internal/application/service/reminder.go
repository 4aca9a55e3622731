package service

import (
	"context"

	"healthlog/internal/application/dto"
)

// ReminderService defines the interface for managing medication set reminders.
type ReminderService interface {
	// CreateReminder attaches a reminder to a set and schedules it when enabled.
	CreateReminder(ctx context.Context, setID uint, req dto.SaveReminderRequest) (dto.ReminderResponse, error)
	// UpdateReminder changes time, days or enabled state and reschedules or cancels accordingly.
	UpdateReminder(ctx context.Context, reminderID uint, req dto.SaveReminderRequest) (dto.ReminderResponse, error)
	// DeleteReminder cancels and removes a reminder.
	DeleteReminder(ctx context.Context, reminderID uint) error
	// GetReminder retrieves a reminder by its ID.
	GetReminder(ctx context.Context, reminderID uint) (dto.ReminderResponse, error)
	// ListReminders retrieves the reminders of a set.
	ListReminders(ctx context.Context, setID uint) ([]dto.ReminderResponse, error)
}
