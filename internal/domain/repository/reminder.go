package repository

import (
	"context"

	"healthlog/internal/domain/entity"
)

// ReminderRepository defines the interface for medication set reminder operations.
type ReminderRepository interface {
	// FindByID retrieves a reminder by its ID. Returns (nil, nil) when it does not exist.
	FindByID(ctx context.Context, id uint) (*entity.MedicationSetReminder, error)
	// FindBySetID retrieves all reminders attached to a medication set.
	FindBySetID(ctx context.Context, setID uint) ([]*entity.MedicationSetReminder, error)
	// FindEnabled retrieves every enabled reminder across all sets (used for rescheduling on startup).
	FindEnabled(ctx context.Context) ([]*entity.MedicationSetReminder, error)
	// Create creates a new reminder. Returns the ID of the created reminder.
	Create(ctx context.Context, reminder *entity.MedicationSetReminder) (uint, error)
	// Update updates an existing reminder.
	Update(ctx context.Context, reminder *entity.MedicationSetReminder) error
	// Delete deletes a reminder by its ID.
	Delete(ctx context.Context, id uint) error
}
