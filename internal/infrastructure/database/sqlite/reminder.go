package sqlite

import (
	"context"
	"errors"
	"fmt"

	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"

	"gorm.io/gorm"
)

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// FindByID retrieves a reminder by its ID.
func (r *reminderRepository) FindByID(ctx context.Context, id uint) (*entity.MedicationSetReminder, error) {
	var reminder entity.MedicationSetReminder
	if err := r.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find reminder by id %d: %w", id, err)
	}
	return &reminder, nil
}

// FindBySetID retrieves all reminders for a specific medication set.
func (r *reminderRepository) FindBySetID(ctx context.Context, setID uint) ([]*entity.MedicationSetReminder, error) {
	var reminders []*entity.MedicationSetReminder
	if err := r.db.WithContext(ctx).Where("set_id = ?", setID).Order("hour asc, minute asc, id asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find reminders by set_id %d: %w", setID, err)
	}
	return reminders, nil
}

// FindEnabled retrieves all enabled reminders (used for rescheduling on startup).
func (r *reminderRepository) FindEnabled(ctx context.Context) ([]*entity.MedicationSetReminder, error) {
	var reminders []*entity.MedicationSetReminder
	if err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("id asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find enabled reminders: %w", err)
	}
	return reminders, nil
}

// Create creates a new reminder. Returns the ID of the created reminder.
func (r *reminderRepository) Create(ctx context.Context, reminder *entity.MedicationSetReminder) (uint, error) {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to create reminder for set %d: %w", reminder.SetID, err)
	}
	return reminder.ID, nil
}

// Update updates an existing reminder.
func (r *reminderRepository) Update(ctx context.Context, reminder *entity.MedicationSetReminder) error {
	// Use Save to update all fields, including zero values
	if err := r.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update reminder %d: %w", reminder.ID, err)
	}
	return nil
}

// Delete deletes a reminder by its ID.
func (r *reminderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.MedicationSetReminder{}, id).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete reminder %d: %w", id, err)
	}
	return nil
}
