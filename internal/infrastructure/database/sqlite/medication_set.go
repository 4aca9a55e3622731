package sqlite

import (
	"context"
	"fmt"
	"time"

	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"

	"gorm.io/gorm"
)

type medicationSetRepository struct {
	*entryRepository[entity.MedicationSet]
	medicationFeed *changeFeed
}

// NewMedicationSetRepository creates a repository for medication sets and their items.
// medications is the repository whose watchers are told about rows written by LogSet;
// it may be nil.
func NewMedicationSetRepository(db *gorm.DB, medications repository.EntryRepository[entity.Medication]) repository.MedicationSetRepository {
	r := &medicationSetRepository{
		entryRepository: newEntryRepository[entity.MedicationSet](db, "medication set", "created_at desc, id desc", "Items"),
	}
	if m, ok := medications.(*entryRepository[entity.Medication]); ok {
		r.medicationFeed = m.feed
	}
	return r
}

// Update saves the set and replaces its items.
func (r *medicationSetRepository) Update(ctx context.Context, set *entity.MedicationSet) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", set.ID).Delete(&entity.MedicationSetItem{}).Error; err != nil {
			return err
		}
		for i := range set.Items {
			set.Items[i].ID = 0
			set.Items[i].SetID = set.ID
		}
		return tx.Save(set).Error
	})
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update medication set %d: %w", set.ID, err)
	}
	r.feed.notify()
	return nil
}

// Delete removes the set together with its items, logs and reminders.
func (r *medicationSetRepository) Delete(ctx context.Context, set *entity.MedicationSet) error {
	return r.DeleteByID(ctx, set.ID)
}

// DeleteByID removes the set together with its items, logs and reminders.
func (r *medicationSetRepository) DeleteByID(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []any{
			&entity.MedicationSetItem{},
			&entity.MedicationSetLog{},
			&entity.MedicationSetReminder{},
		}
		for _, child := range children {
			if err := tx.Where("set_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.MedicationSet{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete medication set %d: %w", id, err)
	}
	r.feed.notify()
	return nil
}

// LogSet records that the set was taken at the given time.
func (r *medicationSetRepository) LogSet(ctx context.Context, set *entity.MedicationSet, at time.Time) (*entity.MedicationSetLog, error) {
	setLog := &entity.MedicationSetLog{SetID: set.ID, Timestamp: at.UTC()}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(setLog).Error; err != nil {
			return err
		}
		for _, item := range set.Items {
			med := &entity.Medication{
				Timestamp: at.UTC(),
				Name:      item.Name,
				Dosage:    item.Dosage,
				Notes:     set.Name,
			}
			if err := tx.Create(med).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to log medication set %d: %w", set.ID, err)
	}
	if r.medicationFeed != nil && len(set.Items) > 0 {
		r.medicationFeed.notify()
	}
	return setLog, nil
}
