package sqlite

import (
	"context"
	"fmt"
	"time"

	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"

	"gorm.io/gorm"
)

type medicationSetLogRepository struct {
	db *gorm.DB
}

// NewMedicationSetLogRepository creates a new instance of MedicationSetLogRepository.
func NewMedicationSetLogRepository(db *gorm.DB) repository.MedicationSetLogRepository {
	return &medicationSetLogRepository{db: db}
}

// Create records a set log.
func (r *medicationSetLogRepository) Create(ctx context.Context, log *entity.MedicationSetLog) error {
	// Timestamps are stored in UTC so range queries compare consistently.
	log.Timestamp = log.Timestamp.UTC()
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create log for set %d: %w", log.SetID, err)
	}
	return nil
}

// ExistsBetween reports whether the set was logged in [from, to).
func (r *medicationSetLogRepository) ExistsBetween(ctx context.Context, setID uint, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.MedicationSetLog{}).
		Where("set_id = ? AND timestamp >= ? AND timestamp < ?", setID, from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("🔴 ERROR: failed to query logs for set %d: %w", setID, err)
	}
	return count > 0, nil
}

// FindBySetID retrieves every log of a set, newest first.
func (r *medicationSetLogRepository) FindBySetID(ctx context.Context, setID uint) ([]*entity.MedicationSetLog, error) {
	var logs []*entity.MedicationSetLog
	if err := r.db.WithContext(ctx).Where("set_id = ?", setID).Order("timestamp desc").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find logs for set %d: %w", setID, err)
	}
	return logs, nil
}
