package repository

import (
	"context"
	"time"

	"healthlog/internal/domain/entity"
)

// MedicationSetRepository stores medication sets together with their items.
type MedicationSetRepository interface {
	EntryRepository[entity.MedicationSet]
	// LogSet records a set log and one medication row per item in a single transaction.
	LogSet(ctx context.Context, set *entity.MedicationSet, at time.Time) (*entity.MedicationSetLog, error)
}

// MedicationSetLogRepository answers "was this set logged in a time window".
type MedicationSetLogRepository interface {
	Create(ctx context.Context, log *entity.MedicationSetLog) error
	// ExistsBetween reports whether setID has a log with from <= timestamp < to.
	ExistsBetween(ctx context.Context, setID uint, from, to time.Time) (bool, error)
	FindBySetID(ctx context.Context, setID uint) ([]*entity.MedicationSetLog, error)
}
