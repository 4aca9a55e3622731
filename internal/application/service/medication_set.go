package service

import (
	"context"
	"time"

	"healthlog/internal/application/dto"
	"healthlog/internal/domain/entity"
)

// MedicationSetService defines the interface for medication set operations.
type MedicationSetService interface {
	CreateSet(ctx context.Context, req dto.SaveMedicationSetRequest) (*entity.MedicationSet, error)
	// UpdateSet renames the set and replaces its items.
	UpdateSet(ctx context.Context, setID uint, req dto.SaveMedicationSetRequest) (*entity.MedicationSet, error)
	GetSet(ctx context.Context, setID uint) (*entity.MedicationSet, error)
	ListSets(ctx context.Context) ([]entity.MedicationSet, error)
	// DeleteSet cancels every reminder wake-up of the set, then removes it with
	// its items, logs and reminders.
	DeleteSet(ctx context.Context, setID uint) error
	// LogSet records the set as taken at the given time (zero means now) and
	// clears any pending reminder notification for it.
	LogSet(ctx context.Context, setID uint, at time.Time) (*entity.MedicationSetLog, error)
}
