package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthlog/internal/application/dto"
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"
)

type medicationSetService struct {
	setRepo      repository.MedicationSetRepository
	reminderRepo repository.ReminderRepository
	scheduler    ReminderScheduler
	notifier     Notifier
	now          func() time.Time
	log          logger.Logger
}

// NewMedicationSetService creates a new instance of MedicationSetService implementation.
func NewMedicationSetService(
	store *repository.Store,
	scheduler ReminderScheduler,
	notifier Notifier,
	now func() time.Time,
	log logger.Logger,
) MedicationSetService {
	if now == nil {
		now = time.Now
	}
	return &medicationSetService{
		setRepo:      store.MedicationSets,
		reminderRepo: store.Reminders,
		scheduler:    scheduler,
		notifier:     notifier,
		now:          now,
		log:          log,
	}
}

func toSetItems(items []dto.MedicationSetItemExport) ([]entity.MedicationSetItem, error) {
	out := make([]entity.MedicationSetItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("%w: item name is required", appErrors.ErrInvalidEntry)
		}
		out = append(out, entity.MedicationSetItem{Name: item.Name, Dosage: item.Dosage})
	}
	return out, nil
}

// CreateSet creates a new medication set with its items.
func (s *medicationSetService) CreateSet(ctx context.Context, req dto.SaveMedicationSetRequest) (*entity.MedicationSet, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: set name is required", appErrors.ErrInvalidEntry)
	}
	items, err := toSetItems(req.Items)
	if err != nil {
		return nil, err
	}

	set := &entity.MedicationSet{Name: req.Name, CreatedAt: s.now().UTC(), Items: items}
	if err := s.setRepo.Create(ctx, set); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create medication set %q", req.Name), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created medication set %d (%s) with %d items", set.ID, set.Name, len(set.Items)))
	return set, nil
}

// UpdateSet renames a set and replaces its items.
func (s *medicationSetService) UpdateSet(ctx context.Context, setID uint, req dto.SaveMedicationSetRequest) (*entity.MedicationSet, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: set name is required", appErrors.ErrInvalidEntry)
	}
	items, err := toSetItems(req.Items)
	if err != nil {
		return nil, err
	}
	set, err := s.GetSet(ctx, setID)
	if err != nil {
		return nil, err
	}

	set.Name = req.Name
	set.Items = items
	if err := s.setRepo.Update(ctx, set); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update medication set %d", setID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return set, nil
}

// GetSet retrieves a set with its items.
func (s *medicationSetService) GetSet(ctx context.Context, setID uint) (*entity.MedicationSet, error) {
	set, err := s.setRepo.FindByID(ctx, setID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to get medication set %d", setID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if set == nil {
		return nil, appErrors.ErrMedicationSetNotFound
	}
	return set, nil
}

// ListSets returns every set, newest first.
func (s *medicationSetService) ListSets(ctx context.Context) ([]entity.MedicationSet, error) {
	sets, err := s.setRepo.FindRecent(ctx, 0)
	if err != nil {
		s.log.Error("Failed to list medication sets", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return sets, nil
}

// DeleteSet cancels the set's wake-ups and notification, then deletes it.
func (s *medicationSetService) DeleteSet(ctx context.Context, setID uint) error {
	if _, err := s.GetSet(ctx, setID); err != nil {
		return err
	}

	reminders, err := s.reminderRepo.FindBySetID(ctx, setID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load reminders of set %d", setID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	for _, r := range reminders {
		if err := s.scheduler.CancelReminder(ctx, r.ID); err != nil {
			s.log.Error(fmt.Sprintf("Failed to cancel reminder %d of set %d", r.ID, setID), err)
		}
	}

	if err := s.setRepo.DeleteByID(ctx, setID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete medication set %d", setID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.notifier.CancelNotification(ctx, NotificationKey(setID)); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to clear notification for deleted set %d: %v", setID, err))
	}
	s.log.Info(fmt.Sprintf("Deleted medication set %d and %d reminders", setID, len(reminders)))
	return nil
}

// LogSet records a set as taken and clears its reminder notification.
func (s *medicationSetService) LogSet(ctx context.Context, setID uint, at time.Time) (*entity.MedicationSetLog, error) {
	set, err := s.GetSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = s.now()
	}

	setLog, err := s.setRepo.LogSet(ctx, set, at)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to log medication set %d", setID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.notifier.CancelNotification(ctx, NotificationKey(setID)); err != nil {
		s.log.Warn(fmt.Sprintf("Failed to clear notification for set %d: %v", setID, err))
	}
	s.log.Info(fmt.Sprintf("Logged medication set %d (%d items) at %v", setID, len(set.Items), at))
	return setLog, nil
}
