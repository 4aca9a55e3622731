package service

import (
	"context"
	"fmt"

	"healthlog/internal/application/dto"
	"healthlog/internal/domain/constant"
	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	setRepo      repository.MedicationSetRepository
	scheduler    ReminderScheduler
	log          logger.Logger
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	setRepo repository.MedicationSetRepository,
	scheduler ReminderScheduler,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		setRepo:      setRepo,
		scheduler:    scheduler,
		log:          log,
	}
}

func validateReminder(req dto.SaveReminderRequest) error {
	if req.Hour < 0 || req.Hour > 23 {
		return fmt.Errorf("%w: hour must be 0-23, got %d", appErrors.ErrInvalidReminder, req.Hour)
	}
	if req.Minute < 0 || req.Minute > 59 {
		return fmt.Errorf("%w: minute must be 0-59, got %d", appErrors.ErrInvalidReminder, req.Minute)
	}
	if req.DaysOfWeek <= 0 || req.DaysOfWeek > constant.EveryDay.Int() {
		return fmt.Errorf("%w: at least one day must be selected", appErrors.ErrInvalidReminder)
	}
	return nil
}

func (s *reminderService) toResponse(r *entity.MedicationSetReminder) dto.ReminderResponse {
	return dto.ToReminderResponse(r, s.scheduler.NextTriggerTime(r))
}

// syncSchedule schedules enabled reminders and cancels disabled ones.
func (s *reminderService) syncSchedule(ctx context.Context, r *entity.MedicationSetReminder) error {
	if r.Enabled {
		return s.scheduler.ScheduleReminder(ctx, r)
	}
	return s.scheduler.CancelReminder(ctx, r.ID)
}

// CreateReminder creates a reminder for an existing set.
func (s *reminderService) CreateReminder(ctx context.Context, setID uint, req dto.SaveReminderRequest) (dto.ReminderResponse, error) {
	if err := validateReminder(req); err != nil {
		return dto.ReminderResponse{}, err
	}
	set, err := s.setRepo.FindByID(ctx, setID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to find set %d while creating reminder", setID), err)
		return dto.ReminderResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if set == nil {
		return dto.ReminderResponse{}, appErrors.ErrMedicationSetNotFound
	}

	reminder := &entity.MedicationSetReminder{
		SetID:      setID,
		Hour:       req.Hour,
		Minute:     req.Minute,
		DaysOfWeek: constant.DaysOfWeek(req.DaysOfWeek),
		Enabled:    req.Enabled,
	}
	if _, err := s.reminderRepo.Create(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create reminder for set %d", setID), err)
		return dto.ReminderResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.syncSchedule(ctx, reminder); err != nil {
		return dto.ReminderResponse{}, err
	}

	s.log.Info(fmt.Sprintf("Created reminder %d for set %d at %02d:%02d", reminder.ID, setID, reminder.Hour, reminder.Minute))
	return s.toResponse(reminder), nil
}

// UpdateReminder updates a reminder and keeps its wake-up in sync.
func (s *reminderService) UpdateReminder(ctx context.Context, reminderID uint, req dto.SaveReminderRequest) (dto.ReminderResponse, error) {
	if err := validateReminder(req); err != nil {
		return dto.ReminderResponse{}, err
	}
	reminder, err := s.findReminder(ctx, reminderID)
	if err != nil {
		return dto.ReminderResponse{}, err
	}

	reminder.Hour = req.Hour
	reminder.Minute = req.Minute
	reminder.DaysOfWeek = constant.DaysOfWeek(req.DaysOfWeek)
	reminder.Enabled = req.Enabled

	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update reminder %d", reminderID), err)
		return dto.ReminderResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if err := s.syncSchedule(ctx, reminder); err != nil {
		return dto.ReminderResponse{}, err
	}
	return s.toResponse(reminder), nil
}

// DeleteReminder cancels the wake-up before removing the row.
func (s *reminderService) DeleteReminder(ctx context.Context, reminderID uint) error {
	if _, err := s.findReminder(ctx, reminderID); err != nil {
		return err
	}
	if err := s.scheduler.CancelReminder(ctx, reminderID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to cancel wake-up for reminder %d", reminderID), err)
	}
	if err := s.reminderRepo.Delete(ctx, reminderID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete reminder %d", reminderID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Deleted reminder %d", reminderID))
	return nil
}

// GetReminder retrieves a reminder by its ID.
func (s *reminderService) GetReminder(ctx context.Context, reminderID uint) (dto.ReminderResponse, error) {
	reminder, err := s.findReminder(ctx, reminderID)
	if err != nil {
		return dto.ReminderResponse{}, err
	}
	return s.toResponse(reminder), nil
}

// ListReminders retrieves the reminders attached to a set.
func (s *reminderService) ListReminders(ctx context.Context, setID uint) ([]dto.ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindBySetID(ctx, setID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders for set %d", setID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	list := make([]dto.ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = s.toResponse(r)
	}
	return list, nil
}

func (s *reminderService) findReminder(ctx context.Context, reminderID uint) (*entity.MedicationSetReminder, error) {
	reminder, err := s.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to get reminder %d", reminderID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if reminder == nil {
		return nil, appErrors.ErrReminderNotFound
	}
	return reminder, nil
}
