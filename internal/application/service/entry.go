package service

import (
	"context"
	"fmt"

	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"
	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"
)

// EntryService provides list/get/create/update/delete for one journal category.
type EntryService[T any] struct {
	repo repository.EntryRepository[T]
	name string
	log  logger.Logger
	// Normalize runs before create and update. It may rewrite fields (enum
	// fallbacks) or reject the entry with ErrInvalidEntry.
	Normalize func(*T) error
}

// NewEntryService creates a service for the category served by repo.
func NewEntryService[T any](repo repository.EntryRepository[T], name string, log logger.Logger) *EntryService[T] {
	return &EntryService[T]{repo: repo, name: name, log: log}
}

// WithNormalizer sets the hook run before writes and returns the service.
func (s *EntryService[T]) WithNormalizer(fn func(*T) error) *EntryService[T] {
	s.Normalize = fn
	return s
}

// Name is the category name used in log messages.
func (s *EntryService[T]) Name() string { return s.name }

// ListRecent returns at most limit entries, newest first. A non-positive limit returns all.
func (s *EntryService[T]) ListRecent(ctx context.Context, limit int) ([]T, error) {
	entries, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list %s entries", s.name), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return entries, nil
}

// Get returns one entry or ErrEntryNotFound.
func (s *EntryService[T]) Get(ctx context.Context, id uint) (*T, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to get %s %d", s.name, id), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	if entry == nil {
		return nil, appErrors.ErrEntryNotFound
	}
	return entry, nil
}

// Create stores a new entry. Any id on the input is ignored.
func (s *EntryService[T]) Create(ctx context.Context, entry *T) error {
	setID(entry, 0)
	if err := s.normalize(entry); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create %s", s.name), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Debug(fmt.Sprintf("Created %s %d", s.name, idOf(entry)))
	return nil
}

// Update replaces the entry stored under id.
func (s *EntryService[T]) Update(ctx context.Context, id uint, entry *T) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	setID(entry, id)
	if err := s.normalize(entry); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update %s %d", s.name, id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

// Delete removes the entry stored under id.
func (s *EntryService[T]) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete %s %d", s.name, id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Debug(fmt.Sprintf("Deleted %s %d", s.name, id))
	return nil
}

func (s *EntryService[T]) normalize(entry *T) error {
	if s.Normalize == nil {
		return nil
	}
	return s.Normalize(entry)
}

func setID[T any](entry *T, id uint) {
	if ident, ok := any(entry).(entity.Identifiable); ok {
		ident.SetID(id)
	}
}

func idOf[T any](entry *T) uint {
	if ident, ok := any(entry).(entity.Identifiable); ok {
		return ident.GetID()
	}
	return 0
}
