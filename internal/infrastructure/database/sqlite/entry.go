package sqlite

import (
	"context"
	"errors"
	"fmt"

	"healthlog/internal/domain/entity"
	"healthlog/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultRecentOrder = "timestamp desc, id desc"

type entryRepository[T any] struct {
	db          *gorm.DB
	name        string
	preloads    []string
	recentOrder string
	feed        *changeFeed
}

// NewEntryRepository creates a CRUD repository for a journal category.
// name is only used in error messages.
func NewEntryRepository[T any](db *gorm.DB, name string) repository.EntryRepository[T] {
	return newEntryRepository[T](db, name, defaultRecentOrder)
}

func newEntryRepository[T any](db *gorm.DB, name, recentOrder string, preloads ...string) *entryRepository[T] {
	return &entryRepository[T]{
		db:          db,
		name:        name,
		preloads:    preloads,
		recentOrder: recentOrder,
		feed:        newChangeFeed(),
	}
}

func (r *entryRepository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// Create inserts a new row (and any has-many children).
func (r *entryRepository[T]) Create(ctx context.Context, entry *T) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create %s: %w", r.name, err)
	}
	r.feed.notify()
	return nil
}

// Update saves every column of an existing row.
func (r *entryRepository[T]) Update(ctx context.Context, entry *T) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update %s: %w", r.name, err)
	}
	r.feed.notify()
	return nil
}

// Delete removes the row and its has-many children.
func (r *entryRepository[T]) Delete(ctx context.Context, entry *T) error {
	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(entry).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete %s: %w", r.name, err)
	}
	r.feed.notify()
	return nil
}

// DeleteByID removes the row with the given primary key and its children.
func (r *entryRepository[T]) DeleteByID(ctx context.Context, id uint) error {
	var entry T
	if ident, ok := any(&entry).(entity.Identifiable); ok {
		ident.SetID(id)
		return r.Delete(ctx, &entry)
	}
	if err := r.db.WithContext(ctx).Delete(&entry, id).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete %s %d: %w", r.name, id, err)
	}
	r.feed.notify()
	return nil
}

// FindByID retrieves a row by primary key, or (nil, nil) if there is none.
func (r *entryRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entry T
	if err := r.query(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find %s by id %d: %w", r.name, id, err)
	}
	return &entry, nil
}

// FindAll retrieves every row in insertion order.
func (r *entryRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var entries []T
	if err := r.query(ctx).Order("id asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find all %s: %w", r.name, err)
	}
	return entries, nil
}

// FindRecent retrieves the newest rows. A non-positive limit returns everything.
func (r *entryRepository[T]) FindRecent(ctx context.Context, limit int) ([]T, error) {
	var entries []T
	q := r.query(ctx).Order(r.recentOrder)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find recent %s: %w", r.name, err)
	}
	return entries, nil
}

// Watch streams snapshots of the whole table. A failed query skips that
// snapshot; the next write triggers another attempt.
func (r *entryRepository[T]) Watch(ctx context.Context) <-chan []T {
	out := make(chan []T, 1)
	changes, unsubscribe := r.feed.subscribe()

	go func() {
		defer close(out)
		defer unsubscribe()
		for {
			if entries, err := r.FindAll(ctx); err == nil {
				select {
				case out <- entries:
				case <-ctx.Done():
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-changes:
			}
		}
	}()
	return out
}
