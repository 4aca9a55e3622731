package repository

import "context"

// EntryRepository is the CRUD surface shared by every journal category.
type EntryRepository[T any] interface {
	Create(ctx context.Context, entry *T) error
	Update(ctx context.Context, entry *T) error
	Delete(ctx context.Context, entry *T) error
	DeleteByID(ctx context.Context, id uint) error
	// FindByID returns (nil, nil) when the row does not exist.
	FindByID(ctx context.Context, id uint) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	// FindRecent returns at most limit rows, newest first.
	FindRecent(ctx context.Context, limit int) ([]T, error)
	// Watch emits the full list immediately and again after every write made
	// through this repository. The channel closes when ctx is done.
	Watch(ctx context.Context) <-chan []T
}
