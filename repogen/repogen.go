// Package repogen provides generic repository interfaces for data access patterns.
//
// The interfaces are implemented on top of bun so the same repository works
// with every driver the rdb package opens.
package repogen

import (
	"context"

	"github.com/uptrace/bun"
)

// FilterFunc applies the filters F to a select query.
type FilterFunc[F any] func(q *bun.SelectQuery, filters F) *bun.SelectQuery

// ReadOnlyRepo defines a generic read-only repository interface for entities of type E
// with filter type F.
type ReadOnlyRepo[E any, F any] interface {
	// Get retrieves exactly one entity matching the filters.
	Get(ctx context.Context, filters F) (*E, error)
	// List returns all entities matching the filters.
	List(ctx context.Context, filters F) ([]E, error)
	// Count returns the number of entities matching the filters, ignoring limit and offset.
	Count(ctx context.Context, filters F) (int, error)
	// FirstOrNil returns the first entity matching the filters, or nil if none found.
	FirstOrNil(ctx context.Context, filters F) (*E, error)
	// Exists checks if any entity matches the filters.
	Exists(ctx context.Context, filters F) (bool, error)
}

// Repo adds single row writes to ReadOnlyRepo.
type Repo[E any, F any] interface {
	ReadOnlyRepo[E, F]
	// Create inserts entity. Generated columns are not read back.
	Create(ctx context.Context, entity *E) error
	// Update writes entity by primary key.
	Update(ctx context.Context, entity *E) error
	// Delete removes entity by primary key.
	Delete(ctx context.Context, entity *E) error
}
