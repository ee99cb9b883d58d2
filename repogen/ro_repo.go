package repogen

import (
	"context"
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/rdb"
	"github.com/uptrace/bun"
)

const (
	codeMultipleRowsFound = "MULTIPLE_ROWS_FOUND"
	codeObjectNotFound    = "OBJECT_NOT_FOUND"
)

// BunReadOnlyRepo provides read-only access to a table through bun.
type BunReadOnlyRepo[E any, F any] struct {
	idb          bun.IDB
	entityName   string
	notFoundCode string
	filterFunc   FilterFunc[F]
}

// ReadOnlyRepoBuilder is a builder for BunReadOnlyRepo with sensible defaults.
type ReadOnlyRepoBuilder[E any, F any] struct {
	repo BunReadOnlyRepo[E, F]
}

// NewReadOnlyRepoBuilder creates a new builder with sensible defaults.
func NewReadOnlyRepoBuilder[E any, F any](idb bun.IDB) *ReadOnlyRepoBuilder[E, F] {
	return &ReadOnlyRepoBuilder[E, F]{
		repo: BunReadOnlyRepo[E, F]{
			idb:          idb,
			entityName:   nameOf(new(E)),
			notFoundCode: codeObjectNotFound,
			filterFunc:   func(q *bun.SelectQuery, _ F) *bun.SelectQuery { return q },
		},
	}
}

// WithEntityName overrides the name used in error messages.
func (b *ReadOnlyRepoBuilder[E, F]) WithEntityName(name string) *ReadOnlyRepoBuilder[E, F] {
	b.repo.entityName = name
	return b
}

// WithNotFoundCode sets the error code Get returns when nothing matches.
func (b *ReadOnlyRepoBuilder[E, F]) WithNotFoundCode(code string) *ReadOnlyRepoBuilder[E, F] {
	b.repo.notFoundCode = code
	return b
}

// WithFilterFunc sets the filter function.
func (b *ReadOnlyRepoBuilder[E, F]) WithFilterFunc(fn FilterFunc[F]) *ReadOnlyRepoBuilder[E, F] {
	b.repo.filterFunc = fn
	return b
}

// Build creates the BunReadOnlyRepo.
func (b *ReadOnlyRepoBuilder[E, F]) Build() *BunReadOnlyRepo[E, F] {
	repo := b.repo
	return &repo
}

func (r *BunReadOnlyRepo[E, F]) Get(ctx context.Context, filters F) (*E, error) {
	entities := make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.filterFunc(q, filters)
	q = q.Limit(2) //nolint:mnd // two rows are enough to detect ambiguity

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(rdb.ErrorDetails(err, q)))
	}

	switch len(entities) {
	case 0:
		return nil, errx.New(
			fmt.Sprintf("no %s found", r.entityName),
			errx.WithCode(r.notFoundCode),
			errx.WithType(errx.T_NotFound),
		)
	case 1:
		return &entities[0], nil
	default:
		return nil, errx.New(
			fmt.Sprintf("multiple %s found", r.entityName),
			errx.WithCode(codeMultipleRowsFound),
			errx.WithDetails(rdb.ErrorDetails(nil, q)),
		)
	}
}

func (r *BunReadOnlyRepo[E, F]) List(ctx context.Context, filters F) ([]E, error) {
	entities := make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.filterFunc(q, filters)

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(rdb.ErrorDetails(err, q)))
	}

	return entities, nil
}

func (r *BunReadOnlyRepo[E, F]) Count(ctx context.Context, filters F) (int, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = r.filterFunc(q, filters)
	q = q.Offset(0).Limit(0)

	count, err := q.Count(ctx)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(rdb.ErrorDetails(err, q)))
	}

	return count, nil
}

func (r *BunReadOnlyRepo[E, F]) FirstOrNil(ctx context.Context, filters F) (*E, error) {
	entities := make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.filterFunc(q, filters)
	q = q.Limit(1)

	if err := q.Scan(ctx); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(rdb.ErrorDetails(err, q)))
	}

	if len(entities) == 0 {
		return nil, nil //nolint:nilnil // absence is not an error here
	}

	return &entities[0], nil
}

func (r *BunReadOnlyRepo[E, F]) Exists(ctx context.Context, filters F) (bool, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = r.filterFunc(q, filters)

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errx.Wrap(err, errx.WithDetails(rdb.ErrorDetails(err, q)))
	}

	return exists, nil
}

// nameOf returns the name of the type of the given value.
// If the value is a pointer, it returns the name of the pointed-to type.
func nameOf(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}
