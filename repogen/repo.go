package repogen

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/rdb"
	"github.com/uptrace/bun"
)

// BunRepo adds single row writes to BunReadOnlyRepo.
//
// Constraint violations reported by the store are turned into coded errors:
// a unique violation becomes conflictCode (T_Conflict), a foreign key
// violation on insert/update becomes missingRefCode (T_NotFound) and on
// delete becomes inUseCode (T_Conflict). Unset codes leave the error wrapped as is.
type BunRepo[E any, F any] struct {
	*BunReadOnlyRepo[E, F]

	conflictCode   string
	missingRefCode string
	inUseCode      string
}

// RepoBuilder builds a BunRepo.
type RepoBuilder[E any, F any] struct {
	ro   *ReadOnlyRepoBuilder[E, F]
	repo BunRepo[E, F]
}

// NewRepoBuilder creates a new builder with sensible defaults.
func NewRepoBuilder[E any, F any](idb bun.IDB) *RepoBuilder[E, F] {
	return &RepoBuilder[E, F]{ro: NewReadOnlyRepoBuilder[E, F](idb)}
}

func (b *RepoBuilder[E, F]) WithEntityName(name string) *RepoBuilder[E, F] {
	b.ro.WithEntityName(name)
	return b
}

func (b *RepoBuilder[E, F]) WithNotFoundCode(code string) *RepoBuilder[E, F] {
	b.ro.WithNotFoundCode(code)
	return b
}

func (b *RepoBuilder[E, F]) WithFilterFunc(fn FilterFunc[F]) *RepoBuilder[E, F] {
	b.ro.WithFilterFunc(fn)
	return b
}

// WithConflictCode sets the code for unique violations.
func (b *RepoBuilder[E, F]) WithConflictCode(code string) *RepoBuilder[E, F] {
	b.repo.conflictCode = code
	return b
}

// WithMissingRefCode sets the code for writes pointing at a parent row that does not exist.
func (b *RepoBuilder[E, F]) WithMissingRefCode(code string) *RepoBuilder[E, F] {
	b.repo.missingRefCode = code
	return b
}

// WithInUseCode sets the code for deletes blocked by dependent rows.
func (b *RepoBuilder[E, F]) WithInUseCode(code string) *RepoBuilder[E, F] {
	b.repo.inUseCode = code
	return b
}

// Build creates the BunRepo.
func (b *RepoBuilder[E, F]) Build() *BunRepo[E, F] {
	repo := b.repo
	repo.BunReadOnlyRepo = b.ro.Build()
	return &repo
}

func (r *BunRepo[E, F]) Create(ctx context.Context, entity *E) error {
	q := r.idb.NewInsert().Model(entity)

	if _, err := q.Exec(ctx); err != nil {
		return r.classify(err, q, "creating", r.missingRefCode, errx.T_NotFound)
	}

	return nil
}

func (r *BunRepo[E, F]) Update(ctx context.Context, entity *E) error {
	q := r.idb.NewUpdate().Model(entity).WherePK()

	result, err := q.Exec(ctx)
	if err != nil {
		return r.classify(err, q, "updating", r.missingRefCode, errx.T_NotFound)
	}

	return r.expectAffected(result, q, "update")
}

func (r *BunRepo[E, F]) Delete(ctx context.Context, entity *E) error {
	q := r.idb.NewDelete().Model(entity).WherePK()

	result, err := q.Exec(ctx)
	if err != nil {
		return r.classify(err, q, "deleting", r.inUseCode, errx.T_Conflict)
	}

	return r.expectAffected(result, q, "delete")
}

func (r *BunRepo[E, F]) expectAffected(result sql.Result, q fmt.Stringer, verb string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(rdb.ErrorDetails(err, q)))
	}

	if affected == 0 {
		return errx.New(
			fmt.Sprintf("no %s found to %s", r.entityName, verb),
			errx.WithCode(r.notFoundCode),
			errx.WithType(errx.T_NotFound),
		)
	}

	return nil
}

// classify maps a constraint violation to a coded error. A foreign key
// violation is reported with fkCode and fkType, which depend on the statement.
func (r *BunRepo[E, F]) classify(err error, q fmt.Stringer, action, fkCode string, fkType errx.Type) error {
	details := rdb.ErrorDetails(err, q)

	switch {
	case r.conflictCode != "" && rdb.IsConflict(err):
		return errx.New(
			fmt.Sprintf("conflict while %s %s", action, r.entityName),
			errx.WithCode(r.conflictCode),
			errx.WithType(errx.T_Conflict),
			errx.WithDetails(details),
		)
	case fkCode != "" && rdb.IsForeignKeyViolation(err):
		return errx.New(
			fmt.Sprintf("foreign key violation while %s %s", action, r.entityName),
			errx.WithCode(fkCode),
			errx.WithType(fkType),
			errx.WithDetails(details),
		)
	}

	return errx.Wrap(err, errx.WithDetails(details))
}
