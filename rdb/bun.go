// Package rdb opens relational database connections behind the Bun ORM.
//
// Postgres (pgx pool), MySQL (go-sql-driver) and SQLite (modernc, pure Go)
// are supported. The package also classifies driver specific constraint
// violations so callers can treat the store as the final arbiter of
// uniqueness and referential integrity.
package rdb

import (
	"github.com/code19m/errx"
	"github.com/rise-and-shine/agrovida/rdb/hooks"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/extra/bunotel"
)

// NewBunDB creates a new Bun database for the configured driver.
func NewBunDB(cfg Config) (*bun.DB, error) {
	var (
		db  *bun.DB
		err error
	)

	switch cfg.Driver {
	case DriverPostgres:
		db, err = openPostgres(cfg)
	case DriverMySQL:
		db, err = openMySQL(cfg)
	case DriverSQLite:
		db, err = openSQLite(cfg)
	default:
		return nil, errx.New(
			"unsupported database driver",
			errx.WithDetails(errx.D{"driver": cfg.Driver}),
		)
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"driver": cfg.Driver}))
	}

	applyHooks(db, cfg)

	return db, nil
}

// applyHooks adds the query logging hook (active only in debug mode)
// and the OpenTelemetry hook (always on).
func applyHooks(db *bun.DB, cfg Config) {
	db.AddQueryHook(
		hooks.NewDebugHook(
			hooks.WithEnabled(cfg.Debug),
			hooks.WithVerbose(true),
		),
	)

	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.Database)))
}
