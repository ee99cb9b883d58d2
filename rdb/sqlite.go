package rdb

import (
	"context"
	"database/sql"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// openSQLite opens a single connection store with foreign keys enforced.
// One connection keeps an in-memory database alive and shared for the
// lifetime of the *bun.DB.
func openSQLite(cfg Config) (*bun.DB, error) {
	sqldb, err := sql.Open(DriverSQLite, cfg.Path)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	if _, err = sqldb.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		_ = sqldb.Close()
		return nil, errx.Wrap(err)
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
