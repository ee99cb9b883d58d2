package rdb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rise-and-shine/agrovida/rdb"
	"github.com/rise-and-shine/agrovida/rdb/rdbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDriverErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		conflict bool
		fk       bool
	}{
		{name: "pg unique", err: &pgconn.PgError{Code: "23505"}, conflict: true},
		{name: "pg foreign key", err: &pgconn.PgError{Code: "23503"}, fk: true},
		{name: "pg other", err: &pgconn.PgError{Code: "42P01"}},
		{name: "mysql duplicate", err: &mysql.MySQLError{Number: 1062}, conflict: true},
		{name: "mysql referenced", err: &mysql.MySQLError{Number: 1451}, fk: true},
		{name: "mysql missing parent", err: &mysql.MySQLError{Number: 1452}, fk: true},
		{name: "plain", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, rdb.IsConflict(tt.err))
			assert.Equal(t, tt.fk, rdb.IsForeignKeyViolation(tt.err))
		})
	}
}

func TestClassifySQLiteErrors(t *testing.T) {
	ctx := context.Background()
	db := rdbtest.New(t)

	ctID := rdbtest.CropType(t, db, "Cocoa")
	rdbtest.Variety(t, db, "Criollo", ctID)

	t.Run("unique pair", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			"INSERT INTO varieties (variety_name, crop_type_id) VALUES (?, ?)", "Criollo", ctID)
		require.Error(t, err)
		assert.True(t, rdb.IsConflict(err))
		assert.False(t, rdb.IsForeignKeyViolation(err))
		assert.Contains(t, rdb.ErrorDetails(err, nil), "sqlite.code")
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := db.ExecContext(ctx,
			"INSERT INTO varieties (variety_name, crop_type_id) VALUES (?, ?)", "Nacional", 999)
		require.Error(t, err)
		assert.True(t, rdb.IsForeignKeyViolation(err))
		assert.False(t, rdb.IsConflict(err))
	})
}

func TestErrorDetailsPostgres(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "uq_variety_name_crop_type", TableName: "varieties"}

	details := rdb.ErrorDetails(err, nil)

	assert.Equal(t, "23505", details["pg.code"])
	assert.Equal(t, "uq_variety_name_crop_type", details["pg.constraint"])
	assert.NotContains(t, details, "query")
}

func TestWaitReady(t *testing.T) {
	db := rdbtest.New(t)
	require.NoError(t, rdb.WaitReady(context.Background(), db, 3, 0))
}
