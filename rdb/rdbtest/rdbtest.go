// Package rdbtest provides an in-memory SQLite store with the agrovida schema for tests.
package rdbtest

import (
	"context"
	_ "embed"
	"strings"
	"testing"

	"github.com/rise-and-shine/agrovida/rdb"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

//go:embed schema.sql
var schema string

// New returns a fresh in-memory database with every table created.
// The database is closed when the test ends.
func New(t testing.TB) *bun.DB {
	t.Helper()

	db, err := rdb.NewBunDB(rdb.Config{Driver: rdb.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err = db.ExecContext(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}

	return db
}

// CropType inserts a crop type and returns its id.
func CropType(t testing.TB, db bun.IDB, name string) int64 {
	t.Helper()
	return insertReturningID(t, db, "INSERT INTO crop_types (crop_type_name) VALUES (?)", name)
}

// Variety inserts a variety row directly, bypassing every application check.
func Variety(t testing.TB, db bun.IDB, name string, cropTypeID int64) int64 {
	t.Helper()
	return insertReturningID(t, db,
		"INSERT INTO varieties (variety_name, crop_type_id) VALUES (?, ?)", name, cropTypeID)
}

// Farm inserts a farm and returns its id.
func Farm(t testing.TB, db bun.IDB, name, region string) int64 {
	t.Helper()
	return insertReturningID(t, db, "INSERT INTO farms (farm_name, region) VALUES (?, ?)", name, region)
}

// FarmCrop links a farm to a variety with the given production.
func FarmCrop(t testing.TB, db bun.IDB, farmID, cropTypeID, varietyID int64, tons float64, organic bool) int64 {
	t.Helper()

	isOrganic := "No"
	if organic {
		isOrganic = "Yes"
	}

	return insertReturningID(t, db,
		`INSERT INTO farm_crops (farm_id, crop_type_id, variety_id, production_tons, is_organic)
		 VALUES (?, ?, ?, ?, ?)`,
		farmID, cropTypeID, varietyID, tons, isOrganic)
}

// Sensor inserts a sensor and returns its id.
func Sensor(t testing.TB, db bun.IDB, sensorType, status string) int64 {
	t.Helper()
	return insertReturningID(t, db,
		"INSERT INTO sensors (sensor_type, sensor_status) VALUES (?, ?)", sensorType, status)
}

func insertReturningID(t testing.TB, db bun.IDB, query string, args ...any) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)

	return id
}
