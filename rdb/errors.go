package rdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlRowIsReferencedOld = 1217
	mysqlNoReferencedRowOld = 1216

	sqliteConstraint = 19
)

// IsConflict reports whether err is a unique or primary key violation.
func IsConflict(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgUniqueViolation
	}
	if myErr, ok := asMySQLError(err); ok {
		return myErr.Number == mysqlDuplicateEntry
	}
	if msg, ok := sqliteConstraintMessage(err); ok {
		return strings.Contains(msg, "UNIQUE constraint failed") ||
			strings.Contains(msg, "PRIMARY KEY")
	}
	return false
}

// IsForeignKeyViolation reports whether err is a foreign key violation,
// either a missing parent row or a parent row that is still referenced.
func IsForeignKeyViolation(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgForeignKeyViolation
	}
	if myErr, ok := asMySQLError(err); ok {
		switch myErr.Number {
		case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlRowIsReferencedOld, mysqlNoReferencedRowOld:
			return true
		}
		return false
	}
	if msg, ok := sqliteConstraintMessage(err); ok {
		return strings.Contains(msg, "FOREIGN KEY constraint failed")
	}
	return false
}

// IsNotFound checks if the error indicates that no rows were found.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ErrorDetails extracts driver specific information from err for logging.
// The query text is included when query is not nil.
func ErrorDetails(err error, query fmt.Stringer) errx.D {
	details := make(errx.D)
	if queryStr := safeQueryString(query); queryStr != "" {
		details["query"] = strings.ReplaceAll(queryStr, `"`, ``)
	}

	if pgErr, ok := asPgError(err); ok {
		details["pg.code"] = pgErr.Code
		details["pg.message"] = pgErr.Message
		details["pg.detail"] = pgErr.Detail
		details["pg.table"] = pgErr.TableName
		details["pg.constraint"] = pgErr.ConstraintName
		return details
	}

	if myErr, ok := asMySQLError(err); ok {
		details["mysql.number"] = myErr.Number
		details["mysql.message"] = myErr.Message
		return details
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		details["sqlite.code"] = liteErr.Code()
		details["sqlite.message"] = liteErr.Error()
	}

	return details
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := errors.As(err, &pgErr)
	return pgErr, ok
}

func asMySQLError(err error) (*mysql.MySQLError, bool) {
	var myErr *mysql.MySQLError
	ok := errors.As(err, &myErr)
	return myErr, ok
}

// sqliteConstraintMessage returns the error text of a constraint failure.
// Extended result codes keep the primary code in the low byte.
func sqliteConstraintMessage(err error) (string, bool) {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return "", false
	}
	if liteErr.Code()&0xff != sqliteConstraint {
		return "", false
	}
	return liteErr.Error(), true
}

// safeQueryString converts query to a string, recovering from panics
// some bun queries raise when rendered outside of execution.
func safeQueryString(query fmt.Stringer) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	if query == nil {
		return ""
	}

	return query.String()
}
