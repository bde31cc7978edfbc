package sqlstore

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"

	"github.com/platinummonkey/tasklist/pkg/storage"
)

// pqUniqueViolation is the SQLSTATE for unique_violation
const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err was raised by a UNIQUE constraint,
// whichever of the supported drivers produced it
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var pureErr *sqlite.Error
	if errors.As(err, &pureErr) {
		return pureErr.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}

// isSQLite reports whether driver speaks the SQLite dialect
func isSQLite(driver string) bool {
	return driver == storage.DriverSQLite3 || driver == storage.DriverSQLite
}

// Per-connection foreign key switches understood by each SQLite driver
const (
	sqlite3ForeignKeys = "_foreign_keys=on"
	sqliteForeignKeys  = "_pragma=foreign_keys(1)"
)

// withForeignKeys adds the driver's foreign key parameter to a SQLite DSN.
// SQLite enforces foreign keys per connection, so the switch has to travel
// with every connection the pool opens. Other drivers are returned as is.
func withForeignKeys(driver, dsn string) string {
	var param string
	switch driver {
	case storage.DriverSQLite3:
		if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
			return dsn
		}
		param = sqlite3ForeignKeys
	case storage.DriverSQLite:
		if strings.Contains(dsn, "foreign_keys(") {
			return dsn
		}
		param = sqliteForeignKeys
	default:
		return dsn
	}

	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
