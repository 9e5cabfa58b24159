package stores

import (
	"database/sql"
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrLocked is returned when another process holds the database past the
// configured busy timeout.
var ErrLocked = errors.New("database is locked by another process")

// IsBusyError returns true if the error is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// wrapWriteErr maps busy errors to ErrLocked so callers can report them
// without knowing about the driver.
func wrapWriteErr(err error) error {
	if IsBusyError(err) {
		return errors.Join(ErrLocked, err)
	}
	return err
}
