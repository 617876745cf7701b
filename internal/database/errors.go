package database

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Sentinel errors returned by the repositories. Handlers map these onto
// HTTP status codes; anything else is an opaque store failure.
var (
	// ErrNotFound means the requested record (or a referenced record) does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a write violated a uniqueness constraint or the
	// restrict-on-delete policy.
	ErrConflict = errors.New("record conflict")
)

// Translate converts driver and ORM errors into the sentinel errors above.
// Errors it does not recognise pass through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrConflict
		case sqlite3.ErrConstraintForeignKey:
			return ErrNotFound
		}
	}
	return err
}
