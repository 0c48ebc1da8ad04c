// Package dberrs translates PostgreSQL driver errors into domain errors.
package dberrs

import (
	"errors"

	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Classify maps lock and serialization failures as well as unique violations
// caused by concurrent inserts to errs.ConflictError. Other errors are
// returned unchanged.
func Classify(err error, resource string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.LockNotAvailable,
		pgerrcode.UniqueViolation:
		return errs.NewConflictErrorWithCause(resource, err)
	default:
		return err
	}
}
