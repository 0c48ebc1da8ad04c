package dberrs_test

import (
	"errors"
	"fmt"
	"testing"

	"dispatch/internal/adapters/out/postgres/dberrs"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	conflicts := []string{
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.LockNotAvailable,
		pgerrcode.UniqueViolation,
	}
	for _, code := range conflicts {
		t.Run("conflict_"+code, func(t *testing.T) {
			cause := fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})

			err := dberrs.Classify(cause, "orders")

			require.ErrorIs(t, err, errs.ErrConflict)
			var conflict *errs.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, "orders", conflict.Resource)
		})
	}

	t.Run("other_pg_errors_pass_through", func(t *testing.T) {
		cause := &pgconn.PgError{Code: pgerrcode.CheckViolation}

		assert.Equal(t, error(cause), dberrs.Classify(cause, "orders"))
	})

	t.Run("plain_errors_pass_through", func(t *testing.T) {
		cause := errors.New("boom")

		assert.Equal(t, cause, dberrs.Classify(cause, "orders"))
		assert.NoError(t, dberrs.Classify(nil, "orders"))
	})
}
