package remote

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNormalizeError(t *testing.T) {
	t.Run(`driver errors get codes`, func(t *testing.T) {
		require.Nil(t, normalizeError(nil))
		require.True(t, IsNotFound(normalizeError(gorm.ErrRecordNotFound)))
		require.True(t, IsTimeout(normalizeError(errors.Wrap(context.DeadlineExceeded, "query"))))
		require.True(t, IsUniqueViolation(normalizeError(gorm.ErrDuplicatedKey)))
		require.True(t, IsUniqueViolation(normalizeError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})))
	})
	t.Run(`wrapped remote error is kept`, func(t *testing.T) {
		err := errors.Wrap(NewError("нет записи", CodeNoRows), "store")
		require.True(t, IsNotFound(normalizeError(err)))
		require.False(t, IsUniqueViolation(err))
	})
}
