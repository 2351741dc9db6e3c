package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDaysInclusive(t *testing.T) {
	start, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	end, err := ParseDate("2024-06-03")
	require.NoError(t, err)
	require.Equal(t, 3, DaysInclusive(start, end))
	require.Equal(t, 1, DaysInclusive(start, start))

	_, err = ParseDate("01.06.2024")
	require.Error(t, err)
}

func TestStartOf(t *testing.T) {
	value := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), StartOfDay(value))
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(value))
}

func TestStrings(t *testing.T) {
	require.Equal(t, "john.doe", EmailLocalPart("john.doe@example.com"))
	require.Equal(t, "", EmailLocalPart("broken"))

	require.Nil(t, EmptyToNil(nil))
	require.Nil(t, EmptyToNil(StrPtr("  ")))
	require.Equal(t, "IT", *EmptyToNil(StrPtr(" IT ")))
}

func TestIsContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.False(t, IsContextDone(ctx))
	cancel()
	require.True(t, IsContextDone(ctx))
}
