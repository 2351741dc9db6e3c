package helpers

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const day = 24 * time.Hour

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// ParseDate дата в формате YYYY-MM-DD (UTC)
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, errors.Errorf("некорректная дата %q, ожидается формат ГГГГ-ММ-ДД", value)
	}
	return t, nil
}

// DaysInclusive кол-во дней между датами включительно
func DaysInclusive(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

func StartOfDay(t time.Time) time.Time {
	return t.UTC().Truncate(day)
}

func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EmailLocalPart часть адреса до @
func EmailLocalPart(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return local
}

func StrPtr(value string) *string {
	return &value
}

// EmptyToNil пустая строка -> nil
func EmptyToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
