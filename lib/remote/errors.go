package remote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	// CodeNoRows запись не найдена (код совпадает с кодом PostgREST)
	CodeNoRows  = "PGRST116"
	CodeTimeout = "TIMEOUT"
	// CodeUniqueViolation SQLSTATE нарушения уникальности
	CodeUniqueViolation = "23505"
)

type Error struct {
	Message string
	Code    string
	cause   error
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(message, code string) *Error {
	return &Error{Message: message, Code: code}
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNoRows)
}

func IsTimeout(err error) bool {
	return hasCode(err, CodeTimeout)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

func hasCode(err error, code string) bool {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Code == code
	}
	return false
}

// normalizeError приводит ошибки драйвера к *Error
func normalizeError(err error) error {
	if err == nil {
		return nil
	}
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Message: "запись не найдена", Code: CodeNoRows, cause: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Message: "запись уже существует", Code: CodeUniqueViolation, cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Message: "превышено время ожидания ответа БД", Code: CodeTimeout, cause: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{Message: pgErr.Message, Code: pgErr.Code, cause: err}
	}
	return &Error{Message: err.Error(), cause: err}
}
