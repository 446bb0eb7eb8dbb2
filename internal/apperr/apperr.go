// Package apperr holds the error kinds handlers and services share.
// Each kind maps to one HTTP status in Status.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// ValidationError is malformed or out-of-range input found before any
// database call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError is a referenced id that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// TransactionError wraps any failure inside a multi-statement transaction.
// The transaction has already been rolled back when callers see it.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string { return e.Err.Error() }

func (e *TransactionError) Unwrap() error { return e.Err }

func Validation(msg string) error { return &ValidationError{Message: msg} }

func NotFound(msg string) error { return &NotFoundError{Message: msg} }

// Transaction wraps err unless it already carries a more specific kind.
func Transaction(err error) error {
	if err == nil {
		return nil
	}
	var v *ValidationError
	var nf *NotFoundError
	var te *TransactionError
	if errors.As(err, &v) || errors.As(err, &nf) || errors.As(err, &te) {
		return err
	}
	return &TransactionError{Err: err}
}

// Status returns the HTTP status and client message for err.
func Status(err error) (int, string) {
	var fe *fiber.Error
	var v *ValidationError
	var nf *NotFoundError
	var te *TransactionError
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.As(err, &v):
		return fiber.StatusBadRequest, v.Message
	case errors.As(err, &nf):
		return fiber.StatusNotFound, nf.Message
	case errors.As(err, &te):
		return fiber.StatusBadRequest, te.Error()
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// IsUniqueViolation reports a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports a Postgres foreign_key_violation (23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// MissingReference turns a foreign_key_violation into a ValidationError
// carrying msg. Other errors are returned unchanged.
func MissingReference(err error, msg string) error {
	if IsForeignKeyViolation(err) {
		return Validation(msg)
	}
	return err
}
