// Package errs holds the error taxonomy shared by the library services.
//
// Services wrap one of the sentinels with context:
//
//	return fmt.Errorf("book %s: %w", id, errs.ErrUnavailable)
//
// and callers match with errors.Is. The HTTP layer turns them into status
// codes in helper.FromError.
package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUnavailable     = errors.New("no copies available")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyReturned = errors.New("already returned")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrLimitReached    = errors.New("loan limit reached")
)

// FieldErrors carries per-field messages of a validation failure.
type FieldErrors map[string][]string

// ValidationError is an ErrValidation with field details.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for f, msgs := range e.Fields {
		parts = append(parts, f+": "+strings.Join(msgs, ", "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a single-field validation error.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: FieldErrors{field: {msg}}}
}

// Add appends a message to field, creating the map lazily.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = FieldErrors{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FromValidator converts validator.ValidationErrors into a ValidationError
// keyed by the field name the validator reports (json names when built by
// helper.NewValidator).
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	out := &ValidationError{}
	for _, fe := range ve {
		out.Add(fe.Field(), describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// NotFoundIf maps gorm.ErrRecordNotFound to ErrNotFound with a subject.
func NotFoundIf(err error, subject string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", subject, ErrNotFound)
	}
	return err
}

// IsUniqueViolation reports a duplicate-key failure from postgres (23505),
// from a GORM dialect that translates errors, or from sqlite's message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint")
}

// ConflictIf maps a unique violation to ErrConflict.
func ConflictIf(err error, subject string) error {
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s already exists: %w", subject, ErrConflict)
	}
	return err
}
