// file: internals/helpers/error_mapper.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"library_backend/internals/helpers/errs"
)

// FromError turns a service error into the standard JSON envelope.
// *fiber.Error keeps its own code; unknown errors become 500 without leaking details.
func FromError(c *fiber.Ctx, err error) error {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		return JsonValidationError(c, ve.Fields)
	case errors.Is(err, errs.ErrValidation):
		return JsonErrorCode(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return JsonErrorCode(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return JsonErrorCode(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, errs.ErrUnavailable):
		return JsonErrorCode(c, fiber.StatusConflict, "BOOK_UNAVAILABLE", err.Error())
	case errors.Is(err, errs.ErrAlreadyReturned):
		return JsonErrorCode(c, fiber.StatusConflict, "ALREADY_RETURNED", err.Error())
	case errors.Is(err, errs.ErrLimitReached):
		return JsonErrorCode(c, fiber.StatusConflict, "LOAN_LIMIT_REACHED", err.Error())
	case errors.Is(err, errs.ErrConflict):
		return JsonErrorCode(c, fiber.StatusConflict, "CONFLICT", err.Error())
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("[HTTP] unhandled error")
	return JsonError(c, fiber.StatusInternalServerError, "")
}

// ErrorHandler is the fiber.Config ErrorHandler producing the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}
