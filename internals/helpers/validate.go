// file: internals/helpers/validate.go
package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/helpers/errs"
)

// NewValidator reports field errors under their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

var validate = NewValidator()

// ValidateStruct runs the shared validator and converts the result to errs.ValidationError.
func ValidateStruct(v any) error {
	return errs.FromValidator(validate.Struct(v))
}

// BindJSON parses the body into dst and validates it.
func BindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if n, ok := dst.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	return ValidateStruct(dst)
}
