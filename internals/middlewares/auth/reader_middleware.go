package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	readerService "library_backend/internals/features/library/readers/service"
	helperAuth "library_backend/internals/helpers/auth"
	"library_backend/internals/helpers/errs"
)

// ResolveReader maps the authenticated user to its reader profile and
// stores the reader id under helperAuth.LocReaderID.
func ResolveReader(db *gorm.DB) fiber.Handler {
	svc := readerService.NewReaderService(db, nil)
	return func(c *fiber.Ctx) error {
		userID, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		readerID, err := svc.ResolveByUser(c.UserContext(), userID)
		if errors.Is(err, errs.ErrNotFound) {
			return fiber.NewError(fiber.StatusForbidden, "no reader profile for this user")
		}
		if err != nil {
			return err
		}
		c.Locals(helperAuth.LocReaderID, readerID)
		return c.Next()
	}
}
