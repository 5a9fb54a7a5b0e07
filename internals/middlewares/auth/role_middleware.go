package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "library_backend/internals/helpers/auth"
	"library_backend/internals/logging"
)

// OnlyRoles lets the request through when the token role is one of roles.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	if message == "" {
		message = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		if c.Locals(helperAuth.LocUserID) == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing identity")
		}
		role := helperAuth.GetRole(c)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		logging.Ctx(c.UserContext()).Debug().Str("role", role).Strs("allowed", roles).Msg("[AUTH] role rejected")
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}
