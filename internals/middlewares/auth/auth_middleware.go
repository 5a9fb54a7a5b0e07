// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "library_backend/internals/features/users/auth/service"
	"library_backend/internals/logging"
)

// AuthJWT verifies the bearer token and attaches the user to the request.
// Deactivated or deleted users are rejected even with a valid token.
func AuthJWT(db *gorm.DB, tokens *authService.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lg := logging.Ctx(c.UserContext())

		raw, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			if errors.Is(err, authService.ErrMissingSecret) {
				lg.Error().Msg("[AUTH] jwt secret is not configured")
				return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
			}
			lg.Debug().Err(err).Msg("[AUTH] token rejected")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or expired token")
		}

		userID, _ := claims.UserID()
		if err := ensureUserActive(db.WithContext(c.UserContext()), userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user not found")
			}
			if errors.Is(err, errUserInactive) {
				return fiber.NewError(fiber.StatusForbidden, "Account is disabled")
			}
			lg.Error().Err(err).Msg("[AUTH] user lookup failed")
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		storeClaimsToLocals(c, claims, raw)
		return c.Next()
	}
}
