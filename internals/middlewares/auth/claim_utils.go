// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authService "library_backend/internals/features/users/auth/service"
	helperAuth "library_backend/internals/helpers/auth"
)

var (
	errNoToken        = errors.New("no token provided")
	errBadTokenFormat = errors.New("invalid token format")
	errUserInactive   = errors.New("user inactive")
)

// extractBearerToken reads "Authorization: Bearer <jwt>", falling back to
// the access_token cookie.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if h == "" {
		if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
			return tok, nil
		}
		return "", errNoToken
	}

	fields := strings.Fields(h)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errBadTokenFormat
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errBadTokenFormat
	}
	return tok, nil
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var user struct {
		IsActive bool
	}
	if err := db.Table("users").Select("is_active").Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}
	if !user.IsActive {
		return errUserInactive
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims *authService.AccessClaims, raw string) {
	c.Locals(helperAuth.LocUserID, claims.Subject)
	c.Locals(helperAuth.LocRole, strings.ToLower(strings.TrimSpace(claims.Role)))
	c.Locals(helperAuth.LocRawToken, raw)
	if claims.UserName != "" {
		c.Locals("user_name", claims.UserName)
	}
}
