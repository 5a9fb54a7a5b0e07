// file: internals/helpers/auth/user_context.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys filled by middlewares/auth.AuthJWT and the reader resolver.
const (
	LocUserID   = "user_id"   // string | uuid.UUID
	LocRole     = "role"      // string
	LocReaderID = "reader_id" // uuid.UUID
	LocRawToken = "raw_token" // string
)

const (
	RoleReader    = "reader"
	RoleLibrarian = "librarian"
)

// GetUserIDFromToken reads the authenticated user id.
// 401 when no identity is attached, 400 when it is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
		}
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "user id in token is invalid")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "user id in token is invalid")
	}
	return id, nil
}

// GetRole returns the role claim, defaulting to reader.
func GetRole(c *fiber.Ctx) string {
	if r, ok := c.Locals(LocRole).(string); ok && strings.TrimSpace(r) != "" {
		return strings.ToLower(strings.TrimSpace(r))
	}
	return RoleReader
}

func IsLibrarian(c *fiber.Ctx) bool { return GetRole(c) == RoleLibrarian }

// GetReaderID returns the reader resolved for this request.
func GetReaderID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(LocReaderID).(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "no reader profile for this user")
}

// GetRawAccessToken extracts the bearer token from the Authorization header.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}
