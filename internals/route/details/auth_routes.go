package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "library_backend/internals/features/users/auth/route"
	authService "library_backend/internals/features/users/auth/service"
)

// AuthRoutes: /api/auth
func AuthRoutes(api fiber.Router, db *gorm.DB, tokens *authService.TokenService) {
	authRoute.AuthRoutes(api, db, tokens)
}
