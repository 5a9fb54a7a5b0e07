// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/users/auth/controller"
	"library_backend/internals/features/users/auth/service"
	rateLimiter "library_backend/internals/middlewares"
	authMw "library_backend/internals/middlewares/auth"
)

// AuthRoutes mounts /auth under r.
func AuthRoutes(r fiber.Router, db *gorm.DB, tokens *service.TokenService) {
	ctl := controller.NewAuthController(db, tokens)

	g := r.Group("/auth")
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	g.Get("/me", authMw.AuthJWT(db, tokens), ctl.Me)
}
