// file: internals/route/index.go
package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	authService "library_backend/internals/features/users/auth/service"
	helperAuth "library_backend/internals/helpers/auth"
	"library_backend/internals/logging"
	authMiddleware "library_backend/internals/middlewares/auth"
	routeDetails "library_backend/internals/route/details"
)

var startTime = time.Now()

// SetupRoutes mounts every API group and returns the library services so
// background jobs can share them.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) *routeDetails.LibraryServices {
	startTime = time.Now()
	log := logging.Ctx(context.Background())

	tokens := authService.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	services := routeDetails.NewLibraryServices(db, cfg.Library)

	BaseRoutes(app, db)

	api := app.Group("/api")

	// ===================== AUTH =====================
	log.Info().Msg("[ROUTES] mounting /api/auth")
	routeDetails.AuthRoutes(api, db, tokens)

	// ===================== PUBLIC =====================
	log.Info().Msg("[ROUTES] mounting /api/public")
	public := api.Group("/public")
	routeDetails.LibraryPublicRoutes(public, services)

	// ===================== READER =====================
	log.Info().Msg("[ROUTES] mounting /api/u")
	user := api.Group("/u",
		authMiddleware.AuthJWT(db, tokens),
		authMiddleware.ResolveReader(db),
	)
	routeDetails.LibraryUserRoutes(user, services)

	// ===================== LIBRARIAN =====================
	log.Info().Msg("[ROUTES] mounting /api/a")
	admin := api.Group("/a",
		authMiddleware.AuthJWT(db, tokens),
		authMiddleware.OnlyRoles("librarian access only", helperAuth.RoleLibrarian),
	)
	routeDetails.LibraryAdminRoutes(admin, services)

	return services
}
