package cli

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	helper "library_backend/internals/helpers"
	middlewares "library_backend/internals/middlewares"
	"library_backend/internals/middlewares/logger"
	routes "library_backend/internals/route"
	routeDetails "library_backend/internals/route/details"
)

// NewApp builds the HTTP application with the full middleware chain and
// every route mounted.
func NewApp(db *gorm.DB, c *configs.Config) (*fiber.App, *routeDetails.LibraryServices) {
	app := fiber.New(fiber.Config{
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           c.Server.ReadTimeout,
		WriteTimeout:          c.Server.WriteTimeout,
		IdleTimeout:           c.Server.IdleTimeout,
	})

	// order matters: request id first so every later log line carries it
	app.Use(middlewares.RequestContext(c.Server.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.CorsMiddleware(c.Server.CORSOrigins))
	app.Use(middlewares.GlobalRateLimiter(c.Server.RateLimitMax, c.Server.RateLimitWindow))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	services := routes.SetupRoutes(app, db, c)
	return app, services
}
