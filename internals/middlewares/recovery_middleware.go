package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"library_backend/internals/logging"
)

// RecoveryMiddleware turns a panic into a 500 and logs it with the request id.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			logging.Ctx(c.UserContext()).Error().
				Str("panic", fmt.Sprint(e)).
				Str("path", c.Path()).
				Msg("[HTTP] panic recovered")
		},
	})
}
