package route

import (
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/features/library/stats/controller"
	"library_backend/internals/features/library/stats/service"
)

func StatsPublicRoutes(r fiber.Router, stats *service.StatsService) {
	ctl := controller.NewStatsController(stats)
	r.Get("/home", ctl.Home)
	r.Get("/stats", ctl.Library)
}

func StatsUserRoutes(r fiber.Router, stats *service.StatsService) {
	ctl := controller.NewStatsController(stats)
	r.Get("/stats", ctl.Reader)
}
