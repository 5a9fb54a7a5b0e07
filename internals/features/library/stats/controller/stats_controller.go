// file: internals/features/library/stats/controller/stats_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/features/library/stats/service"
	helper "library_backend/internals/helpers"
	helperAuth "library_backend/internals/helpers/auth"
)

type StatsController struct {
	Stats *service.StatsService
}

func NewStatsController(stats *service.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GET /home
func (h *StatsController) Home(c *fiber.Ctx) error {
	out, err := h.Stats.Home(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /stats
func (h *StatsController) Library(c *fiber.Ctx) error {
	out, err := h.Stats.Library(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /u/stats
func (h *StatsController) Reader(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	out, err := h.Stats.Reader(c.UserContext(), readerID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}
