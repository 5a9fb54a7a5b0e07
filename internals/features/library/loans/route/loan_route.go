package route

import (
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/features/library/loans/controller"
	"library_backend/internals/features/library/loans/service"
)

// LoanUserRoutes: /loans for the resolved reader
func LoanUserRoutes(r fiber.Router, loans *service.LoanService) {
	ctl := controller.NewLoanController(loans)

	g := r.Group("/loans")
	g.Post("/", ctl.Issue)
	g.Get("/history", ctl.History)
	g.Get("/reminders", ctl.Reminders)
	g.Get("/suggested-due-date", ctl.SuggestedDueDate)
	g.Post("/:id/return", ctl.Return)
}
