package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	loanService "library_backend/internals/features/library/loans/service"
	"library_backend/internals/features/library/readers/controller"
	"library_backend/internals/features/library/readers/service"
)

// ReaderUserRoutes expects the reader to be resolved already.
func ReaderUserRoutes(r fiber.Router, db *gorm.DB, readers *service.ReaderService, loans *loanService.LoanService) {
	ctl := controller.NewReaderController(db, readers, loans)

	r.Get("/me", ctl.Me)
	r.Patch("/me", ctl.UpdateMe)
}

func ReaderAdminRoutes(r fiber.Router, db *gorm.DB, readers *service.ReaderService, loans *loanService.LoanService) {
	ctl := controller.NewReaderController(db, readers, loans)

	g := r.Group("/readers")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Delete("/:id", ctl.Delete)
}
