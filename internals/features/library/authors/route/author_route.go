package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/library/authors/controller"
	bookService "library_backend/internals/features/library/books/service"
)

func AuthorPublicRoutes(r fiber.Router, db *gorm.DB, catalog *bookService.CatalogService) {
	ctl := controller.NewAuthorController(db, catalog)

	g := r.Group("/authors")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Detail)
}

func AuthorAdminRoutes(r fiber.Router, db *gorm.DB, catalog *bookService.CatalogService) {
	ctl := controller.NewAuthorController(db, catalog)

	g := r.Group("/authors")
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
