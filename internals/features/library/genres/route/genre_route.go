package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookService "library_backend/internals/features/library/books/service"
	"library_backend/internals/features/library/genres/controller"
)

func GenrePublicRoutes(r fiber.Router, db *gorm.DB, catalog *bookService.CatalogService) {
	ctl := controller.NewGenreController(db, catalog)
	r.Get("/genres", ctl.List)
}

func GenreAdminRoutes(r fiber.Router, db *gorm.DB, catalog *bookService.CatalogService) {
	ctl := controller.NewGenreController(db, catalog)

	g := r.Group("/genres")
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
