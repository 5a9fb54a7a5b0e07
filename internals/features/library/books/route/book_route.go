package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/library/books/controller"
	"library_backend/internals/features/library/books/service"
)

// BookPublicRoutes: /books, /books/:id
func BookPublicRoutes(r fiber.Router, db *gorm.DB, catalog *service.CatalogService) {
	ctl := controller.NewBookController(db, catalog)

	g := r.Group("/books")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Detail)
}

// BookAdminRoutes: librarian CRUD on /books
func BookAdminRoutes(r fiber.Router, db *gorm.DB, catalog *service.CatalogService) {
	ctl := controller.NewBookController(db, catalog)

	g := r.Group("/books")
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
