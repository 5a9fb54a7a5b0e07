package route

import (
	"github.com/gofiber/fiber/v2"

	"library_backend/internals/features/library/reviews/controller"
	"library_backend/internals/features/library/reviews/service"
)

func ReviewUserRoutes(r fiber.Router, reviews *service.ReviewService) {
	ctl := controller.NewReviewController(reviews)
	r.Post("/books/:id/reviews", ctl.Create)
}
