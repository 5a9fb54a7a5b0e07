// file: internals/features/library/reviews/controller/review_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	dto "library_backend/internals/features/library/reviews/dto"
	"library_backend/internals/features/library/reviews/service"
	helper "library_backend/internals/helpers"
	helperAuth "library_backend/internals/helpers/auth"
)

type ReviewController struct {
	Reviews *service.ReviewService
}

func NewReviewController(reviews *service.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

// POST /u/books/:id/reviews
func (h *ReviewController) Create(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	bookID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateReviewRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	rv, err := h.Reviews.Create(c.UserContext(), bookID, readerID, req.Rating, req.Comment)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Review added", dto.ToReviewResponse(*rv))
}
