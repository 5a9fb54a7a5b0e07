// file: internals/features/library/books/controller/book_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "library_backend/internals/features/library/books/dto"
	model "library_backend/internals/features/library/books/model"
	"library_backend/internals/features/library/books/service"
	reviewDTO "library_backend/internals/features/library/reviews/dto"
	reviewService "library_backend/internals/features/library/reviews/service"
	helper "library_backend/internals/helpers"
)

const (
	similarBooks  = 4
	reviewsOnPage = 20
)

type BookController struct {
	DB      *gorm.DB
	Catalog *service.CatalogService
	Reviews *reviewService.ReviewService
}

func NewBookController(db *gorm.DB, catalog *service.CatalogService) *BookController {
	return &BookController{DB: db, Catalog: catalog, Reviews: reviewService.NewReviewService(db)}
}

// =========================================================
// LIST - GET /books?title=&author=&genre_id=&min_year=&max_year=&min_rating=&sort_by=
// =========================================================
func (h *BookController) List(c *fiber.Ctx) error {
	var q dto.BookSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	filter, sort, err := q.ToFilter()
	if err != nil {
		return helper.FromError(c, err)
	}

	p := helper.ResolvePaging(c, h.Catalog.DefaultPerPage, h.Catalog.MaxPerPage)
	books, total, err := h.Catalog.Search(c.UserContext(), filter, sort, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "OK", dto.ToBookResponses(books), helper.BuildPagination(total, p))
}

// =========================================================
// DETAIL - GET /books/:id
// =========================================================
func (h *BookController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	book, err := h.Catalog.Get(ctx, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	reviews, err := h.Reviews.ListForBook(ctx, id, reviewsOnPage)
	if err != nil {
		return helper.FromError(c, err)
	}
	summary, err := h.Catalog.ReviewSummary(ctx, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	similar, err := h.Catalog.Similar(ctx, id, similarBooks)
	if err != nil {
		return helper.FromError(c, err)
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"book":           dto.ToBookResponse(*book),
		"reviews":        reviewDTO.ToReviewResponses(reviews),
		"average_rating": summary.Average,
		"review_count":   summary.Count,
		"similar_books":  dto.ToBookResponses(similar),
	})
}

// =========================================================
// CREATE - POST /a/books
// =========================================================
func (h *BookController) Create(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	m := req.ToModel()
	if err := h.Catalog.CreateBook(c.UserContext(), m, req.BookGenreIDs); err != nil {
		return helper.FromError(c, err)
	}
	created, err := h.Catalog.Get(c.UserContext(), m.BookID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Book created", dto.ToBookResponse(*created))
}

// =========================================================
// UPDATE - PATCH /a/books/:id
// =========================================================
func (h *BookController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateBookRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	updated, err := h.Catalog.UpdateBook(c.UserContext(), id, func(m *model.BookModel) {
		req.ApplyToModel(m)
	}, req.BookGenreIDs)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Book updated", dto.ToBookResponse(*updated))
}

// =========================================================
// DELETE - DELETE /a/books/:id (cascades to issues, returns, reviews)
// =========================================================
func (h *BookController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteBook(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Book deleted", fiber.Map{"book_id": id})
}
