// file: internals/features/library/authors/controller/author_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "library_backend/internals/features/library/authors/dto"
	model "library_backend/internals/features/library/authors/model"
	bookDTO "library_backend/internals/features/library/books/dto"
	bookModel "library_backend/internals/features/library/books/model"
	bookService "library_backend/internals/features/library/books/service"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/errs"
)

type AuthorController struct {
	DB      *gorm.DB
	Catalog *bookService.CatalogService
}

func NewAuthorController(db *gorm.DB, catalog *bookService.CatalogService) *AuthorController {
	return &AuthorController{DB: db, Catalog: catalog}
}

// =========================================================
// LIST - GET /authors  (with book counts)
// =========================================================
func (h *AuthorController) List(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	var authors []model.AuthorModel
	if err := db.Order("author_last_name ASC, author_first_name ASC, author_id ASC").Find(&authors).Error; err != nil {
		return helper.FromError(c, err)
	}

	var counts []struct {
		AuthorID uuid.UUID `gorm:"column:book_author_id"`
		Cnt      int64     `gorm:"column:cnt"`
	}
	if err := db.Model(&bookModel.BookModel{}).
		Select("book_author_id, COUNT(*) AS cnt").
		Group("book_author_id").
		Scan(&counts).Error; err != nil {
		return helper.FromError(c, err)
	}
	byAuthor := make(map[uuid.UUID]int64, len(counts))
	for _, r := range counts {
		byAuthor[r.AuthorID] = r.Cnt
	}

	out := make([]dto.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		resp := dto.ToAuthorResponse(a)
		n := byAuthor[a.AuthorID]
		resp.AuthorBookCount = &n
		out = append(out, resp)
	}
	return helper.JsonOK(c, "OK", out)
}

// =========================================================
// DETAIL - GET /authors/:id  (author + books)
// =========================================================
func (h *AuthorController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	db := h.DB.WithContext(c.UserContext())

	var a model.AuthorModel
	if err := db.First(&a, "author_id = ?", id).Error; err != nil {
		return helper.FromError(c, errs.NotFoundIf(err, "author "+id.String()))
	}
	var books []bookModel.BookModel
	if err := db.Preload("Genres").
		Where("book_author_id = ?", id).
		Order("book_publication_year ASC, book_title ASC").
		Find(&books).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"author": dto.ToAuthorResponse(a),
		"books":  bookDTO.ToBookResponses(books),
	})
}

// =========================================================
// CREATE - POST /a/authors
// =========================================================
func (h *AuthorController) Create(c *fiber.Ctx) error {
	var req dto.CreateAuthorRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Author created", dto.ToAuthorResponse(*m))
}

// =========================================================
// UPDATE - PATCH /a/authors/:id
// =========================================================
func (h *AuthorController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAuthorRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	db := h.DB.WithContext(c.UserContext())
	var m model.AuthorModel
	if err := db.First(&m, "author_id = ?", id).Error; err != nil {
		return helper.FromError(c, errs.NotFoundIf(err, "author "+id.String()))
	}
	if err := req.ApplyToModel(&m); err != nil {
		return helper.FromError(c, err)
	}
	if err := db.Save(&m).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Author updated", dto.ToAuthorResponse(m))
}

// =========================================================
// DELETE - DELETE /a/authors/:id  (deletes the author's books too)
// =========================================================
func (h *AuthorController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteAuthor(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Author deleted", fiber.Map{"author_id": id})
}
