// file: internals/features/library/genres/controller/genre_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "library_backend/internals/features/library/books/model"
	bookService "library_backend/internals/features/library/books/service"
	dto "library_backend/internals/features/library/genres/dto"
	model "library_backend/internals/features/library/genres/model"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/errs"
)

type GenreController struct {
	DB      *gorm.DB
	Catalog *bookService.CatalogService
}

func NewGenreController(db *gorm.DB, catalog *bookService.CatalogService) *GenreController {
	return &GenreController{DB: db, Catalog: catalog}
}

// GET /genres
func (h *GenreController) List(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	var genres []model.GenreModel
	if err := db.Order("genre_name ASC").Find(&genres).Error; err != nil {
		return helper.FromError(c, err)
	}
	var counts []struct {
		GenreID uuid.UUID `gorm:"column:genre_id"`
		Cnt     int64     `gorm:"column:cnt"`
	}
	if err := db.Model(&bookModel.BookGenreModel{}).
		Select("genre_id, COUNT(*) AS cnt").
		Group("genre_id").
		Scan(&counts).Error; err != nil {
		return helper.FromError(c, err)
	}
	byGenre := make(map[uuid.UUID]int64, len(counts))
	for _, r := range counts {
		byGenre[r.GenreID] = r.Cnt
	}

	out := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		resp := dto.ToGenreResponse(g)
		n := byGenre[g.GenreID]
		resp.GenreBookCount = &n
		out = append(out, resp)
	}
	return helper.JsonOK(c, "OK", out)
}

// POST /a/genres
func (h *GenreController) Create(c *fiber.Ctx) error {
	var req dto.CreateGenreRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.FromError(c, errs.ConflictIf(err, "genre "+m.GenreName))
	}
	return helper.JsonCreated(c, "Genre created", dto.ToGenreResponse(*m))
}

// PATCH /a/genres/:id
func (h *GenreController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateGenreRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	db := h.DB.WithContext(c.UserContext())
	var m model.GenreModel
	if err := db.First(&m, "genre_id = ?", id).Error; err != nil {
		return helper.FromError(c, errs.NotFoundIf(err, "genre "+id.String()))
	}
	req.ApplyToModel(&m)
	if err := db.Save(&m).Error; err != nil {
		return helper.FromError(c, errs.ConflictIf(err, "genre "+m.GenreName))
	}
	return helper.JsonUpdated(c, "Genre updated", dto.ToGenreResponse(m))
}

// DELETE /a/genres/:id
func (h *GenreController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteGenre(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Genre deleted", fiber.Map{"genre_id": id})
}
