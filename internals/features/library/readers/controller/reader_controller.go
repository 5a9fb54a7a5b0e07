// file: internals/features/library/readers/controller/reader_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	loanDTO "library_backend/internals/features/library/loans/dto"
	loanService "library_backend/internals/features/library/loans/service"
	dto "library_backend/internals/features/library/readers/dto"
	model "library_backend/internals/features/library/readers/model"
	"library_backend/internals/features/library/readers/service"
	helper "library_backend/internals/helpers"
	helperAuth "library_backend/internals/helpers/auth"
)

const recentHistory = 10

type ReaderController struct {
	DB      *gorm.DB
	Readers *service.ReaderService
	Loans   *loanService.LoanService
}

func NewReaderController(db *gorm.DB, readers *service.ReaderService, loans *loanService.LoanService) *ReaderController {
	return &ReaderController{DB: db, Readers: readers, Loans: loans}
}

// =========================================================
// ME - GET /u/me  (profile + outstanding + recent history)
// =========================================================
func (h *ReaderController) Me(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	r, err := h.Readers.Get(ctx, readerID)
	if err != nil {
		return helper.FromError(c, err)
	}
	outstanding, err := h.Loans.Outstanding(ctx, readerID)
	if err != nil {
		return helper.FromError(c, err)
	}
	history, total, err := h.Loans.History(ctx, readerID, helper.NewPaging(1, recentHistory, recentHistory, recentHistory))
	if err != nil {
		return helper.FromError(c, err)
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"reader":        dto.ToReaderResponse(*r),
		"current_books": loanDTO.ToBookIssueResponses(outstanding),
		"history":       loanDTO.ToBookIssueResponses(history),
		"history_total": total,
	})
}

// =========================================================
// UPDATE ME - PATCH /u/me
// =========================================================
func (h *ReaderController) UpdateMe(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	patch, err := req.ToPatch()
	if err != nil {
		return helper.FromError(c, err)
	}
	r, err := h.Readers.UpdateProfile(c.UserContext(), readerID, patch)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Profile updated", dto.ToReaderResponse(*r))
}

// =========================================================
// LIST - GET /a/readers
// =========================================================
func (h *ReaderController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	db := h.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&model.ReaderModel{}).Count(&total).Error; err != nil {
		return helper.FromError(c, err)
	}
	var rows []model.ReaderModel
	if err := db.Preload("User").
		Order("reader_created_at DESC, reader_id ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}

	out := make([]dto.ReaderResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToReaderResponse(r))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPagination(total, p))
}

// =========================================================
// CREATE - POST /a/readers  (user + reader)
// =========================================================
func (h *ReaderController) Create(c *fiber.Ctx) error {
	var req dto.CreateReaderRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	in, err := req.ToInput()
	if err != nil {
		return helper.FromError(c, err)
	}
	r, err := h.Readers.CreateWithUser(c.UserContext(), in)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Reader created", dto.ToReaderResponse(*r))
}

// =========================================================
// DELETE - DELETE /a/readers/:id
// =========================================================
func (h *ReaderController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Readers.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Reader deleted", fiber.Map{"reader_id": id})
}
