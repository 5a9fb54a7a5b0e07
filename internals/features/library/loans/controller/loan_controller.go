// file: internals/features/library/loans/controller/loan_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	dto "library_backend/internals/features/library/loans/dto"
	"library_backend/internals/features/library/loans/service"
	helper "library_backend/internals/helpers"
	helperAuth "library_backend/internals/helpers/auth"
	"library_backend/internals/helpers/dbtime"
)

type LoanController struct {
	Loans *service.LoanService
}

func NewLoanController(loans *service.LoanService) *LoanController {
	return &LoanController{Loans: loans}
}

// =========================================================
// ISSUE - POST /u/loans  {book_id, due_date?}
// =========================================================
func (h *LoanController) Issue(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	var req dto.IssueBookRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	due, err := req.ResolveDueDate(h.Loans.SuggestedDueDate(h.Loans.Today()))
	if err != nil {
		return helper.FromError(c, err)
	}

	issue, err := h.Loans.Issue(c.UserContext(), req.BookID, readerID, due)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Book issued", dto.ToBookIssueResponse(*issue))
}

// =========================================================
// RETURN - POST /u/loans/:id/return  {condition_notes, is_damaged}
// =========================================================
func (h *LoanController) Return(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	issueID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReturnBookRequest
	if len(c.Body()) > 0 {
		if err := helper.BindJSON(c, &req); err != nil {
			return helper.FromError(c, err)
		}
	}

	out, err := h.Loans.Return(c.UserContext(), issueID, readerID, req.ConditionNotes, req.IsDamaged)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Book returned", dto.ToReturnResponse(*out))
}

// GET /u/loans/history?page=&per_page=
func (h *LoanController) History(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Loans.History(c.UserContext(), readerID, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "OK", dto.ToBookIssueResponses(rows), helper.BuildPagination(total, p))
}

// GET /u/loans/reminders
func (h *LoanController) Reminders(c *fiber.Ctx) error {
	readerID, err := helperAuth.GetReaderID(c)
	if err != nil {
		return err
	}
	r, err := h.Loans.Reminders(c.UserContext(), readerID, h.Loans.Today())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToRemindersResponse(*r))
}

// GET /u/loans/suggested-due-date
func (h *LoanController) SuggestedDueDate(c *fiber.Ctx) error {
	today := h.Loans.Today()
	return helper.JsonOK(c, "OK", fiber.Map{
		"today":              dbtime.FormatDate(today),
		"suggested_due_date": dbtime.FormatDate(h.Loans.SuggestedDueDate(today)),
		"loan_period_days":   h.Loans.Policy.DefaultLoanPeriodDays,
		"fine_per_day":       h.Loans.Policy.FinePerDay,
	})
}
