// file: internals/features/library/loans/dto/loan_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	bookDTO "library_backend/internals/features/library/books/dto"
	model "library_backend/internals/features/library/loans/model"
	"library_backend/internals/features/library/loans/service"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
)

/* =========================
   REQUEST
   ========================= */

type IssueBookRequest struct {
	BookID  uuid.UUID `json:"book_id" validate:"required"`
	DueDate *string   `json:"due_date"` // YYYY-MM-DD, optional
}

func (r *IssueBookRequest) Normalize() {
	if r.DueDate != nil {
		v := strings.TrimSpace(*r.DueDate)
		if v == "" {
			r.DueDate = nil
		} else {
			r.DueDate = &v
		}
	}
}

// ResolveDueDate parses DueDate, falling back to suggested.
func (r *IssueBookRequest) ResolveDueDate(suggested time.Time) (time.Time, error) {
	if r.DueDate == nil {
		return suggested, nil
	}
	d, err := dbtime.ParseDate(*r.DueDate)
	if err != nil {
		return time.Time{}, errs.Invalid("due_date", err.Error())
	}
	return d, nil
}

type ReturnBookRequest struct {
	ConditionNotes string `json:"condition_notes" validate:"max=2000"`
	IsDamaged      bool   `json:"is_damaged"`
}

func (r *ReturnBookRequest) Normalize() {
	r.ConditionNotes = strings.TrimSpace(r.ConditionNotes)
}

/* =========================
   RESPONSE
   ========================= */

type BookReturnResponse struct {
	BookReturnID             uuid.UUID `json:"book_return_id"`
	BookReturnReturnedAt     time.Time `json:"book_return_returned_at"`
	BookReturnConditionNotes string    `json:"book_return_condition_notes,omitempty"`
	BookReturnIsDamaged      bool      `json:"book_return_is_damaged"`
}

type BookIssueResponse struct {
	BookIssueID         uuid.UUID             `json:"book_issue_id"`
	BookIssueBookID     uuid.UUID             `json:"book_issue_book_id"`
	BookIssueReaderID   uuid.UUID             `json:"book_issue_reader_id"`
	BookIssueIssuedAt   time.Time             `json:"book_issue_issued_at"`
	BookIssueDueDate    string                `json:"book_issue_due_date"`
	BookIssueReturnDate *string               `json:"book_issue_return_date"`
	BookIssueIsReturned bool                  `json:"book_issue_is_returned"`
	BookIssueFineAmount int64                 `json:"book_issue_fine_amount"`
	Book                *bookDTO.BookResponse `json:"book,omitempty"`
	Return              *BookReturnResponse   `json:"return,omitempty"`
}

func toReturnResponse(m model.BookReturnModel) BookReturnResponse {
	return BookReturnResponse{
		BookReturnID:             m.BookReturnID,
		BookReturnReturnedAt:     m.BookReturnReturnedAt,
		BookReturnConditionNotes: m.BookReturnConditionNotes,
		BookReturnIsDamaged:      m.BookReturnIsDamaged,
	}
}

func ToBookIssueResponse(m model.BookIssueModel) BookIssueResponse {
	out := BookIssueResponse{
		BookIssueID:         m.BookIssueID,
		BookIssueBookID:     m.BookIssueBookID,
		BookIssueReaderID:   m.BookIssueReaderID,
		BookIssueIssuedAt:   m.BookIssueIssuedAt,
		BookIssueDueDate:    dbtime.FormatDate(m.DueDate()),
		BookIssueIsReturned: m.BookIssueIsReturned,
		BookIssueFineAmount: m.BookIssueFineAmount,
	}
	if rd := m.ReturnDate(); rd != nil {
		s := dbtime.FormatDate(*rd)
		out.BookIssueReturnDate = &s
	}
	if m.Book != nil {
		b := bookDTO.ToBookResponse(*m.Book)
		out.Book = &b
	}
	if m.Return != nil {
		r := toReturnResponse(*m.Return)
		out.Return = &r
	}
	return out
}

func ToBookIssueResponses(ms []model.BookIssueModel) []BookIssueResponse {
	out := make([]BookIssueResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToBookIssueResponse(m))
	}
	return out
}

type ReturnResponse struct {
	Issue  BookIssueResponse  `json:"issue"`
	Return BookReturnResponse `json:"return"`
	Fine   int64              `json:"fine"`
}

func ToReturnResponse(o service.ReturnOutcome) ReturnResponse {
	return ReturnResponse{
		Issue:  ToBookIssueResponse(o.Issue),
		Return: toReturnResponse(o.Return),
		Fine:   o.Fine,
	}
}

type OverdueResponse struct {
	BookIssueResponse
	DaysOverdue int   `json:"days_overdue"`
	RunningFine int64 `json:"running_fine"`
}

type RemindersResponse struct {
	Today    string              `json:"today"`
	Upcoming []BookIssueResponse `json:"upcoming"`
	Overdue  []OverdueResponse   `json:"overdue"`
}

func ToRemindersResponse(r service.Reminders) RemindersResponse {
	out := RemindersResponse{
		Today:    dbtime.FormatDate(r.Today),
		Upcoming: ToBookIssueResponses(r.Upcoming),
		Overdue:  make([]OverdueResponse, 0, len(r.Overdue)),
	}
	for _, o := range r.Overdue {
		out.Overdue = append(out.Overdue, OverdueResponse{
			BookIssueResponse: ToBookIssueResponse(o.Issue),
			DaysOverdue:       o.DaysOverdue,
			RunningFine:       o.RunningFine,
		})
	}
	return out
}
