// file: internals/features/library/loans/service/lifecycle.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookModel "library_backend/internals/features/library/books/model"
	loanModel "library_backend/internals/features/library/loans/model"
	readerModel "library_backend/internals/features/library/readers/model"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
	"library_backend/internals/logging"
	"library_backend/internals/metrics"
)

// LoanService owns every change to book_available_copies caused by lending.
type LoanService struct {
	DB     *gorm.DB
	Policy Policy
	Now    func() time.Time
}

func NewLoanService(db *gorm.DB, p Policy) *LoanService {
	if p.Location == nil {
		p.Location = time.UTC
	}
	return &LoanService{DB: db, Policy: p, Now: time.Now}
}

func (s *LoanService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Today is the current calendar day in the library's timezone.
func (s *LoanService) Today() time.Time {
	return dbtime.Today(s.now(), s.Policy.Location)
}

// SuggestedDueDate is today plus the default loan period.
func (s *LoanService) SuggestedDueDate(today time.Time) time.Time {
	return dbtime.AddDays(today, s.Policy.DefaultLoanPeriodDays)
}

/* =========================================================
   ISSUE
   ========================================================= */

// Issue lends one copy of bookID to readerID until dueDate.
// The book row is locked and the decrement is guarded, so the last copy
// cannot be handed out twice. On any error nothing is written.
func (s *LoanService) Issue(ctx context.Context, bookID, readerID uuid.UUID, dueDate time.Time) (*loanModel.BookIssueModel, error) {
	lg := logging.Ctx(ctx)
	due := dbtime.DateOf(dueDate)
	today := s.Today()

	var issue loanModel.BookIssueModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reader readerModel.ReaderModel
		if err := tx.Select("reader_id").First(&reader, "reader_id = ?", readerID).Error; err != nil {
			return errs.NotFoundIf(err, "reader "+readerID.String())
		}

		var book bookModel.BookModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, "book_id = ?", bookID).Error; err != nil {
			return errs.NotFoundIf(err, "book "+bookID.String())
		}
		if due.Before(today) {
			return errs.Invalid("due_date", "must not be before "+dbtime.FormatDate(today))
		}
		if book.BookAvailableCopies <= 0 {
			return fmt.Errorf("book %q: %w", book.BookTitle, errs.ErrUnavailable)
		}

		if s.Policy.EnforceMaxBooks && s.Policy.MaxBooksPerReader > 0 {
			var open int64
			if err := tx.Model(&loanModel.BookIssueModel{}).
				Where("book_issue_reader_id = ? AND book_issue_is_returned = ?", readerID, false).
				Count(&open).Error; err != nil {
				return err
			}
			if open >= int64(s.Policy.MaxBooksPerReader) {
				return fmt.Errorf("reader holds %d of %d books: %w", open, s.Policy.MaxBooksPerReader, errs.ErrLimitReached)
			}
		}

		res := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ? AND book_available_copies > 0", bookID).
			UpdateColumn("book_available_copies", gorm.Expr("book_available_copies - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("book %q: %w", book.BookTitle, errs.ErrUnavailable)
		}
		book.BookAvailableCopies--

		issue = loanModel.BookIssueModel{
			BookIssueBookID:     bookID,
			BookIssueReaderID:   readerID,
			BookIssueIssuedAt:   s.now().UTC(),
			BookIssueDueDate:    datatypes.Date(due),
			BookIssueIsReturned: false,
			BookIssueFineAmount: 0,
		}
		if err := tx.Create(&issue).Error; err != nil {
			return err
		}
		issue.Book = &book
		return nil
	})
	if err != nil {
		metrics.RecordIssueRejected(rejectReason(err))
		lg.Warn().Err(err).Str("book_id", bookID.String()).Str("reader_id", readerID.String()).
			Msg("[LOANS][ISSUE] rejected")
		return nil, err
	}

	metrics.RecordIssue()
	lg.Info().Str("issue_id", issue.BookIssueID.String()).Str("book_id", bookID.String()).
		Str("reader_id", readerID.String()).Str("due_date", dbtime.FormatDate(due)).
		Msg("[LOANS][ISSUE] ok")
	return &issue, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrUnavailable):
		return metrics.ReasonUnavailable
	case errors.Is(err, errs.ErrNotFound):
		return metrics.ReasonNotFound
	case errors.Is(err, errs.ErrLimitReached):
		return metrics.ReasonLimit
	case errors.Is(err, errs.ErrValidation):
		return metrics.ReasonValidation
	default:
		return "error"
	}
}

/* =========================================================
   RETURN
   ========================================================= */

// ReturnOutcome is the closed issue, its return record and the fine charged.
type ReturnOutcome struct {
	Issue  loanModel.BookIssueModel
	Return loanModel.BookReturnModel
	Fine   int64
}

// Return closes an outstanding issue held by readerID. It is irreversible:
// a second call fails with ErrAlreadyReturned.
func (s *LoanService) Return(ctx context.Context, issueID, readerID uuid.UUID, conditionNotes string, isDamaged bool) (*ReturnOutcome, error) {
	lg := logging.Ctx(ctx)
	now := s.now()
	today := s.Today()

	var out ReturnOutcome
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issue loanModel.BookIssueModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&issue, "book_issue_id = ?", issueID).Error; err != nil {
			return errs.NotFoundIf(err, "issue "+issueID.String())
		}
		if issue.BookIssueReaderID != readerID {
			return fmt.Errorf("issue %s belongs to another reader: %w", issueID, errs.ErrForbidden)
		}
		if issue.BookIssueIsReturned {
			return fmt.Errorf("issue %s: %w", issueID, errs.ErrAlreadyReturned)
		}

		fine := CalculateFine(issue.DueDate(), today, s.Policy.FinePerDay)
		returnDate := datatypes.Date(today)

		res := tx.Model(&loanModel.BookIssueModel{}).
			Where("book_issue_id = ? AND book_issue_is_returned = ?", issueID, false).
			Updates(map[string]any{
				"book_issue_is_returned": true,
				"book_issue_return_date": returnDate,
				"book_issue_fine_amount": fine,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("issue %s: %w", issueID, errs.ErrAlreadyReturned)
		}

		ret := loanModel.BookReturnModel{
			BookReturnIssueID:        issueID,
			BookReturnReturnedAt:     now.UTC(),
			BookReturnConditionNotes: conditionNotes,
			BookReturnIsDamaged:      isDamaged,
		}
		if err := tx.Create(&ret).Error; err != nil {
			if errs.IsUniqueViolation(err) {
				return fmt.Errorf("issue %s: %w", issueID, errs.ErrAlreadyReturned)
			}
			return err
		}

		if err := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ?", issue.BookIssueBookID).
			UpdateColumn("book_available_copies", gorm.Expr("book_available_copies + 1")).Error; err != nil {
			return err
		}

		issue.BookIssueIsReturned = true
		issue.BookIssueReturnDate = &returnDate
		issue.BookIssueFineAmount = fine
		issue.Return = &ret
		out = ReturnOutcome{Issue: issue, Return: ret, Fine: fine}
		return nil
	})
	if err != nil {
		lg.Warn().Err(err).Str("issue_id", issueID.String()).Msg("[LOANS][RETURN] rejected")
		return nil, err
	}

	metrics.RecordReturn(out.Fine)
	lg.Info().Str("issue_id", issueID.String()).Int64("fine", out.Fine).Bool("damaged", isDamaged).
		Msg("[LOANS][RETURN] ok")
	return &out, nil
}
