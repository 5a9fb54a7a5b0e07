package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	loanModel "library_backend/internals/features/library/loans/model"
	readerModel "library_backend/internals/features/library/readers/model"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
)

func (s *LoanService) ensureReader(tx *gorm.DB, readerID uuid.UUID) error {
	var n int64
	if err := tx.Model(&readerModel.ReaderModel{}).Where("reader_id = ?", readerID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFoundIf(gorm.ErrRecordNotFound, "reader "+readerID.String())
	}
	return nil
}

// Outstanding lists the reader's open issues, earliest due first.
func (s *LoanService) Outstanding(ctx context.Context, readerID uuid.UUID) ([]loanModel.BookIssueModel, error) {
	db := s.DB.WithContext(ctx)
	if err := s.ensureReader(db, readerID); err != nil {
		return nil, err
	}
	var rows []loanModel.BookIssueModel
	err := db.
		Where("book_issue_reader_id = ? AND book_issue_is_returned = ?", readerID, false).
		Preload("Book.Author").
		Order("book_issue_due_date ASC, book_issue_issued_at ASC, book_issue_id ASC").
		Find(&rows).Error
	return rows, err
}

// History pages through every issue of the reader, newest first.
func (s *LoanService) History(ctx context.Context, readerID uuid.UUID, p helper.Paging) ([]loanModel.BookIssueModel, int64, error) {
	db := s.DB.WithContext(ctx)
	if err := s.ensureReader(db, readerID); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(&loanModel.BookIssueModel{}).
		Where("book_issue_reader_id = ?", readerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []loanModel.BookIssueModel
	err := db.
		Where("book_issue_reader_id = ?", readerID).
		Preload("Book.Author").
		Preload("Return").
		Order("book_issue_issued_at DESC, book_issue_id DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error
	return rows, total, err
}

// OverdueIssue is an outstanding issue past its due date.
type OverdueIssue struct {
	Issue       loanModel.BookIssueModel
	DaysOverdue int
	RunningFine int64
}

type Reminders struct {
	Today    time.Time
	Upcoming []loanModel.BookIssueModel
	Overdue  []OverdueIssue
}

// Reminders splits the reader's open issues into due-soon
// ([today, today+ReminderDaysBefore]) and overdue (before today).
func (s *LoanService) Reminders(ctx context.Context, readerID uuid.UUID, today time.Time) (*Reminders, error) {
	open, err := s.Outstanding(ctx, readerID)
	if err != nil {
		return nil, err
	}

	today = dbtime.DateOf(today)
	out := &Reminders{
		Today:    today,
		Upcoming: []loanModel.BookIssueModel{},
		Overdue:  []OverdueIssue{},
	}
	for _, is := range open {
		switch w := s.window(is.DueDate(), today); w {
		case windowOverdue:
			out.Overdue = append(out.Overdue, OverdueIssue{
				Issue:       is,
				DaysOverdue: DaysOverdue(is, today),
				RunningFine: RunningFine(is, today, s.Policy.FinePerDay),
			})
		case windowDueSoon:
			out.Upcoming = append(out.Upcoming, is)
		}
	}
	return out, nil
}

type dueWindow int

const (
	windowLater dueWindow = iota
	windowDueSoon
	windowOverdue
)

func (s *LoanService) window(due, today time.Time) dueWindow {
	due = dbtime.DateOf(due)
	switch {
	case due.Before(today):
		return windowOverdue
	case !due.After(dbtime.AddDays(today, s.Policy.ReminderDaysBefore)):
		return windowDueSoon
	default:
		return windowLater
	}
}

// ReaderLoanStats are the personal counters of the statistics page.
type ReaderLoanStats struct {
	TotalIssues   int64 `json:"total_issues"`
	ReturnedBooks int64 `json:"returned_books"`
	CurrentIssues int64 `json:"current_issues"`
	FinesTotal    int64 `json:"fines_total"`
}

func (s *LoanService) ReaderStats(ctx context.Context, readerID uuid.UUID) (*ReaderLoanStats, error) {
	db := s.DB.WithContext(ctx)
	if err := s.ensureReader(db, readerID); err != nil {
		return nil, err
	}

	var rows []struct {
		IsReturned bool  `gorm:"column:book_issue_is_returned"`
		Cnt        int64 `gorm:"column:cnt"`
		Fines      int64 `gorm:"column:fines"`
	}
	if err := db.Model(&loanModel.BookIssueModel{}).
		Select("book_issue_is_returned, COUNT(*) AS cnt, COALESCE(SUM(book_issue_fine_amount), 0) AS fines").
		Where("book_issue_reader_id = ?", readerID).
		Group("book_issue_is_returned").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	st := &ReaderLoanStats{}
	for _, r := range rows {
		st.TotalIssues += r.Cnt
		st.FinesTotal += r.Fines
		if r.IsReturned {
			st.ReturnedBooks += r.Cnt
		} else {
			st.CurrentIssues += r.Cnt
		}
	}
	return st, nil
}
