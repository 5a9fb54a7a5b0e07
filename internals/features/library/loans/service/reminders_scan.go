package service

import (
	"context"
	"time"

	"gorm.io/datatypes"

	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/helpers/dbtime"
)

// ScanResult summarizes every open issue in the library.
type ScanResult struct {
	Outstanding int
	Overdue     int
	DueSoon     int
}

// ScanDueDates classifies all outstanding issues against today.
func (s *LoanService) ScanDueDates(ctx context.Context, today time.Time) (ScanResult, error) {
	var dues []datatypes.Date
	if err := s.DB.WithContext(ctx).
		Model(&loanModel.BookIssueModel{}).
		Where("book_issue_is_returned = ?", false).
		Pluck("book_issue_due_date", &dues).Error; err != nil {
		return ScanResult{}, err
	}

	today = dbtime.DateOf(today)
	res := ScanResult{Outstanding: len(dues)}
	for _, d := range dues {
		switch s.window(time.Time(d), today) {
		case windowOverdue:
			res.Overdue++
		case windowDueSoon:
			res.DueSoon++
		}
	}
	return res, nil
}
