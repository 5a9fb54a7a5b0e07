package service

import (
	"time"

	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/helpers/dbtime"
)

// CalculateFine charges finePerDay for every whole day returnDate is past dueDate.
func CalculateFine(dueDate, returnDate time.Time, finePerDay int64) int64 {
	days := dbtime.DaysBetween(dueDate, returnDate)
	if days <= 0 || finePerDay <= 0 {
		return 0
	}
	return int64(days) * finePerDay
}

// RunningFine is the fine an outstanding issue would carry if returned today.
// Closed issues report their persisted fine. Nothing is written.
func RunningFine(issue loanModel.BookIssueModel, today time.Time, finePerDay int64) int64 {
	if issue.BookIssueIsReturned {
		return issue.BookIssueFineAmount
	}
	return CalculateFine(issue.DueDate(), today, finePerDay)
}

// DaysOverdue is 0 for issues not yet due.
func DaysOverdue(issue loanModel.BookIssueModel, today time.Time) int {
	d := dbtime.DaysBetween(issue.DueDate(), today)
	if d < 0 {
		return 0
	}
	return d
}
