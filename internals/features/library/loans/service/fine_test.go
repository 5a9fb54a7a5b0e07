package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	loanModel "library_backend/internals/features/library/loans/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateFine(t *testing.T) {
	due := day(2024, 3, 10)
	tests := []struct {
		name     string
		returned time.Time
		perDay   int64
		want     int64
	}{
		{"early", day(2024, 3, 1), 10, 0},
		{"on due date", due, 10, 0},
		{"one day late", day(2024, 3, 11), 10, 10},
		{"three days late", day(2024, 3, 13), 10, 30},
		{"across month", day(2024, 4, 1), 10, 220},
		{"clock part ignored", day(2024, 3, 11).Add(23 * time.Hour), 10, 10},
		{"custom rate", day(2024, 3, 12), 25, 50},
		{"zero rate", day(2024, 3, 20), 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateFine(due, tc.returned, tc.perDay)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, CalculateFine(due, tc.returned, tc.perDay))
		})
	}
}

func TestCalculateFine_NeverNegative(t *testing.T) {
	due := day(2024, 6, 15)
	for offset := -40; offset <= 40; offset++ {
		ret := due.AddDate(0, 0, offset)
		got := CalculateFine(due, ret, 10)
		if offset <= 0 {
			assert.Zero(t, got, "offset %d", offset)
		} else {
			assert.Equal(t, int64(offset*10), got, "offset %d", offset)
		}
	}
}

func TestRunningFine(t *testing.T) {
	open := loanModel.BookIssueModel{BookIssueDueDate: datatypes.Date(day(2024, 3, 10))}
	assert.Equal(t, int64(50), RunningFine(open, day(2024, 3, 15), 10))
	assert.Zero(t, RunningFine(open, day(2024, 3, 9), 10))
	assert.Equal(t, 5, DaysOverdue(open, day(2024, 3, 15)))
	assert.Zero(t, DaysOverdue(open, day(2024, 3, 1)))

	closed := open
	closed.BookIssueIsReturned = true
	closed.BookIssueFineAmount = 20
	assert.Equal(t, int64(20), RunningFine(closed, day(2024, 4, 30), 10))
}
