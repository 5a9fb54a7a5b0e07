package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "library_backend/internals/helpers"
	"library_backend/internals/testutil"
)

func pageOf(page, perPage int) helper.Paging {
	return helper.NewPaging(page, perPage, perPage, 100)
}

func TestReminders_Windows(t *testing.T) {
	e := newLoanEnv(t)
	r := e.fx.Reader("reader1")
	a := e.fx.Author("Jane", "Austen")

	// issued on 2024-03-01, checked on 2024-03-05 with a three day window
	dues := []struct {
		title string
		due   int
	}{
		{"four late", 1},
		{"three late", 2},
		{"one late", 4},
		{"due today", 5},
		{"due on window end", 8},
		{"after window", 9},
	}
	for _, d := range dues {
		b := e.fx.Book(d.title, a, nil, testutil.BookOpts{})
		_, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, d.due))
		require.NoError(t, err)
	}

	e.advance(4)
	rem, err := e.svc.Reminders(e.ctx, r.ReaderID, e.svc.Today())
	require.NoError(t, err)

	upcoming := map[string]bool{}
	for _, is := range rem.Upcoming {
		upcoming[is.Book.BookTitle] = true
	}
	assert.Equal(t, map[string]bool{"due today": true, "due on window end": true}, upcoming)

	overdue := map[string]OverdueIssue{}
	for _, o := range rem.Overdue {
		overdue[o.Issue.Book.BookTitle] = o
	}
	require.Len(t, overdue, 3)
	assert.Equal(t, 4, overdue["four late"].DaysOverdue)
	assert.Equal(t, int64(40), overdue["four late"].RunningFine)
	assert.Equal(t, int64(30), overdue["three late"].RunningFine)
	assert.Equal(t, int64(10), overdue["one late"].RunningFine)

	// running fines are never persisted
	open, err := e.svc.Outstanding(e.ctx, r.ReaderID)
	require.NoError(t, err)
	require.Len(t, open, 6)
	for _, is := range open {
		assert.Zero(t, is.BookIssueFineAmount)
	}
}

func TestReminders_UpcomingInclusiveBounds(t *testing.T) {
	e := newLoanEnv(t)
	r := e.fx.Reader("reader1")
	a := e.fx.Author("Jane", "Austen")

	for _, d := range []int{1, 4, 5} {
		b := e.fx.Book("b", a, nil, testutil.BookOpts{})
		_, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, d))
		require.NoError(t, err)
	}

	rem, err := e.svc.Reminders(e.ctx, r.ReaderID, e.svc.Today())
	require.NoError(t, err)
	assert.Len(t, rem.Upcoming, 2)
	assert.Empty(t, rem.Overdue)
}

func TestScanDueDates(t *testing.T) {
	e := newLoanEnv(t)
	r := e.fx.Reader("reader1")
	a := e.fx.Author("Jane", "Austen")
	for _, d := range []int{2, 3, 20} {
		b := e.fx.Book("b", a, nil, testutil.BookOpts{})
		_, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, d))
		require.NoError(t, err)
	}

	res, err := e.svc.ScanDueDates(e.ctx, day(2024, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, ScanResult{Outstanding: 3, Overdue: 1, DueSoon: 1}, res)
}
