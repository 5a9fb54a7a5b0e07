package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	loanModel "library_backend/internals/features/library/loans/model"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
	"library_backend/internals/testutil"
)

type loanEnv struct {
	db    *gorm.DB
	svc   *LoanService
	fx    *testutil.Fixtures
	clock time.Time
	ctx   context.Context
}

func newLoanEnv(t *testing.T) *loanEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	env := &loanEnv{
		db:    db,
		fx:    testutil.NewFixtures(t, db),
		clock: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		ctx:   context.Background(),
	}
	env.svc = NewLoanService(db, DefaultPolicy())
	env.svc.Now = func() time.Time { return env.clock }
	return env
}

func (e *loanEnv) advance(days int) { e.clock = e.clock.AddDate(0, 0, days) }

func (e *loanEnv) book(t *testing.T, title string, copies int) bookModel.BookModel {
	a := e.fx.Author("George", "Orwell")
	return e.fx.Book(title, a, []genreModel.GenreModel{}, testutil.BookOpts{Copies: testutil.Copies(copies)})
}

func (e *loanEnv) countIssues(t *testing.T) int64 {
	var n int64
	require.NoError(t, e.db.Model(&loanModel.BookIssueModel{}).Count(&n).Error)
	return n
}

func TestIssue_DecrementsCopies(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "1984", 2)
	r := e.fx.Reader("reader1")

	due := e.svc.SuggestedDueDate(e.svc.Today())
	issue, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, due)
	require.NoError(t, err)

	assert.False(t, issue.BookIssueIsReturned)
	assert.Nil(t, issue.BookIssueReturnDate)
	assert.Zero(t, issue.BookIssueFineAmount)
	assert.Equal(t, day(2024, 3, 15), issue.DueDate())
	assert.Equal(t, e.clock, issue.BookIssueIssuedAt)
	assert.Equal(t, 1, e.fx.StockOf(b.BookID))
}

func TestIssue_ZeroCopies_IsUnavailableWithoutStateChange(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "Dune", 0)
	r := e.fx.Reader("reader1")

	_, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnavailable))

	assert.Equal(t, 0, e.fx.StockOf(b.BookID))
	assert.Zero(t, e.countIssues(t))
}

func TestIssue_Preconditions(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "Emma", 1)
	r := e.fx.Reader("reader1")

	_, err := e.svc.Issue(e.ctx, uuid.New(), r.ReaderID, day(2024, 3, 10))
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.svc.Issue(e.ctx, b.BookID, uuid.New(), day(2024, 3, 10))
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 2, 29))
	assert.ErrorIs(t, err, errs.ErrValidation)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "due_date")

	// due today is allowed
	_, err = e.svc.Issue(e.ctx, b.BookID, r.ReaderID, e.svc.Today())
	assert.NoError(t, err)

	assert.Equal(t, 0, e.fx.StockOf(b.BookID))
	assert.Equal(t, int64(1), e.countIssues(t))
}

func TestIssue_LimitOnlyWhenEnforced(t *testing.T) {
	e := newLoanEnv(t)
	e.svc.Policy.MaxBooksPerReader = 1
	b := e.book(t, "Emma", 5)
	r := e.fx.Reader("reader1")

	_, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 10))
	require.NoError(t, err)
	_, err = e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 10))
	require.NoError(t, err, "limit is inert by default")

	e.svc.Policy.EnforceMaxBooks = true
	_, err = e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 10))
	assert.ErrorIs(t, err, errs.ErrLimitReached)
	assert.Equal(t, 3, e.fx.StockOf(b.BookID))
}

func TestReturn_RoundTrip(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "1984", 3)
	r := e.fx.Reader("reader1")

	issue, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 10))
	require.NoError(t, err)
	require.Equal(t, 2, e.fx.StockOf(b.BookID))

	out, err := e.svc.Return(e.ctx, issue.BookIssueID, r.ReaderID, "fine condition", false)
	require.NoError(t, err)
	assert.Zero(t, out.Fine)
	assert.Equal(t, 3, e.fx.StockOf(b.BookID))

	var stored loanModel.BookIssueModel
	require.NoError(t, e.db.First(&stored, "book_issue_id = ?", issue.BookIssueID).Error)
	assert.True(t, stored.BookIssueIsReturned)
	require.NotNil(t, stored.ReturnDate())
	assert.Equal(t, day(2024, 3, 1), dbtime.DateOf(*stored.ReturnDate()))

	var returns int64
	require.NoError(t, e.db.Model(&loanModel.BookReturnModel{}).
		Where("book_return_issue_id = ?", issue.BookIssueID).Count(&returns).Error)
	assert.Equal(t, int64(1), returns)

	_, err = e.svc.Return(e.ctx, issue.BookIssueID, r.ReaderID, "", false)
	assert.ErrorIs(t, err, errs.ErrAlreadyReturned)
	assert.Equal(t, 3, e.fx.StockOf(b.BookID))
}

func TestReturn_Errors(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "1984", 1)
	owner := e.fx.Reader("reader1")
	other := e.fx.Reader("reader2")

	issue, err := e.svc.Issue(e.ctx, b.BookID, owner.ReaderID, day(2024, 3, 10))
	require.NoError(t, err)

	_, err = e.svc.Return(e.ctx, uuid.New(), owner.ReaderID, "", false)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.svc.Return(e.ctx, issue.BookIssueID, other.ReaderID, "", false)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, 0, e.fx.StockOf(b.BookID))
}

// copies=1: A borrows, B is turned away, A returns three days late.
func TestScenario_LastCopyAndLateFine(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "1984", 1)
	a := e.fx.Reader("reader_a")
	bReader := e.fx.Reader("reader_b")

	due := day(2024, 3, 5)
	issue, err := e.svc.Issue(e.ctx, b.BookID, a.ReaderID, due)
	require.NoError(t, err)
	assert.Equal(t, 0, e.fx.StockOf(b.BookID))

	_, err = e.svc.Issue(e.ctx, b.BookID, bReader.ReaderID, due)
	assert.ErrorIs(t, err, errs.ErrUnavailable)

	e.clock = time.Date(2024, 3, 8, 16, 30, 0, 0, time.UTC)
	out, err := e.svc.Return(e.ctx, issue.BookIssueID, a.ReaderID, "coffee stain", true)
	require.NoError(t, err)

	assert.Equal(t, int64(30), out.Fine)
	assert.Equal(t, int64(30), out.Issue.BookIssueFineAmount)
	assert.True(t, out.Return.BookReturnIsDamaged)
	assert.Equal(t, "coffee stain", out.Return.BookReturnConditionNotes)
	assert.Equal(t, 1, e.fx.StockOf(b.BookID))

	var stored loanModel.BookIssueModel
	require.NoError(t, e.db.First(&stored, "book_issue_id = ?", issue.BookIssueID).Error)
	assert.Equal(t, int64(30), stored.BookIssueFineAmount)
}

func TestIssue_ConcurrentLastCopy(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "1984", 1)
	readers := []uuid.UUID{e.fx.Reader("r1").ReaderID, e.fx.Reader("r2").ReaderID, e.fx.Reader("r3").ReaderID}

	var wg sync.WaitGroup
	results := make([]error, len(readers))
	for i, rid := range readers {
		wg.Add(1)
		go func(i int, rid uuid.UUID) {
			defer wg.Done()
			_, results[i] = e.svc.Issue(e.ctx, b.BookID, rid, day(2024, 3, 10))
		}(i, rid)
	}
	wg.Wait()

	ok := 0
	for _, err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrUnavailable)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 0, e.fx.StockOf(b.BookID))
	assert.Equal(t, int64(1), e.countIssues(t))
}

func TestAvailableCopies_NeverNegative(t *testing.T) {
	e := newLoanEnv(t)
	b := e.book(t, "Solaris", 2)
	r := e.fx.Reader("reader1")

	var open []uuid.UUID
	// issue, issue, issue(fails), return, issue, return, return, return(fails)
	steps := []string{"i", "i", "i", "r", "i", "r", "r", "r"}
	for _, st := range steps {
		switch st {
		case "i":
			is, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 10))
			if err == nil {
				open = append(open, is.BookIssueID)
			} else {
				assert.ErrorIs(t, err, errs.ErrUnavailable)
			}
		case "r":
			if len(open) == 0 {
				continue
			}
			_, err := e.svc.Return(e.ctx, open[0], r.ReaderID, "", false)
			require.NoError(t, err)
			open = open[1:]
		}
		stock := e.fx.StockOf(b.BookID)
		assert.GreaterOrEqual(t, stock, 0)
		assert.Equal(t, 2-len(open), stock)
	}

	var rows []loanModel.BookIssueModel
	require.NoError(t, e.db.Find(&rows).Error)
	for _, is := range rows {
		assert.Equal(t, is.BookIssueIsReturned, is.BookIssueReturnDate != nil)
	}
}

func TestHistory_NewestFirstAndPaged(t *testing.T) {
	e := newLoanEnv(t)
	r := e.fx.Reader("reader1")
	a := e.fx.Author("Leo", "Tolstoy")
	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		b := e.fx.Book(title, a, nil, testutil.BookOpts{})
		_, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 4, 1))
		require.NoError(t, err)
		e.clock = e.clock.Add(time.Hour)
	}

	rows, total, err := e.svc.History(e.ctx, r.ReaderID, pageOf(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Third", rows[0].Book.BookTitle)
	assert.Equal(t, "Second", rows[1].Book.BookTitle)

	rows, _, err = e.svc.History(e.ctx, r.ReaderID, pageOf(2, 2))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "First", rows[0].Book.BookTitle)

	_, _, err = e.svc.History(e.ctx, uuid.New(), pageOf(1, 2))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestReaderStats(t *testing.T) {
	e := newLoanEnv(t)
	r := e.fx.Reader("reader1")
	b := e.book(t, "1984", 3)

	first, err := e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 2))
	require.NoError(t, err)
	_, err = e.svc.Issue(e.ctx, b.BookID, r.ReaderID, day(2024, 3, 10))
	require.NoError(t, err)

	e.advance(3)
	_, err = e.svc.Return(e.ctx, first.BookIssueID, r.ReaderID, "", false)
	require.NoError(t, err)

	st, err := e.svc.ReaderStats(e.ctx, r.ReaderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.TotalIssues)
	assert.Equal(t, int64(1), st.ReturnedBooks)
	assert.Equal(t, int64(1), st.CurrentIssues)
	assert.Equal(t, int64(20), st.FinesTotal)
}
