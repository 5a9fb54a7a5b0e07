package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	genreModel "library_backend/internals/features/library/genres/model"
	loanModel "library_backend/internals/features/library/loans/model"
	readerModel "library_backend/internals/features/library/readers/model"
	reviewModel "library_backend/internals/features/library/reviews/model"
	authService "library_backend/internals/features/users/auth/service"
	userModel "library_backend/internals/features/users/user/model"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
	"library_backend/internals/testutil"
)

func newReaderSvc(t *testing.T) (*ReaderService, *testutil.Fixtures) {
	db := testutil.NewTestDB(t)
	svc := NewReaderService(db, time.UTC)
	svc.Now = func() time.Time { return time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC) }
	return svc, testutil.NewFixtures(t, db)
}

func TestCreateWithUser(t *testing.T) {
	svc, _ := newReaderSvc(t)
	ctx := context.Background()

	r, err := svc.CreateWithUser(ctx, NewReader{
		UserName: "reader9", Email: "Reader9@Library.test", Password: "reader123",
		FirstName: "Nine", Phone: " 555-0100 ",
	})
	require.NoError(t, err)
	require.NotNil(t, r.User)
	assert.Equal(t, "reader9@library.test", r.User.Email)
	assert.Equal(t, userModel.RoleReader, r.User.Role)
	assert.True(t, authService.CheckPassword(r.User.Password, "reader123"))
	assert.Equal(t, "555-0100", r.ReaderPhone)

	got, err := svc.Get(ctx, r.ReaderID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", dbtime.FormatDate(time.Time(got.ReaderMembershipDate)))

	_, err = svc.CreateWithUser(ctx, NewReader{UserName: "reader9", Email: "other@library.test", Password: "reader123"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = svc.CreateWithUser(ctx, NewReader{UserName: "short", Email: "s@library.test", Password: "123"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.CreateWithUser(ctx, NewReader{UserName: "boss", Email: "b@library.test", Password: "reader123", Role: "admin"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateProfile(t *testing.T) {
	svc, fx := newReaderSvc(t)
	ctx := context.Background()
	r := fx.Reader("reader1")

	phone := "555-0199"
	dob := time.Date(1990, 7, 4, 0, 0, 0, 0, time.UTC)
	got, err := svc.UpdateProfile(ctx, r.ReaderID, ProfilePatch{Phone: &phone, DateOfBirth: &dob})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", got.ReaderPhone)
	require.NotNil(t, got.ReaderDateOfBirth)
	assert.Equal(t, "1990-07-04", dbtime.FormatDate(time.Time(*got.ReaderDateOfBirth)))
	assert.Equal(t, "2024-01-01", dbtime.FormatDate(time.Time(got.ReaderMembershipDate)))

	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.UpdateProfile(ctx, r.ReaderID, ProfilePatch{DateOfBirth: &future})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestDelete_RestoresCopiesAndCascades(t *testing.T) {
	svc, fx := newReaderSvc(t)
	ctx := context.Background()
	db := svc.DB

	keep := fx.Reader("reader1")
	gone := fx.Reader("reader2")
	b := fx.Book("1984", fx.Author("George", "Orwell"), []genreModel.GenreModel{}, testutil.BookOpts{Copies: testutil.Copies(1)})

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	open := loanModel.BookIssueModel{
		BookIssueBookID: b.BookID, BookIssueReaderID: gone.ReaderID,
		BookIssueIssuedAt: at, BookIssueDueDate: datatypes.Date(at.AddDate(0, 0, 14)),
	}
	require.NoError(t, db.Create(&open).Error)
	require.NoError(t, db.Model(&b).UpdateColumn("book_available_copies", 0).Error)
	require.NoError(t, db.Create(&reviewModel.BookReviewModel{
		BookReviewBookID: b.BookID, BookReviewReaderID: gone.ReaderID, BookReviewRating: 3, BookReviewComment: "meh",
	}).Error)

	require.NoError(t, svc.Delete(ctx, gone.ReaderID))

	assert.Equal(t, 1, fx.StockOf(b.BookID))
	var n int64
	require.NoError(t, db.Model(&loanModel.BookIssueModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&reviewModel.BookReviewModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", gone.ReaderUserID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&readerModel.ReaderModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err := svc.ResolveByUser(ctx, gone.ReaderUserID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	id, err := svc.ResolveByUser(ctx, keep.ReaderUserID)
	require.NoError(t, err)
	assert.Equal(t, keep.ReaderID, id)

	assert.ErrorIs(t, svc.Delete(ctx, gone.ReaderID), errs.ErrNotFound)
}
