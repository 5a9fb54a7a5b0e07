package seeds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "library_backend/internals/features/library/books/model"
	readerModel "library_backend/internals/features/library/readers/model"
	userModel "library_backend/internals/features/users/user/model"
	authService "library_backend/internals/features/users/auth/service"
	"library_backend/internals/testutil"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, c.Genres, 8)
	assert.Len(t, c.Authors, 8)
	assert.Len(t, c.Books, 11)

	titles := make([]string, 0, len(c.Books))
	for _, b := range c.Books {
		titles = append(titles, b.Title)
		assert.Len(t, b.ISBN, 13, b.Title)
	}
	assert.Contains(t, titles, "1984")
}

func TestRunAllSeeds_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	first, err := RunAllSeeds(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, &Result{Genres: 8, Authors: 8, Books: 11, Readers: 4}, first)

	second, err := RunAllSeeds(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, second)

	var books, readers int64
	require.NoError(t, db.Model(&bookModel.BookModel{}).Count(&books).Error)
	require.NoError(t, db.Model(&readerModel.ReaderModel{}).Count(&readers).Error)
	assert.EqualValues(t, 11, books)
	assert.EqualValues(t, 4, readers)

	var orwell bookModel.BookModel
	require.NoError(t, db.Preload("Genres").First(&orwell, "book_title = ?", "1984").Error)
	assert.Len(t, orwell.Genres, 2)
	assert.Equal(t, 4, orwell.BookAvailableCopies)
}

func TestRunAllSeeds_ReaderCredentials(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := RunAllSeeds(context.Background(), db)
	require.NoError(t, err)

	var u userModel.UserModel
	require.NoError(t, db.First(&u, "user_name = ?", "reader1").Error)
	assert.Equal(t, userModel.RoleReader, u.Role)
	assert.True(t, authService.CheckPassword(u.Password, "reader123"))

	var lib userModel.UserModel
	require.NoError(t, db.First(&lib, "user_name = ?", "librarian").Error)
	assert.Equal(t, userModel.RoleLibrarian, lib.Role)
}
