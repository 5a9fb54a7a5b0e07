package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	authorModel "library_backend/internals/features/library/authors/model"
	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	readerModel "library_backend/internals/features/library/readers/model"
	userModel "library_backend/internals/features/users/user/model"
)

// Fixtures inserts catalog rows with sensible defaults.
type Fixtures struct {
	t  testing.TB
	db *gorm.DB
	n  int
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) seq() int {
	f.n++
	return f.n
}

func (f *Fixtures) Author(first, last string) authorModel.AuthorModel {
	f.t.Helper()
	a := authorModel.AuthorModel{AuthorFirstName: first, AuthorLastName: last}
	require.NoError(f.t, f.db.Create(&a).Error)
	return a
}

func (f *Fixtures) Genre(name string) genreModel.GenreModel {
	f.t.Helper()
	g := genreModel.GenreModel{GenreName: name}
	require.NoError(f.t, f.db.Create(&g).Error)
	return g
}

// BookOpts overrides Book defaults; zero values keep the default.
type BookOpts struct {
	Year    int
	Copies  *int
	Rating  float64
	Created time.Time
}

func Copies(n int) *int { return &n }

func (f *Fixtures) Book(title string, author authorModel.AuthorModel, genres []genreModel.GenreModel, o BookOpts) bookModel.BookModel {
	f.t.Helper()
	n := f.seq()
	b := bookModel.BookModel{
		BookTitle:           title,
		BookAuthorID:        author.AuthorID,
		BookISBN:            isbn(n),
		BookPublicationYear: 1950,
		BookPages:           100,
		BookAvailableCopies: 1,
		BookRating:          o.Rating,
		Genres:              genres,
	}
	if o.Year != 0 {
		b.BookPublicationYear = o.Year
	}
	if o.Copies != nil {
		b.BookAvailableCopies = *o.Copies
	}
	if !o.Created.IsZero() {
		b.BookCreatedAt = o.Created
	}
	require.NoError(f.t, f.db.Create(&b).Error)
	return b
}

func (f *Fixtures) Reader(userName string) readerModel.ReaderModel {
	f.t.Helper()
	u := userModel.UserModel{
		UserName: userName,
		Email:    userName + "@library.test",
		Password: "x",
		Role:     userModel.RoleReader,
		IsActive: true,
	}
	require.NoError(f.t, f.db.Create(&u).Error)

	r := readerModel.ReaderModel{
		ReaderUserID:         u.ID,
		ReaderMembershipDate: datatypes.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		ReaderIsActive:       true,
	}
	require.NoError(f.t, f.db.Create(&r).Error)
	r.User = &u
	return r
}

// StockOf reads the current stock of a book.
func (f *Fixtures) StockOf(bookID uuid.UUID) int {
	f.t.Helper()
	var b bookModel.BookModel
	require.NoError(f.t, f.db.First(&b, "book_id = ?", bookID).Error)
	return b.BookAvailableCopies
}

func isbn(n int) string {
	return "978" + pad(n, 10)
}

func pad(n, width int) string {
	s := []byte{}
	for i := 0; i < width; i++ {
		s = append([]byte{byte('0' + n%10)}, s...)
		n /= 10
	}
	return string(s)
}
