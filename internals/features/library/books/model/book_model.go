// file: internals/features/library/books/model/book_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authorModel "library_backend/internals/features/library/authors/model"
	genreModel "library_backend/internals/features/library/genres/model"
)

const (
	MinPublicationYear = 1000
	MaxPublicationYear = 2100
	MaxRating          = 10
)

// BookModel. BookAvailableCopies is only changed by the loan service
// and by a librarian setting stock explicitly.
type BookModel struct {
	BookID              uuid.UUID `gorm:"type:uuid;primaryKey;column:book_id" json:"book_id"`
	BookTitle           string    `gorm:"type:varchar(200);not null;index:idx_books_title;column:book_title" json:"book_title"`
	BookAuthorID        uuid.UUID `gorm:"type:uuid;not null;index:idx_books_author;column:book_author_id" json:"book_author_id"`
	BookISBN            string    `gorm:"type:varchar(13);not null;uniqueIndex:uq_books_isbn;column:book_isbn" json:"book_isbn"`
	BookPublicationYear int       `gorm:"not null;index:idx_books_year;check:chk_books_year,book_publication_year BETWEEN 1000 AND 2100;column:book_publication_year" json:"book_publication_year"`
	BookPages           int       `gorm:"not null;check:chk_books_pages,book_pages >= 1;column:book_pages" json:"book_pages"`
	BookDescription     string    `gorm:"type:text;column:book_description" json:"book_description"`
	BookAvailableCopies int       `gorm:"not null;check:chk_books_available_copies,book_available_copies >= 0;column:book_available_copies" json:"book_available_copies"`
	BookRating          float64   `gorm:"type:numeric(4,2);not null;check:chk_books_rating,book_rating BETWEEN 0 AND 10;column:book_rating" json:"book_rating"`

	BookCreatedAt time.Time `gorm:"autoCreateTime;index:idx_books_created;column:book_created_at" json:"book_created_at"`
	BookUpdatedAt time.Time `gorm:"autoUpdateTime;column:book_updated_at" json:"book_updated_at"`

	Author *authorModel.AuthorModel `gorm:"foreignKey:BookAuthorID;references:AuthorID" json:"author,omitempty"`
	Genres []genreModel.GenreModel  `gorm:"many2many:book_genres;foreignKey:BookID;joinForeignKey:BookID;references:GenreID;joinReferences:GenreID" json:"genres,omitempty"`
}

func (BookModel) TableName() string { return "books" }

func (m *BookModel) BeforeCreate(*gorm.DB) error {
	if m.BookID == uuid.Nil {
		m.BookID = uuid.New()
	}
	return nil
}

// IsAvailable reports whether a copy can be issued right now.
func (m BookModel) IsAvailable() bool { return m.BookAvailableCopies > 0 }

// BookGenreModel is the join row of books.Genres.
type BookGenreModel struct {
	BookID  uuid.UUID `gorm:"type:uuid;primaryKey;column:book_id"`
	GenreID uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_book_genres_genre;column:genre_id"`
}

func (BookGenreModel) TableName() string { return "book_genres" }
