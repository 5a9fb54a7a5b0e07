// file: internals/features/library/books/dto/book_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	authorDTO "library_backend/internals/features/library/authors/dto"
	model "library_backend/internals/features/library/books/model"
	"library_backend/internals/features/library/books/service"
	genreDTO "library_backend/internals/features/library/genres/dto"
	"library_backend/internals/helpers/errs"
)

/* =========================
   REQUEST
   ========================= */

type CreateBookRequest struct {
	BookTitle           string      `json:"book_title" validate:"required,max=200"`
	BookAuthorID        uuid.UUID   `json:"book_author_id" validate:"required"`
	BookISBN            string      `json:"book_isbn" validate:"required,len=13,numeric"`
	BookPublicationYear int         `json:"book_publication_year" validate:"required,min=1000,max=2100"`
	BookPages           int         `json:"book_pages" validate:"required,min=1"`
	BookDescription     string      `json:"book_description"`
	BookAvailableCopies int         `json:"book_available_copies" validate:"min=0"`
	BookRating          float64     `json:"book_rating" validate:"min=0,max=10"`
	BookGenreIDs        []uuid.UUID `json:"book_genre_ids"`
}

type UpdateBookRequest struct {
	BookTitle           *string      `json:"book_title" validate:"omitempty,min=1,max=200"`
	BookAuthorID        *uuid.UUID   `json:"book_author_id"`
	BookISBN            *string      `json:"book_isbn" validate:"omitempty,len=13,numeric"`
	BookPublicationYear *int         `json:"book_publication_year" validate:"omitempty,min=1000,max=2100"`
	BookPages           *int         `json:"book_pages" validate:"omitempty,min=1"`
	BookDescription     *string      `json:"book_description"`
	BookAvailableCopies *int         `json:"book_available_copies" validate:"omitempty,min=0"`
	BookRating          *float64     `json:"book_rating" validate:"omitempty,min=0,max=10"`
	BookGenreIDs        *[]uuid.UUID `json:"book_genre_ids"`
}

// BookSearchQuery is the query string of GET /books.
type BookSearchQuery struct {
	Title     string   `query:"title"`
	Author    string   `query:"author"`
	GenreID   string   `query:"genre_id"`
	MinYear   *int     `query:"min_year"`
	MaxYear   *int     `query:"max_year"`
	MinRating *float64 `query:"min_rating"`
	SortBy    string   `query:"sort_by"`
}

/* =========================
   NORMALIZER
   ========================= */

func normISBN(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(s))
}

func (r *CreateBookRequest) Normalize() {
	r.BookTitle = strings.TrimSpace(r.BookTitle)
	r.BookISBN = normISBN(r.BookISBN)
	r.BookDescription = strings.TrimSpace(r.BookDescription)
}

func (r *UpdateBookRequest) Normalize() {
	if r.BookTitle != nil {
		v := strings.TrimSpace(*r.BookTitle)
		r.BookTitle = &v
	}
	if r.BookISBN != nil {
		v := normISBN(*r.BookISBN)
		r.BookISBN = &v
	}
	if r.BookDescription != nil {
		v := strings.TrimSpace(*r.BookDescription)
		r.BookDescription = &v
	}
}

/* =========================
   MAPPER
   ========================= */

func (r *CreateBookRequest) ToModel() *model.BookModel {
	return &model.BookModel{
		BookTitle:           r.BookTitle,
		BookAuthorID:        r.BookAuthorID,
		BookISBN:            r.BookISBN,
		BookPublicationYear: r.BookPublicationYear,
		BookPages:           r.BookPages,
		BookDescription:     r.BookDescription,
		BookAvailableCopies: r.BookAvailableCopies,
		BookRating:          r.BookRating,
	}
}

func (r *UpdateBookRequest) ApplyToModel(m *model.BookModel) {
	if r.BookTitle != nil {
		m.BookTitle = *r.BookTitle
	}
	if r.BookAuthorID != nil {
		m.BookAuthorID = *r.BookAuthorID
	}
	if r.BookISBN != nil {
		m.BookISBN = *r.BookISBN
	}
	if r.BookPublicationYear != nil {
		m.BookPublicationYear = *r.BookPublicationYear
	}
	if r.BookPages != nil {
		m.BookPages = *r.BookPages
	}
	if r.BookDescription != nil {
		m.BookDescription = *r.BookDescription
	}
	if r.BookAvailableCopies != nil {
		m.BookAvailableCopies = *r.BookAvailableCopies
	}
	if r.BookRating != nil {
		m.BookRating = *r.BookRating
	}
}

func (q BookSearchQuery) ToFilter() (service.SearchFilter, service.SortKey, error) {
	f := service.SearchFilter{
		Title:     q.Title,
		Author:    q.Author,
		MinYear:   q.MinYear,
		MaxYear:   q.MaxYear,
		MinRating: q.MinRating,
	}
	if g := strings.TrimSpace(q.GenreID); g != "" {
		id, err := uuid.Parse(g)
		if err != nil {
			return f, "", errs.Invalid("genre_id", "is not a valid id")
		}
		f.GenreID = &id
	}
	sort, err := service.ParseSortKey(q.SortBy)
	if err != nil {
		return f, "", err
	}
	return f, sort, f.Validate()
}

/* =========================
   RESPONSE
   ========================= */

type BookResponse struct {
	BookID              uuid.UUID                 `json:"book_id"`
	BookTitle           string                    `json:"book_title"`
	BookISBN            string                    `json:"book_isbn"`
	BookPublicationYear int                       `json:"book_publication_year"`
	BookPages           int                       `json:"book_pages"`
	BookDescription     string                    `json:"book_description,omitempty"`
	BookAvailableCopies int                       `json:"book_available_copies"`
	BookIsAvailable     bool                      `json:"book_is_available"`
	BookRating          float64                   `json:"book_rating"`
	BookCreatedAt       time.Time                 `json:"book_created_at"`
	Author              *authorDTO.AuthorResponse `json:"author,omitempty"`
	Genres              []genreDTO.GenreResponse  `json:"genres,omitempty"`
}

func ToBookResponse(m model.BookModel) BookResponse {
	out := BookResponse{
		BookID:              m.BookID,
		BookTitle:           m.BookTitle,
		BookISBN:            m.BookISBN,
		BookPublicationYear: m.BookPublicationYear,
		BookPages:           m.BookPages,
		BookDescription:     m.BookDescription,
		BookAvailableCopies: m.BookAvailableCopies,
		BookIsAvailable:     m.IsAvailable(),
		BookRating:          m.BookRating,
		BookCreatedAt:       m.BookCreatedAt,
	}
	if m.Author != nil {
		a := authorDTO.ToAuthorResponse(*m.Author)
		out.Author = &a
	}
	if len(m.Genres) > 0 {
		out.Genres = genreDTO.ToGenreResponses(m.Genres)
	}
	return out
}

func ToBookResponses(ms []model.BookModel) []BookResponse {
	out := make([]BookResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToBookResponse(m))
	}
	return out
}

// RankedBookResponse is a book with the count it was ranked by.
type RankedBookResponse struct {
	BookResponse
	Count int64 `json:"count"`
}

func ToRankedBookResponses(rs []service.RankedBook) []RankedBookResponse {
	out := make([]RankedBookResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, RankedBookResponse{BookResponse: ToBookResponse(r.Book), Count: r.Count})
	}
	return out
}
