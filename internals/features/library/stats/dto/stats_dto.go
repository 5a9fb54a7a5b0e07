// file: internals/features/library/stats/dto/stats_dto.go
package dto

import (
	"github.com/google/uuid"

	bookDTO "library_backend/internals/features/library/books/dto"
	bookService "library_backend/internals/features/library/books/service"
	loanService "library_backend/internals/features/library/loans/service"
)

type FavoriteGenre struct {
	GenreID   uuid.UUID `json:"genre_id"`
	GenreName string    `json:"genre_name"`
	Loans     int       `json:"loans"`
}

func ToFavoriteGenres(rs []bookService.GenreRank, n int) []FavoriteGenre {
	if n > 0 && len(rs) > n {
		rs = rs[:n]
	}
	out := make([]FavoriteGenre, 0, len(rs))
	for _, r := range rs {
		out = append(out, FavoriteGenre{GenreID: r.Genre.GenreID, GenreName: r.Genre.GenreName, Loans: r.Loans})
	}
	return out
}

// ReaderStatsResponse is the personal statistics page.
type ReaderStatsResponse struct {
	loanService.ReaderLoanStats
	FavoriteGenres  []FavoriteGenre        `json:"favorite_genres"`
	Recommendations []bookDTO.BookResponse `json:"recommendations"`
}

// LibraryStatsResponse is the public statistics page.
type LibraryStatsResponse struct {
	bookService.LibraryTotals
	PopularBooks []bookDTO.RankedBookResponse `json:"popular_books"`
}

// HomeResponse is the public landing page.
type HomeResponse struct {
	bookService.LibraryTotals
	MostReviewed []bookDTO.RankedBookResponse `json:"most_reviewed"`
	Newest       []bookDTO.BookResponse       `json:"newest"`
}
