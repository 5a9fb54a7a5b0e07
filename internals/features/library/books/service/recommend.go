package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	loanModel "library_backend/internals/features/library/loans/model"
	readerModel "library_backend/internals/features/library/readers/model"
	"library_backend/internals/helpers/errs"
)

// GenreRank is one genre in a reader's borrowing history.
type GenreRank struct {
	Genre         genreModel.GenreModel
	Loans         int
	FirstBorrowed time.Time
}

// RankGenres counts loans per genre over issues (Book.Genres preloaded).
// Order: loans desc, first borrowed earliest, genre id.
func RankGenres(issues []loanModel.BookIssueModel) []GenreRank {
	byID := map[uuid.UUID]*GenreRank{}
	for _, is := range issues {
		if is.Book == nil {
			continue
		}
		for _, g := range is.Book.Genres {
			r, ok := byID[g.GenreID]
			if !ok {
				r = &GenreRank{Genre: g, FirstBorrowed: is.BookIssueIssuedAt}
				byID[g.GenreID] = r
			}
			r.Loans++
			if is.BookIssueIssuedAt.Before(r.FirstBorrowed) {
				r.FirstBorrowed = is.BookIssueIssuedAt
			}
		}
	}

	out := make([]GenreRank, 0, len(byID))
	for _, r := range byID {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Loans != b.Loans {
			return a.Loans > b.Loans
		}
		if !a.FirstBorrowed.Equal(b.FirstBorrowed) {
			return a.FirstBorrowed.Before(b.FirstBorrowed)
		}
		return a.Genre.GenreID.String() < b.Genre.GenreID.String()
	})
	return out
}

// ReaderGenres ranks the genres readerID has borrowed.
func (s *CatalogService) ReaderGenres(ctx context.Context, readerID uuid.UUID) ([]GenreRank, error) {
	var issues []loanModel.BookIssueModel
	if err := s.DB.WithContext(ctx).
		Preload("Book.Genres").
		Where("book_issue_reader_id = ?", readerID).
		Order("book_issue_issued_at ASC").
		Find(&issues).Error; err != nil {
		return nil, err
	}
	return RankGenres(issues), nil
}

// Recommend suggests available books from the reader's favourite genres,
// skipping books the reader has out right now. Without any borrowed genre
// it falls back to any available books.
func (s *CatalogService) Recommend(ctx context.Context, readerID uuid.UUID) ([]bookModel.BookModel, error) {
	db := s.DB.WithContext(ctx)

	var n int64
	if err := db.Model(&readerModel.ReaderModel{}).Where("reader_id = ?", readerID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("reader %s: %w", readerID, errs.ErrNotFound)
	}

	ranked, err := s.ReaderGenres(ctx, readerID)
	if err != nil {
		return nil, err
	}
	if len(ranked) > s.RecommendTopGenres {
		ranked = ranked[:s.RecommendTopGenres]
	}
	genreIDs := make([]uuid.UUID, 0, len(ranked))
	for _, r := range ranked {
		genreIDs = append(genreIDs, r.Genre.GenreID)
	}

	outstanding := s.DB.Model(&loanModel.BookIssueModel{}).
		Select("book_issue_book_id").
		Where("book_issue_reader_id = ? AND book_issue_is_returned = ?", readerID, false)

	q := db.Model(&bookModel.BookModel{}).
		Where("book_available_copies > 0").
		Where("book_id NOT IN (?)", outstanding)
	if len(genreIDs) > 0 {
		inGenres := s.DB.Model(&bookModel.BookGenreModel{}).Select("book_id").Where("genre_id IN ?", genreIDs)
		q = q.Where("book_id IN (?)", inGenres)
	}

	out := []bookModel.BookModel{}
	err = q.Preload("Author").
		Order("book_rating DESC, book_title ASC, book_id ASC").
		Limit(s.RecommendLimit).
		Find(&out).Error
	return out, err
}
