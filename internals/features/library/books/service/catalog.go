package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authorModel "library_backend/internals/features/library/authors/model"
	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	readerModel "library_backend/internals/features/library/readers/model"
	reviewModel "library_backend/internals/features/library/reviews/model"
	"library_backend/internals/helpers/errs"
)

// CatalogService answers read-only questions about the collection.
type CatalogService struct {
	DB *gorm.DB

	DefaultPerPage int
	MaxPerPage     int

	RecommendLimit     int
	RecommendTopGenres int
}

func NewCatalogService(db *gorm.DB, recommendLimit, topGenres int) *CatalogService {
	if recommendLimit <= 0 {
		recommendLimit = 8
	}
	if topGenres <= 0 {
		topGenres = 5
	}
	return &CatalogService{
		DB:                 db,
		DefaultPerPage:     12,
		MaxPerPage:         100,
		RecommendLimit:     recommendLimit,
		RecommendTopGenres: topGenres,
	}
}

// Get loads a book with its author and genres.
func (s *CatalogService) Get(ctx context.Context, bookID uuid.UUID) (*bookModel.BookModel, error) {
	var b bookModel.BookModel
	if err := s.DB.WithContext(ctx).
		Preload("Author").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genre_name ASC") }).
		First(&b, "book_id = ?", bookID).Error; err != nil {
		return nil, errs.NotFoundIf(err, "book "+bookID.String())
	}
	return &b, nil
}

// Similar returns up to n other books sharing at least one genre with bookID.
func (s *CatalogService) Similar(ctx context.Context, bookID uuid.UUID, n int) ([]bookModel.BookModel, error) {
	genresOf := s.DB.Model(&bookModel.BookGenreModel{}).Select("genre_id").Where("book_id = ?", bookID)
	inGenres := s.DB.Model(&bookModel.BookGenreModel{}).Select("book_id").Where("genre_id IN (?)", genresOf)

	out := []bookModel.BookModel{}
	err := s.DB.WithContext(ctx).
		Where("book_id IN (?) AND book_id <> ?", inGenres, bookID).
		Preload("Author").
		Order("book_rating DESC, book_title ASC, book_id ASC").
		Limit(n).
		Find(&out).Error
	return out, err
}

// RankedBook is a book with the count it was ranked by.
type RankedBook struct {
	Book  bookModel.BookModel
	Count int64
}

type rankedID struct {
	BookID uuid.UUID `gorm:"column:book_id"`
	Cnt    int64     `gorm:"column:cnt"`
}

// Popular ranks books by how often they were issued.
func (s *CatalogService) Popular(ctx context.Context, n int) ([]RankedBook, error) {
	var ids []rankedID
	if err := s.DB.WithContext(ctx).Table("books").
		Select("books.book_id, COUNT(book_issues.book_issue_id) AS cnt").
		Joins("LEFT JOIN book_issues ON book_issues.book_issue_book_id = books.book_id").
		Group("books.book_id, books.book_title").
		Order("cnt DESC, books.book_title ASC, books.book_id ASC").
		Limit(n).
		Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("popular books: %w", err)
	}
	return s.loadRanked(ctx, ids)
}

// MostReviewed ranks books by review count, then rating.
func (s *CatalogService) MostReviewed(ctx context.Context, n int) ([]RankedBook, error) {
	var ids []rankedID
	if err := s.DB.WithContext(ctx).Table("books").
		Select("books.book_id, COUNT(book_reviews.book_review_id) AS cnt").
		Joins("LEFT JOIN book_reviews ON book_reviews.book_review_book_id = books.book_id").
		Group("books.book_id, books.book_title, books.book_rating").
		Order("cnt DESC, books.book_rating DESC, books.book_title ASC, books.book_id ASC").
		Limit(n).
		Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("most reviewed books: %w", err)
	}
	return s.loadRanked(ctx, ids)
}

func (s *CatalogService) loadRanked(ctx context.Context, ids []rankedID) ([]RankedBook, error) {
	out := make([]RankedBook, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]uuid.UUID, 0, len(ids))
	for _, r := range ids {
		keys = append(keys, r.BookID)
	}

	var books []bookModel.BookModel
	if err := s.DB.WithContext(ctx).Preload("Author").
		Where("book_id IN ?", keys).Find(&books).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]bookModel.BookModel, len(books))
	for _, b := range books {
		byID[b.BookID] = b
	}
	for _, r := range ids {
		if b, ok := byID[r.BookID]; ok {
			out = append(out, RankedBook{Book: b, Count: r.Cnt})
		}
	}
	return out, nil
}

// Newest returns the n most recently added books.
func (s *CatalogService) Newest(ctx context.Context, n int) ([]bookModel.BookModel, error) {
	out := []bookModel.BookModel{}
	err := s.DB.WithContext(ctx).
		Preload("Author").
		Order("book_created_at DESC, book_id ASC").
		Limit(n).
		Find(&out).Error
	return out, err
}

type LibraryTotals struct {
	Books   int64 `json:"total_books"`
	Authors int64 `json:"total_authors"`
	Genres  int64 `json:"total_genres"`
	Readers int64 `json:"total_readers"`
}

func (s *CatalogService) Totals(ctx context.Context) (*LibraryTotals, error) {
	db := s.DB.WithContext(ctx)
	t := &LibraryTotals{}
	for _, c := range []struct {
		model any
		dst   *int64
	}{
		{&bookModel.BookModel{}, &t.Books},
		{&authorModel.AuthorModel{}, &t.Authors},
		{&genreModel.GenreModel{}, &t.Genres},
		{&readerModel.ReaderModel{}, &t.Readers},
	} {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return t, nil
}

// RatingSummary is the average of reader reviews, 0 without reviews.
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"review_count"`
}

func (s *CatalogService) ReviewSummary(ctx context.Context, bookID uuid.UUID) (RatingSummary, error) {
	var row struct {
		Avg *float64 `gorm:"column:avg"`
		Cnt int64    `gorm:"column:cnt"`
	}
	err := s.DB.WithContext(ctx).Model(&reviewModel.BookReviewModel{}).
		Select("AVG(book_review_rating) AS avg, COUNT(*) AS cnt").
		Where("book_review_book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, err
	}
	sum := RatingSummary{Count: row.Cnt}
	if row.Avg != nil {
		sum.Average = *row.Avg
	}
	return sum, nil
}
