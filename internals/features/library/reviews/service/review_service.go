// file: internals/features/library/reviews/service/review_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "library_backend/internals/features/library/books/model"
	reviewModel "library_backend/internals/features/library/reviews/model"
	"library_backend/internals/helpers/errs"
	"library_backend/internals/logging"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService { return &ReviewService{DB: db} }

// Create stores a review. A reader may review the same book more than once.
func (s *ReviewService) Create(ctx context.Context, bookID, readerID uuid.UUID, rating int, comment string) (*reviewModel.BookReviewModel, error) {
	comment = strings.TrimSpace(comment)
	ve := &errs.ValidationError{}
	if rating < MinRating || rating > MaxRating {
		ve.Add("rating", "must be between 1 and 5")
	}
	if comment == "" {
		ve.Add("comment", "is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&bookModel.BookModel{}).Where("book_id = ?", bookID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("book %s: %w", bookID, errs.ErrNotFound)
	}

	rv := &reviewModel.BookReviewModel{
		BookReviewBookID:   bookID,
		BookReviewReaderID: readerID,
		BookReviewRating:   rating,
		BookReviewComment:  comment,
	}
	if err := s.DB.WithContext(ctx).Create(rv).Error; err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().
		Str("book_id", bookID.String()).
		Str("reader_id", readerID.String()).
		Int("rating", rating).
		Msg("[REVIEWS][CREATE] ok")
	return rv, nil
}

// ListForBook returns the newest reviews of a book with their authors.
func (s *ReviewService) ListForBook(ctx context.Context, bookID uuid.UUID, limit int) ([]reviewModel.BookReviewModel, error) {
	out := []reviewModel.BookReviewModel{}
	q := s.DB.WithContext(ctx).
		Preload("Reader.User").
		Where("book_review_book_id = ?", bookID).
		Order("book_review_created_at DESC, book_review_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
