// file: internals/features/library/reviews/dto/review_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "library_backend/internals/features/library/reviews/model"
)

type CreateReviewRequest struct {
	Rating  int    `json:"book_review_rating" validate:"required,min=1,max=5"`
	Comment string `json:"book_review_comment" validate:"required,max=2000"`
}

func (r *CreateReviewRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

type ReviewResponse struct {
	BookReviewID        uuid.UUID `json:"book_review_id"`
	BookReviewBookID    uuid.UUID `json:"book_review_book_id"`
	BookReviewRating    int       `json:"book_review_rating"`
	BookReviewComment   string    `json:"book_review_comment"`
	BookReviewCreatedAt time.Time `json:"book_review_created_at"`
	ReaderName          string    `json:"reader_name,omitempty"`
}

func ToReviewResponse(m model.BookReviewModel) ReviewResponse {
	out := ReviewResponse{
		BookReviewID:        m.BookReviewID,
		BookReviewBookID:    m.BookReviewBookID,
		BookReviewRating:    m.BookReviewRating,
		BookReviewComment:   m.BookReviewComment,
		BookReviewCreatedAt: m.BookReviewCreatedAt,
	}
	if m.Reader != nil && m.Reader.User != nil {
		out.ReaderName = m.Reader.User.FullName()
	}
	return out
}

func ToReviewResponses(ms []model.BookReviewModel) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToReviewResponse(m))
	}
	return out
}
