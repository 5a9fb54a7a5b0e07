// file: internals/features/library/reviews/model/book_review_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	readerModel "library_backend/internals/features/library/readers/model"
)

type BookReviewModel struct {
	BookReviewID       uuid.UUID `gorm:"type:uuid;primaryKey;column:book_review_id" json:"book_review_id"`
	BookReviewBookID   uuid.UUID `gorm:"type:uuid;not null;index:idx_book_reviews_book;column:book_review_book_id" json:"book_review_book_id"`
	BookReviewReaderID uuid.UUID `gorm:"type:uuid;not null;index:idx_book_reviews_reader;column:book_review_reader_id" json:"book_review_reader_id"`
	BookReviewRating   int       `gorm:"not null;column:book_review_rating" json:"book_review_rating"`
	BookReviewComment  string    `gorm:"type:text;not null;column:book_review_comment" json:"book_review_comment"`

	BookReviewCreatedAt time.Time `gorm:"autoCreateTime;column:book_review_created_at" json:"book_review_created_at"`

	Reader *readerModel.ReaderModel `gorm:"foreignKey:BookReviewReaderID;references:ReaderID" json:"reader,omitempty"`
}

func (BookReviewModel) TableName() string { return "book_reviews" }

func (m *BookReviewModel) BeforeCreate(*gorm.DB) error {
	if m.BookReviewID == uuid.Nil {
		m.BookReviewID = uuid.New()
	}
	return nil
}
