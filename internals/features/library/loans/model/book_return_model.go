// file: internals/features/library/loans/model/book_return_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookReturnModel records the physical hand-back of one issue.
type BookReturnModel struct {
	BookReturnID             uuid.UUID `gorm:"type:uuid;primaryKey;column:book_return_id" json:"book_return_id"`
	BookReturnIssueID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_book_returns_issue;column:book_return_issue_id" json:"book_return_issue_id"`
	BookReturnReturnedAt     time.Time `gorm:"not null;column:book_return_returned_at" json:"book_return_returned_at"`
	BookReturnConditionNotes string    `gorm:"type:text;column:book_return_condition_notes" json:"book_return_condition_notes"`
	BookReturnIsDamaged      bool      `gorm:"not null;column:book_return_is_damaged" json:"book_return_is_damaged"`
}

func (BookReturnModel) TableName() string { return "book_returns" }

func (m *BookReturnModel) BeforeCreate(*gorm.DB) error {
	if m.BookReturnID == uuid.Nil {
		m.BookReturnID = uuid.New()
	}
	return nil
}
