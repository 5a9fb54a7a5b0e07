// file: internals/features/library/loans/model/book_issue_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bookModel "library_backend/internals/features/library/books/model"
	readerModel "library_backend/internals/features/library/readers/model"
)

// BookIssueModel is one loan. Outstanding until returned, then closed for good:
// BookIssueIsReturned is true exactly when BookIssueReturnDate is set.
type BookIssueModel struct {
	BookIssueID         uuid.UUID       `gorm:"type:uuid;primaryKey;column:book_issue_id" json:"book_issue_id"`
	BookIssueBookID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_book_issues_book;column:book_issue_book_id" json:"book_issue_book_id"`
	BookIssueReaderID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_book_issues_reader_open,priority:1;column:book_issue_reader_id" json:"book_issue_reader_id"`
	BookIssueIssuedAt   time.Time       `gorm:"not null;index:idx_book_issues_issued;column:book_issue_issued_at;<-:create" json:"book_issue_issued_at"`
	BookIssueDueDate    datatypes.Date  `gorm:"not null;column:book_issue_due_date" json:"book_issue_due_date"`
	BookIssueReturnDate *datatypes.Date `gorm:"column:book_issue_return_date" json:"book_issue_return_date,omitempty"`
	BookIssueIsReturned bool            `gorm:"not null;index:idx_book_issues_reader_open,priority:2;column:book_issue_is_returned" json:"book_issue_is_returned"`
	BookIssueFineAmount int64           `gorm:"not null;column:book_issue_fine_amount" json:"book_issue_fine_amount"`

	Book   *bookModel.BookModel     `gorm:"foreignKey:BookIssueBookID;references:BookID" json:"book,omitempty"`
	Reader *readerModel.ReaderModel `gorm:"foreignKey:BookIssueReaderID;references:ReaderID" json:"reader,omitempty"`
	Return *BookReturnModel         `gorm:"foreignKey:BookReturnIssueID;references:BookIssueID" json:"return,omitempty"`
}

func (BookIssueModel) TableName() string { return "book_issues" }

func (m *BookIssueModel) BeforeCreate(*gorm.DB) error {
	if m.BookIssueID == uuid.Nil {
		m.BookIssueID = uuid.New()
	}
	return nil
}

func (m BookIssueModel) DueDate() time.Time { return time.Time(m.BookIssueDueDate) }

func (m BookIssueModel) ReturnDate() *time.Time {
	if m.BookIssueReturnDate == nil {
		return nil
	}
	t := time.Time(*m.BookIssueReturnDate)
	return &t
}
