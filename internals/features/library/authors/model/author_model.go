// file: internals/features/library/authors/model/author_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuthorModel struct {
	AuthorID        uuid.UUID       `gorm:"type:uuid;primaryKey;column:author_id" json:"author_id"`
	AuthorFirstName string          `gorm:"type:varchar(100);not null;column:author_first_name" json:"author_first_name"`
	AuthorLastName  string          `gorm:"type:varchar(100);not null;index:idx_authors_name,priority:1;column:author_last_name" json:"author_last_name"`
	AuthorBirthDate *datatypes.Date `gorm:"column:author_birth_date" json:"author_birth_date,omitempty"`
	AuthorBiography string          `gorm:"type:text;column:author_biography" json:"author_biography"`

	AuthorCreatedAt time.Time `gorm:"autoCreateTime;column:author_created_at" json:"author_created_at"`
	AuthorUpdatedAt time.Time `gorm:"autoUpdateTime;column:author_updated_at" json:"author_updated_at"`
}

func (AuthorModel) TableName() string { return "authors" }

func (m *AuthorModel) BeforeCreate(*gorm.DB) error {
	if m.AuthorID == uuid.Nil {
		m.AuthorID = uuid.New()
	}
	return nil
}

// FullName renders "Last First".
func (m AuthorModel) FullName() string {
	return strings.TrimSpace(m.AuthorLastName + " " + m.AuthorFirstName)
}
