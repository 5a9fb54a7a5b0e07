// file: internals/features/library/readers/model/reader_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "library_backend/internals/features/users/user/model"
)

// ReaderModel is the lending profile of exactly one user.
// ReaderMembershipDate is set on create and never updated.
type ReaderModel struct {
	ReaderID             uuid.UUID       `gorm:"type:uuid;primaryKey;column:reader_id" json:"reader_id"`
	ReaderUserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_readers_user;column:reader_user_id" json:"reader_user_id"`
	ReaderPhone          string          `gorm:"type:varchar(20);column:reader_phone" json:"reader_phone"`
	ReaderAddress        string          `gorm:"type:text;column:reader_address" json:"reader_address"`
	ReaderDateOfBirth    *datatypes.Date `gorm:"column:reader_date_of_birth" json:"reader_date_of_birth,omitempty"`
	ReaderMembershipDate datatypes.Date  `gorm:"not null;column:reader_membership_date;<-:create" json:"reader_membership_date"`
	ReaderIsActive       bool            `gorm:"not null;column:reader_is_active" json:"reader_is_active"`

	ReaderCreatedAt time.Time `gorm:"autoCreateTime;column:reader_created_at" json:"reader_created_at"`
	ReaderUpdatedAt time.Time `gorm:"autoUpdateTime;column:reader_updated_at" json:"reader_updated_at"`

	User *userModel.UserModel `gorm:"foreignKey:ReaderUserID;references:ID" json:"user,omitempty"`
}

func (ReaderModel) TableName() string { return "readers" }

func (m *ReaderModel) BeforeCreate(*gorm.DB) error {
	if m.ReaderID == uuid.Nil {
		m.ReaderID = uuid.New()
	}
	return nil
}
