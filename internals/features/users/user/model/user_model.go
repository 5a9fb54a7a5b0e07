// file: internals/features/users/user/model/user_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleReader    = "reader"
	RoleLibrarian = "librarian"
)

// UserModel is the credential owner behind a reader or librarian.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserName  string    `gorm:"size:50;not null;uniqueIndex:uq_users_user_name;column:user_name" json:"user_name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uq_users_email;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"size:100;column:first_name" json:"first_name"`
	LastName  string    `gorm:"size:100;column:last_name" json:"last_name"`
	Role      string    `gorm:"type:varchar(20);not null;column:role" json:"role"`
	IsActive  bool      `gorm:"not null;column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleReader
	}
	return nil
}

// FullName joins first and last name, falling back to the user name.
func (u UserModel) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.UserName
	}
	return full
}
