// file: internals/features/library/genres/model/genre_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenreModel struct {
	GenreID          uuid.UUID `gorm:"type:uuid;primaryKey;column:genre_id" json:"genre_id"`
	GenreName        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_genres_name;column:genre_name" json:"genre_name"`
	GenreDescription string    `gorm:"type:text;column:genre_description" json:"genre_description"`

	GenreCreatedAt time.Time `gorm:"autoCreateTime;column:genre_created_at" json:"genre_created_at"`
}

func (GenreModel) TableName() string { return "genres" }

func (m *GenreModel) BeforeCreate(*gorm.DB) error {
	if m.GenreID == uuid.Nil {
		m.GenreID = uuid.New()
	}
	return nil
}
