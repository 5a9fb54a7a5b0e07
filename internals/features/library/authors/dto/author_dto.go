// file: internals/features/library/authors/dto/author_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "library_backend/internals/features/library/authors/model"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
)

/* =========================
   REQUEST
   ========================= */

type CreateAuthorRequest struct {
	AuthorFirstName string  `json:"author_first_name" validate:"required,max=100"`
	AuthorLastName  string  `json:"author_last_name" validate:"required,max=100"`
	AuthorBirthDate *string `json:"author_birth_date"` // YYYY-MM-DD
	AuthorBiography string  `json:"author_biography"`
}

type UpdateAuthorRequest struct {
	AuthorFirstName *string `json:"author_first_name" validate:"omitempty,min=1,max=100"`
	AuthorLastName  *string `json:"author_last_name" validate:"omitempty,min=1,max=100"`
	AuthorBirthDate *string `json:"author_birth_date"`
	AuthorBiography *string `json:"author_biography"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (r *CreateAuthorRequest) Normalize() {
	r.AuthorFirstName = strings.TrimSpace(r.AuthorFirstName)
	r.AuthorLastName = strings.TrimSpace(r.AuthorLastName)
	r.AuthorBiography = strings.TrimSpace(r.AuthorBiography)
	r.AuthorBirthDate = trimPtr(r.AuthorBirthDate)
}

func (r *UpdateAuthorRequest) Normalize() {
	r.AuthorFirstName = trimPtr(r.AuthorFirstName)
	r.AuthorLastName = trimPtr(r.AuthorLastName)
	r.AuthorBiography = trimPtr(r.AuthorBiography)
	r.AuthorBirthDate = trimPtr(r.AuthorBirthDate)
}

// parseBirthDate accepts "" as "unset".
func parseBirthDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDate(*s)
	if err != nil {
		return nil, errs.Invalid("author_birth_date", err.Error())
	}
	d := datatypes.Date(t)
	return &d, nil
}

/* =========================
   MAPPER
   ========================= */

func (r *CreateAuthorRequest) ToModel() (*model.AuthorModel, error) {
	bd, err := parseBirthDate(r.AuthorBirthDate)
	if err != nil {
		return nil, err
	}
	return &model.AuthorModel{
		AuthorFirstName: r.AuthorFirstName,
		AuthorLastName:  r.AuthorLastName,
		AuthorBirthDate: bd,
		AuthorBiography: r.AuthorBiography,
	}, nil
}

func (r *UpdateAuthorRequest) ApplyToModel(m *model.AuthorModel) error {
	if r.AuthorFirstName != nil {
		m.AuthorFirstName = *r.AuthorFirstName
	}
	if r.AuthorLastName != nil {
		m.AuthorLastName = *r.AuthorLastName
	}
	if r.AuthorBiography != nil {
		m.AuthorBiography = *r.AuthorBiography
	}
	if r.AuthorBirthDate != nil {
		bd, err := parseBirthDate(r.AuthorBirthDate)
		if err != nil {
			return err
		}
		m.AuthorBirthDate = bd
	}
	return nil
}

/* =========================
   RESPONSE
   ========================= */

type AuthorResponse struct {
	AuthorID        uuid.UUID `json:"author_id"`
	AuthorFirstName string    `json:"author_first_name"`
	AuthorLastName  string    `json:"author_last_name"`
	AuthorFullName  string    `json:"author_full_name"`
	AuthorBirthDate *string   `json:"author_birth_date,omitempty"`
	AuthorBiography string    `json:"author_biography,omitempty"`
	AuthorBookCount *int64    `json:"author_book_count,omitempty"`
	AuthorCreatedAt time.Time `json:"author_created_at"`
}

func ToAuthorResponse(m model.AuthorModel) AuthorResponse {
	var bd *string
	if m.AuthorBirthDate != nil {
		s := dbtime.FormatDate(time.Time(*m.AuthorBirthDate))
		bd = &s
	}
	return AuthorResponse{
		AuthorID:        m.AuthorID,
		AuthorFirstName: m.AuthorFirstName,
		AuthorLastName:  m.AuthorLastName,
		AuthorFullName:  m.FullName(),
		AuthorBirthDate: bd,
		AuthorBiography: m.AuthorBiography,
		AuthorCreatedAt: m.AuthorCreatedAt,
	}
}
