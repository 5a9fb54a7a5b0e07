// file: internals/features/library/genres/dto/genre_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	model "library_backend/internals/features/library/genres/model"
)

type CreateGenreRequest struct {
	GenreName        string `json:"genre_name" validate:"required,max=100"`
	GenreDescription string `json:"genre_description"`
}

type UpdateGenreRequest struct {
	GenreName        *string `json:"genre_name" validate:"omitempty,min=1,max=100"`
	GenreDescription *string `json:"genre_description"`
}

func (r *CreateGenreRequest) Normalize() {
	r.GenreName = strings.TrimSpace(r.GenreName)
	r.GenreDescription = strings.TrimSpace(r.GenreDescription)
}

func (r *UpdateGenreRequest) Normalize() {
	if r.GenreName != nil {
		v := strings.TrimSpace(*r.GenreName)
		r.GenreName = &v
	}
	if r.GenreDescription != nil {
		v := strings.TrimSpace(*r.GenreDescription)
		r.GenreDescription = &v
	}
}

func (r *CreateGenreRequest) ToModel() *model.GenreModel {
	return &model.GenreModel{
		GenreName:        r.GenreName,
		GenreDescription: r.GenreDescription,
	}
}

func (r *UpdateGenreRequest) ApplyToModel(m *model.GenreModel) {
	if r.GenreName != nil {
		m.GenreName = *r.GenreName
	}
	if r.GenreDescription != nil {
		m.GenreDescription = *r.GenreDescription
	}
}

type GenreResponse struct {
	GenreID          uuid.UUID `json:"genre_id"`
	GenreName        string    `json:"genre_name"`
	GenreDescription string    `json:"genre_description,omitempty"`
	GenreBookCount   *int64    `json:"genre_book_count,omitempty"`
}

func ToGenreResponse(m model.GenreModel) GenreResponse {
	return GenreResponse{
		GenreID:          m.GenreID,
		GenreName:        m.GenreName,
		GenreDescription: m.GenreDescription,
	}
}

func ToGenreResponses(ms []model.GenreModel) []GenreResponse {
	out := make([]GenreResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToGenreResponse(m))
	}
	return out
}
