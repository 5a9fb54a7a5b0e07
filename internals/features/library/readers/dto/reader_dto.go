// file: internals/features/library/readers/dto/reader_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "library_backend/internals/features/library/readers/model"
	"library_backend/internals/features/library/readers/service"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
)

/* =========================
   REQUEST
   ========================= */

type CreateReaderRequest struct {
	UserName    string  `json:"user_name" validate:"required,min=3,max=50"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	FirstName   string  `json:"first_name" validate:"max=100"`
	LastName    string  `json:"last_name" validate:"max=100"`
	Role        string  `json:"role" validate:"omitempty,oneof=reader librarian"`
	Phone       string  `json:"reader_phone" validate:"max=20"`
	Address     string  `json:"reader_address"`
	DateOfBirth *string `json:"reader_date_of_birth"`
}

func (r *CreateReaderRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Phone = strings.TrimSpace(r.Phone)
}

func parseDOB(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := dbtime.ParseDate(*s)
	if err != nil {
		return nil, errs.Invalid("reader_date_of_birth", err.Error())
	}
	return &t, nil
}

func (r *CreateReaderRequest) ToInput() (service.NewReader, error) {
	dob, err := parseDOB(r.DateOfBirth)
	if err != nil {
		return service.NewReader{}, err
	}
	return service.NewReader{
		UserName:    r.UserName,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Role:        r.Role,
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: dob,
	}, nil
}

type UpdateProfileRequest struct {
	Phone       *string `json:"reader_phone" validate:"omitempty,max=20"`
	Address     *string `json:"reader_address"`
	DateOfBirth *string `json:"reader_date_of_birth"`
}

func (r *UpdateProfileRequest) ToPatch() (service.ProfilePatch, error) {
	dob, err := parseDOB(r.DateOfBirth)
	if err != nil {
		return service.ProfilePatch{}, err
	}
	return service.ProfilePatch{Phone: r.Phone, Address: r.Address, DateOfBirth: dob}, nil
}

/* =========================
   RESPONSE
   ========================= */

type ReaderResponse struct {
	ReaderID             uuid.UUID `json:"reader_id"`
	UserID               uuid.UUID `json:"user_id"`
	UserName             string    `json:"user_name,omitempty"`
	Email                string    `json:"email,omitempty"`
	FullName             string    `json:"full_name,omitempty"`
	Role                 string    `json:"role,omitempty"`
	ReaderPhone          string    `json:"reader_phone"`
	ReaderAddress        string    `json:"reader_address"`
	ReaderDateOfBirth    *string   `json:"reader_date_of_birth"`
	ReaderMembershipDate string    `json:"reader_membership_date"`
	ReaderIsActive       bool      `json:"reader_is_active"`
}

func ToReaderResponse(m model.ReaderModel) ReaderResponse {
	out := ReaderResponse{
		ReaderID:             m.ReaderID,
		UserID:               m.ReaderUserID,
		ReaderPhone:          m.ReaderPhone,
		ReaderAddress:        m.ReaderAddress,
		ReaderMembershipDate: dbtime.FormatDate(time.Time(m.ReaderMembershipDate)),
		ReaderIsActive:       m.ReaderIsActive,
	}
	if m.ReaderDateOfBirth != nil {
		s := dbtime.FormatDate(time.Time(*m.ReaderDateOfBirth))
		out.ReaderDateOfBirth = &s
	}
	if m.User != nil {
		out.UserName = m.User.UserName
		out.Email = m.User.Email
		out.FullName = m.User.FullName()
		out.Role = m.User.Role
	}
	return out
}
