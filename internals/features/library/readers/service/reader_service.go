// file: internals/features/library/readers/service/reader_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookModel "library_backend/internals/features/library/books/model"
	loanModel "library_backend/internals/features/library/loans/model"
	readerModel "library_backend/internals/features/library/readers/model"
	reviewModel "library_backend/internals/features/library/reviews/model"
	authService "library_backend/internals/features/users/auth/service"
	userModel "library_backend/internals/features/users/user/model"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/helpers/errs"
	"library_backend/internals/logging"
)

type ReaderService struct {
	DB       *gorm.DB
	Location *time.Location
	Now      func() time.Time
}

func NewReaderService(db *gorm.DB, loc *time.Location) *ReaderService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReaderService{DB: db, Location: loc, Now: time.Now}
}

// NewReader is the input of CreateWithUser.
type NewReader struct {
	UserName    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string
	Phone       string
	Address     string
	DateOfBirth *time.Time
}

// CreateWithUser creates the credential user and its reader profile in one
// transaction. Membership starts today.
func (s *ReaderService) CreateWithUser(ctx context.Context, in NewReader) (*readerModel.ReaderModel, error) {
	hash, err := authService.HashPassword(in.Password)
	if err != nil {
		return nil, errs.Invalid("password", err.Error())
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = userModel.RoleReader
	}
	if role != userModel.RoleReader && role != userModel.RoleLibrarian {
		return nil, errs.Invalid("role", "must be one of reader, librarian")
	}

	u := userModel.UserModel{
		UserName:  strings.TrimSpace(in.UserName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      role,
		IsActive:  true,
	}
	r := readerModel.ReaderModel{
		ReaderPhone:          strings.TrimSpace(in.Phone),
		ReaderAddress:        strings.TrimSpace(in.Address),
		ReaderMembershipDate: datatypes.Date(dbtime.Today(s.Now(), s.Location)),
		ReaderIsActive:       true,
	}
	if in.DateOfBirth != nil {
		d := datatypes.Date(dbtime.DateOf(*in.DateOfBirth))
		r.ReaderDateOfBirth = &d
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return errs.ConflictIf(err, "user "+u.UserName)
		}
		r.ReaderUserID = u.ID
		if err := tx.Omit("User").Create(&r).Error; err != nil {
			return errs.ConflictIf(err, "reader for user "+u.UserName)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.User = &u
	logging.Ctx(ctx).Info().
		Str("reader_id", r.ReaderID.String()).
		Str("user_name", u.UserName).
		Msg("[READERS][CREATE] ok")
	return &r, nil
}

// Get loads a reader with its user.
func (s *ReaderService) Get(ctx context.Context, readerID uuid.UUID) (*readerModel.ReaderModel, error) {
	var r readerModel.ReaderModel
	if err := s.DB.WithContext(ctx).Preload("User").First(&r, "reader_id = ?", readerID).Error; err != nil {
		return nil, errs.NotFoundIf(err, "reader "+readerID.String())
	}
	return &r, nil
}

// ProfilePatch holds the fields a reader may change about themselves.
type ProfilePatch struct {
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
}

func (s *ReaderService) UpdateProfile(ctx context.Context, readerID uuid.UUID, p ProfilePatch) (*readerModel.ReaderModel, error) {
	updates := map[string]any{}
	if p.Phone != nil {
		updates["reader_phone"] = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		updates["reader_address"] = strings.TrimSpace(*p.Address)
	}
	if p.DateOfBirth != nil {
		dob := dbtime.DateOf(*p.DateOfBirth)
		if dob.After(dbtime.Today(s.Now(), s.Location)) {
			return nil, errs.Invalid("date_of_birth", "must not be in the future")
		}
		updates["reader_date_of_birth"] = datatypes.Date(dob)
	}

	if len(updates) > 0 {
		res := s.DB.WithContext(ctx).Model(&readerModel.ReaderModel{}).
			Where("reader_id = ?", readerID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("reader %s: %w", readerID, errs.ErrNotFound)
		}
	}
	return s.Get(ctx, readerID)
}

// Delete removes a reader and its user. Copies of books still out are
// put back on the shelf first.
func (s *ReaderService) Delete(ctx context.Context, readerID uuid.UUID) error {
	restored := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r readerModel.ReaderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&r, "reader_id = ?", readerID).Error; err != nil {
			return errs.NotFoundIf(err, "reader "+readerID.String())
		}

		var open []loanModel.BookIssueModel
		if err := tx.Where("book_issue_reader_id = ? AND book_issue_is_returned = ?", readerID, false).
			Find(&open).Error; err != nil {
			return err
		}
		for _, is := range open {
			if err := tx.Model(&bookModel.BookModel{}).
				Where("book_id = ?", is.BookIssueBookID).
				UpdateColumn("book_available_copies", gorm.Expr("book_available_copies + 1")).Error; err != nil {
				return fmt.Errorf("restore copy of %s: %w", is.BookIssueBookID, err)
			}
		}
		restored = len(open)

		issues := tx.Model(&loanModel.BookIssueModel{}).Select("book_issue_id").Where("book_issue_reader_id = ?", readerID)
		if err := tx.Where("book_return_issue_id IN (?)", issues).Delete(&loanModel.BookReturnModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_issue_reader_id = ?", readerID).Delete(&loanModel.BookIssueModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_review_reader_id = ?", readerID).Delete(&reviewModel.BookReviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&r).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", r.ReaderUserID).Delete(&userModel.UserModel{}).Error
	})
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Str("reader_id", readerID.String()).
		Int("copies_restored", restored).
		Msg("[READERS][DELETE] ok")
	return nil
}

// ResolveByUser returns the reader id owned by userID.
func (s *ReaderService) ResolveByUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var r readerModel.ReaderModel
	err := s.DB.WithContext(ctx).Select("reader_id").First(&r, "reader_user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("reader for user %s: %w", userID, errs.ErrNotFound)
	}
	return r.ReaderID, err
}
