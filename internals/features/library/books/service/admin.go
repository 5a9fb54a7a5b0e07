package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authorModel "library_backend/internals/features/library/authors/model"
	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	"library_backend/internals/helpers/errs"
	"library_backend/internals/logging"
)

func checkAuthorTx(tx *gorm.DB, authorID uuid.UUID) error {
	var n int64
	if err := tx.Model(&authorModel.AuthorModel{}).Where("author_id = ?", authorID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.Invalid("author_id", "unknown author")
	}
	return nil
}

func loadGenresTx(tx *gorm.DB, ids []uuid.UUID) ([]genreModel.GenreModel, error) {
	uniq := make([]uuid.UUID, 0, len(ids))
	seen := map[uuid.UUID]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return []genreModel.GenreModel{}, nil
	}
	var gs []genreModel.GenreModel
	if err := tx.Where("genre_id IN ?", uniq).Find(&gs).Error; err != nil {
		return nil, err
	}
	if len(gs) != len(uniq) {
		return nil, errs.Invalid("genre_ids", "contains an unknown genre")
	}
	return gs, nil
}

// validateBook checks the stored invariants of a book regardless of caller.
func validateBook(b *bookModel.BookModel) error {
	ve := &errs.ValidationError{}
	if strings.TrimSpace(b.BookTitle) == "" {
		ve.Add("book_title", "is required")
	}
	if n := len(b.BookISBN); n == 0 || n > 13 {
		ve.Add("book_isbn", "must be 1 to 13 characters")
	}
	if b.BookPublicationYear < bookModel.MinPublicationYear || b.BookPublicationYear > bookModel.MaxPublicationYear {
		ve.Add("book_publication_year", fmt.Sprintf("must be between %d and %d", bookModel.MinPublicationYear, bookModel.MaxPublicationYear))
	}
	if b.BookPages < 1 {
		ve.Add("book_pages", "must be at least 1")
	}
	if b.BookAvailableCopies < 0 {
		ve.Add("book_available_copies", "must not be negative")
	}
	if b.BookRating < 0 || b.BookRating > bookModel.MaxRating {
		ve.Add("book_rating", fmt.Sprintf("must be between 0 and %d", bookModel.MaxRating))
	}
	return ve.OrNil()
}

// bookChanges lists the columns patch actually touched.
func bookChanges(before, after bookModel.BookModel) map[string]any {
	out := map[string]any{}
	if after.BookTitle != before.BookTitle {
		out["book_title"] = after.BookTitle
	}
	if after.BookAuthorID != before.BookAuthorID {
		out["book_author_id"] = after.BookAuthorID
	}
	if after.BookISBN != before.BookISBN {
		out["book_isbn"] = after.BookISBN
	}
	if after.BookPublicationYear != before.BookPublicationYear {
		out["book_publication_year"] = after.BookPublicationYear
	}
	if after.BookPages != before.BookPages {
		out["book_pages"] = after.BookPages
	}
	if after.BookDescription != before.BookDescription {
		out["book_description"] = after.BookDescription
	}
	if after.BookAvailableCopies != before.BookAvailableCopies {
		out["book_available_copies"] = after.BookAvailableCopies
	}
	if after.BookRating != before.BookRating {
		out["book_rating"] = after.BookRating
	}
	return out
}

// CreateBook inserts b and links it to genreIDs.
func (s *CatalogService) CreateBook(ctx context.Context, b *bookModel.BookModel, genreIDs []uuid.UUID) error {
	if err := validateBook(b); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkAuthorTx(tx, b.BookAuthorID); err != nil {
			return err
		}
		gs, err := loadGenresTx(tx, genreIDs)
		if err != nil {
			return err
		}
		if err := tx.Omit("Genres", "Author").Create(b).Error; err != nil {
			return errs.ConflictIf(err, "book with isbn "+b.BookISBN)
		}
		if len(gs) > 0 {
			if err := tx.Model(b).Association("Genres").Replace(gs); err != nil {
				return err
			}
		}
		b.Genres = gs
		return nil
	})
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Str("book_id", b.BookID.String()).Str("isbn", b.BookISBN).Msg("[CATALOG][CREATE_BOOK] ok")
	return nil
}

// UpdateBook applies patch to the stored book. genreIDs nil keeps the links.
// The row is locked and only the columns patch changed are written.
func (s *CatalogService) UpdateBook(ctx context.Context, bookID uuid.UUID, patch func(*bookModel.BookModel), genreIDs *[]uuid.UUID) (*bookModel.BookModel, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b bookModel.BookModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "book_id = ?", bookID).Error; err != nil {
			return errs.NotFoundIf(err, "book "+bookID.String())
		}
		before := b
		patch(&b)
		if err := validateBook(&b); err != nil {
			return err
		}
		if b.BookAuthorID != before.BookAuthorID {
			if err := checkAuthorTx(tx, b.BookAuthorID); err != nil {
				return err
			}
		}
		if changes := bookChanges(before, b); len(changes) > 0 {
			if err := tx.Model(&bookModel.BookModel{}).
				Where("book_id = ?", bookID).
				Updates(changes).Error; err != nil {
				return errs.ConflictIf(err, "book with isbn "+b.BookISBN)
			}
		}
		if genreIDs != nil {
			gs, err := loadGenresTx(tx, *genreIDs)
			if err != nil {
				return err
			}
			assoc := tx.Model(&b).Association("Genres")
			if len(gs) == 0 {
				err = assoc.Clear()
			} else {
				err = assoc.Replace(gs)
			}
			if err != nil {
				return fmt.Errorf("replace genres: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, bookID)
}
