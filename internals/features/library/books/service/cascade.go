package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authorModel "library_backend/internals/features/library/authors/model"
	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	loanModel "library_backend/internals/features/library/loans/model"
	reviewModel "library_backend/internals/features/library/reviews/model"
	"library_backend/internals/helpers/errs"
	"library_backend/internals/logging"
)

/* =========================================================
   Cascading deletes. Children go first, all in one tx.
========================================================= */

func deleteBooksTx(tx *gorm.DB, bookIDs []uuid.UUID) error {
	if len(bookIDs) == 0 {
		return nil
	}
	issues := tx.Model(&loanModel.BookIssueModel{}).Select("book_issue_id").Where("book_issue_book_id IN ?", bookIDs)

	steps := []struct {
		name string
		run  func() error
	}{
		{"returns", func() error {
			return tx.Where("book_return_issue_id IN (?)", issues).Delete(&loanModel.BookReturnModel{}).Error
		}},
		{"issues", func() error {
			return tx.Where("book_issue_book_id IN ?", bookIDs).Delete(&loanModel.BookIssueModel{}).Error
		}},
		{"reviews", func() error {
			return tx.Where("book_review_book_id IN ?", bookIDs).Delete(&reviewModel.BookReviewModel{}).Error
		}},
		{"genre links", func() error {
			return tx.Where("book_id IN ?", bookIDs).Delete(&bookModel.BookGenreModel{}).Error
		}},
		{"books", func() error {
			return tx.Where("book_id IN ?", bookIDs).Delete(&bookModel.BookModel{}).Error
		}},
	}
	for _, st := range steps {
		if err := st.run(); err != nil {
			return fmt.Errorf("delete %s: %w", st.name, err)
		}
	}
	return nil
}

// DeleteBook removes a book with its issues, returns, reviews and genre links.
func (s *CatalogService) DeleteBook(ctx context.Context, bookID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b bookModel.BookModel
		if err := tx.Select("book_id").First(&b, "book_id = ?", bookID).Error; err != nil {
			return errs.NotFoundIf(err, "book "+bookID.String())
		}
		if err := deleteBooksTx(tx, []uuid.UUID{bookID}); err != nil {
			return err
		}
		logging.Ctx(ctx).Info().Str("book_id", bookID.String()).Msg("[CATALOG][DELETE_BOOK] ok")
		return nil
	})
}

// DeleteAuthor removes an author and every book they wrote.
func (s *CatalogService) DeleteAuthor(ctx context.Context, authorID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a authorModel.AuthorModel
		if err := tx.First(&a, "author_id = ?", authorID).Error; err != nil {
			return errs.NotFoundIf(err, "author "+authorID.String())
		}
		var bookIDs []uuid.UUID
		if err := tx.Model(&bookModel.BookModel{}).
			Where("book_author_id = ?", authorID).
			Pluck("book_id", &bookIDs).Error; err != nil {
			return err
		}
		if err := deleteBooksTx(tx, bookIDs); err != nil {
			return err
		}
		if err := tx.Delete(&a).Error; err != nil {
			return err
		}
		logging.Ctx(ctx).Info().
			Str("author_id", authorID.String()).
			Int("books", len(bookIDs)).
			Msg("[CATALOG][DELETE_AUTHOR] ok")
		return nil
	})
}

// DeleteGenre removes a genre and its book links. Books stay.
func (s *CatalogService) DeleteGenre(ctx context.Context, genreID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g genreModel.GenreModel
		if err := tx.First(&g, "genre_id = ?", genreID).Error; err != nil {
			return errs.NotFoundIf(err, "genre "+genreID.String())
		}
		if err := tx.Where("genre_id = ?", genreID).Delete(&bookModel.BookGenreModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&g).Error; err != nil {
			return err
		}
		logging.Ctx(ctx).Info().Str("genre_id", genreID.String()).Msg("[CATALOG][DELETE_GENRE] ok")
		return nil
	})
}

