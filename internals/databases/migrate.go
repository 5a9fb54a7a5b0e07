package database

import (
	"fmt"

	"gorm.io/gorm"

	authorModel "library_backend/internals/features/library/authors/model"
	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	loanModel "library_backend/internals/features/library/loans/model"
	readerModel "library_backend/internals/features/library/readers/model"
	reviewModel "library_backend/internals/features/library/reviews/model"
	userModel "library_backend/internals/features/users/user/model"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authorModel.AuthorModel{},
		&genreModel.GenreModel{},
		&bookModel.BookModel{},
		&bookModel.BookGenreModel{},
		&readerModel.ReaderModel{},
		&loanModel.BookIssueModel{},
		&loanModel.BookReturnModel{},
		&reviewModel.BookReviewModel{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&bookModel.BookModel{}, "Genres", &bookModel.BookGenreModel{}); err != nil {
		return fmt.Errorf("setup book_genres: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
