// file: internals/features/library/books/service/search.go
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authorModel "library_backend/internals/features/library/authors/model"
	bookModel "library_backend/internals/features/library/books/model"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/errs"
)

type SortKey string

const (
	SortTitle  SortKey = "title"  // asc
	SortRating SortKey = "rating" // desc
	SortYear   SortKey = "year"   // desc
)

// ParseSortKey maps "" to SortTitle.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortTitle:
		return SortTitle, nil
	case SortRating:
		return SortRating, nil
	case SortYear:
		return SortYear, nil
	}
	return "", errs.Invalid("sort_by", "must be one of title, rating, year")
}

// SearchFilter is ANDed; zero values are ignored.
type SearchFilter struct {
	Title     string
	Author    string
	GenreID   *uuid.UUID
	MinYear   *int
	MaxYear   *int
	MinRating *float64
}

func (f SearchFilter) Validate() error {
	ve := &errs.ValidationError{}
	checkYear := func(field string, y *int) {
		if y != nil && (*y < bookModel.MinPublicationYear || *y > bookModel.MaxPublicationYear) {
			ve.Add(field, "must be between 1000 and 2100")
		}
	}
	checkYear("min_year", f.MinYear)
	checkYear("max_year", f.MaxYear)
	if f.MinYear != nil && f.MaxYear != nil && *f.MinYear > *f.MaxYear {
		ve.Add("min_year", "must not be greater than max_year")
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > bookModel.MaxRating) {
		ve.Add("min_rating", "must be between 0 and 10")
	}
	return ve.OrNil()
}

// likePattern lowercases s and escapes LIKE wildcards for ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

const likeEscape = ` LIKE ? ESCAPE '\'`

func (s *CatalogService) filtered(ctx context.Context, f SearchFilter) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&bookModel.BookModel{})

	if strings.TrimSpace(f.Title) != "" {
		q = q.Where("LOWER(books.book_title)"+likeEscape, likePattern(f.Title))
	}
	if strings.TrimSpace(f.Author) != "" {
		p := likePattern(f.Author)
		sub := s.DB.Model(&authorModel.AuthorModel{}).
			Select("author_id").
			Where("LOWER(author_first_name)"+likeEscape+" OR LOWER(author_last_name)"+likeEscape, p, p)
		q = q.Where("books.book_author_id IN (?)", sub)
	}
	if f.GenreID != nil {
		sub := s.DB.Model(&bookModel.BookGenreModel{}).Select("book_id").Where("genre_id = ?", *f.GenreID)
		q = q.Where("books.book_id IN (?)", sub)
	}
	if f.MinYear != nil {
		q = q.Where("books.book_publication_year >= ?", *f.MinYear)
	}
	if f.MaxYear != nil {
		q = q.Where("books.book_publication_year <= ?", *f.MaxYear)
	}
	if f.MinRating != nil {
		q = q.Where("books.book_rating >= ?", *f.MinRating)
	}
	return q
}

// orderClause always ends in title then id so pages never overlap.
func orderClause(sort SortKey) string {
	switch sort {
	case SortRating:
		return "books.book_rating DESC, books.book_title ASC, books.book_id ASC"
	case SortYear:
		return "books.book_publication_year DESC, books.book_title ASC, books.book_id ASC"
	default:
		return "books.book_title ASC, books.book_id ASC"
	}
}

// Search returns one page of matching books plus the total match count.
func (s *CatalogService) Search(ctx context.Context, f SearchFilter, sort SortKey, p helper.Paging) ([]bookModel.BookModel, int64, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}
	if sort == "" {
		sort = SortTitle
	}
	if _, err := ParseSortKey(string(sort)); err != nil {
		return nil, 0, err
	}
	p = s.clampPage(p)

	var total int64
	if err := s.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	books := []bookModel.BookModel{}
	if total == 0 {
		return books, 0, nil
	}
	err := s.filtered(ctx, f).
		Preload("Author").
		Preload("Genres").
		Order(orderClause(sort)).
		Limit(p.Limit).Offset(p.Offset).
		Find(&books).Error
	return books, total, err
}

func (s *CatalogService) clampPage(p helper.Paging) helper.Paging {
	return helper.NewPaging(p.Page, p.PerPage, s.DefaultPerPage, s.MaxPerPage)
}

// Each streams every match in Search order, one batch per query,
// stopping at the first error fn returns.
func (s *CatalogService) Each(ctx context.Context, f SearchFilter, sort SortKey, batchSize int, fn func(bookModel.BookModel) error) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if sort == "" {
		sort = SortTitle
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	for offset := 0; ; offset += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		var batch []bookModel.BookModel
		if err := s.filtered(ctx, f).
			Preload("Author").
			Order(orderClause(sort)).
			Limit(batchSize).Offset(offset).
			Find(&batch).Error; err != nil {
			return err
		}
		for _, b := range batch {
			if err := fn(b); err != nil {
				return err
			}
		}
		if len(batch) < batchSize {
			return nil
		}
	}
}
