// file: internals/features/library/stats/service/stats_service.go
package service

import (
	"context"

	"github.com/google/uuid"

	bookDTO "library_backend/internals/features/library/books/dto"
	bookService "library_backend/internals/features/library/books/service"
	loanService "library_backend/internals/features/library/loans/service"
	dto "library_backend/internals/features/library/stats/dto"
)

const (
	homeMostReviewed = 6
	homeNewest       = 6
	popularBooks     = 10
	favoriteGenres   = 5
)

// StatsService assembles the read-only dashboards.
type StatsService struct {
	Catalog *bookService.CatalogService
	Loans   *loanService.LoanService
}

func NewStatsService(catalog *bookService.CatalogService, loans *loanService.LoanService) *StatsService {
	return &StatsService{Catalog: catalog, Loans: loans}
}

func (s *StatsService) Home(ctx context.Context) (*dto.HomeResponse, error) {
	totals, err := s.Catalog.Totals(ctx)
	if err != nil {
		return nil, err
	}
	reviewed, err := s.Catalog.MostReviewed(ctx, homeMostReviewed)
	if err != nil {
		return nil, err
	}
	newest, err := s.Catalog.Newest(ctx, homeNewest)
	if err != nil {
		return nil, err
	}
	return &dto.HomeResponse{
		LibraryTotals: *totals,
		MostReviewed:  bookDTO.ToRankedBookResponses(reviewed),
		Newest:        bookDTO.ToBookResponses(newest),
	}, nil
}

func (s *StatsService) Library(ctx context.Context) (*dto.LibraryStatsResponse, error) {
	totals, err := s.Catalog.Totals(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.Catalog.Popular(ctx, popularBooks)
	if err != nil {
		return nil, err
	}
	return &dto.LibraryStatsResponse{
		LibraryTotals: *totals,
		PopularBooks:  bookDTO.ToRankedBookResponses(popular),
	}, nil
}

// Reader is the personal page: loan counters, favourite genres and
// recommendations.
func (s *StatsService) Reader(ctx context.Context, readerID uuid.UUID) (*dto.ReaderStatsResponse, error) {
	st, err := s.Loans.ReaderStats(ctx, readerID)
	if err != nil {
		return nil, err
	}
	ranked, err := s.Catalog.ReaderGenres(ctx, readerID)
	if err != nil {
		return nil, err
	}
	recs, err := s.Catalog.Recommend(ctx, readerID)
	if err != nil {
		return nil, err
	}
	return &dto.ReaderStatsResponse{
		ReaderLoanStats: *st,
		FavoriteGenres:  dto.ToFavoriteGenres(ranked, favoriteGenres),
		Recommendations: bookDTO.ToBookResponses(recs),
	}, nil
}
