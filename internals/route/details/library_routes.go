package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	authorRoute "library_backend/internals/features/library/authors/route"
	bookRoute "library_backend/internals/features/library/books/route"
	bookService "library_backend/internals/features/library/books/service"
	genreRoute "library_backend/internals/features/library/genres/route"
	loanRoute "library_backend/internals/features/library/loans/route"
	loanService "library_backend/internals/features/library/loans/service"
	readerRoute "library_backend/internals/features/library/readers/route"
	readerService "library_backend/internals/features/library/readers/service"
	reviewRoute "library_backend/internals/features/library/reviews/route"
	reviewService "library_backend/internals/features/library/reviews/service"
	statsRoute "library_backend/internals/features/library/stats/route"
	statsService "library_backend/internals/features/library/stats/service"
)

// LibraryServices is shared by every library route group.
type LibraryServices struct {
	DB      *gorm.DB
	Catalog *bookService.CatalogService
	Loans   *loanService.LoanService
	Readers *readerService.ReaderService
	Reviews *reviewService.ReviewService
	Stats   *statsService.StatsService
}

func NewLibraryServices(db *gorm.DB, cfg configs.LibraryConfig) *LibraryServices {
	catalog := bookService.NewCatalogService(db, cfg.RecommendLimit, cfg.RecommendTopGenres)
	loans := loanService.NewLoanService(db, loanService.PolicyFromConfig(cfg))
	return &LibraryServices{
		DB:      db,
		Catalog: catalog,
		Loans:   loans,
		Readers: readerService.NewReaderService(db, cfg.Location()),
		Reviews: reviewService.NewReviewService(db),
		Stats:   statsService.NewStatsService(catalog, loans),
	}
}

// LibraryPublicRoutes: /api/public
func LibraryPublicRoutes(r fiber.Router, s *LibraryServices) {
	statsRoute.StatsPublicRoutes(r, s.Stats)
	bookRoute.BookPublicRoutes(r, s.DB, s.Catalog)
	authorRoute.AuthorPublicRoutes(r, s.DB, s.Catalog)
	genreRoute.GenrePublicRoutes(r, s.DB, s.Catalog)
}

// LibraryUserRoutes: /api/u, reader already resolved
func LibraryUserRoutes(r fiber.Router, s *LibraryServices) {
	readerRoute.ReaderUserRoutes(r, s.DB, s.Readers, s.Loans)
	loanRoute.LoanUserRoutes(r, s.Loans)
	reviewRoute.ReviewUserRoutes(r, s.Reviews)
	statsRoute.StatsUserRoutes(r, s.Stats)
}

// LibraryAdminRoutes: /api/a, librarian only
func LibraryAdminRoutes(r fiber.Router, s *LibraryServices) {
	bookRoute.BookAdminRoutes(r, s.DB, s.Catalog)
	authorRoute.AuthorAdminRoutes(r, s.DB, s.Catalog)
	genreRoute.GenreAdminRoutes(r, s.DB, s.Catalog)
	readerRoute.ReaderAdminRoutes(r, s.DB, s.Readers, s.Loans)
}
