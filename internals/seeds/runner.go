package seeds

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	authorModel "library_backend/internals/features/library/authors/model"
	bookModel "library_backend/internals/features/library/books/model"
	genreModel "library_backend/internals/features/library/genres/model"
	readerService "library_backend/internals/features/library/readers/service"
	userModel "library_backend/internals/features/users/user/model"
	"library_backend/internals/helpers/dbtime"
	"library_backend/internals/logging"
)

//go:embed data/catalog.json
var catalogJSON []byte

type genreSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type authorSeed struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
}

type bookSeed struct {
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Year   int      `json:"year"`
	Pages  int      `json:"pages"`
	ISBN   string   `json:"isbn"`
	Copies int      `json:"copies"`
	Rating float64  `json:"rating"`
	Genres []string `json:"genres"`
}

type readerSeed struct {
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
}

// Catalog is the demo dataset shipped with the binary.
type Catalog struct {
	Genres  []genreSeed  `json:"genres"`
	Authors []authorSeed `json:"authors"`
	Books   []bookSeed   `json:"books"`
	Readers []readerSeed `json:"readers"`
}

// Result counts the rows inserted by one run; rows that already existed are skipped.
type Result struct {
	Genres  int `json:"genres"`
	Authors int `json:"authors"`
	Books   int `json:"books"`
	Readers int `json:"readers"`
}

func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(catalogJSON, &c); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return &c, nil
}

// RunAllSeeds inserts the embedded catalog. Rows are matched by natural key
// (genre name, author name, book title, user name) so repeated runs are no-ops.
func RunAllSeeds(ctx context.Context, db *gorm.DB) (*Result, error) {
	c, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	return Seed(ctx, db, c)
}

func Seed(ctx context.Context, db *gorm.DB, c *Catalog) (*Result, error) {
	lg := logging.Ctx(ctx)
	res := &Result{}

	genres, err := seedGenres(ctx, db, c.Genres, res)
	if err != nil {
		return nil, err
	}
	authors, err := seedAuthors(ctx, db, c.Authors, res)
	if err != nil {
		return nil, err
	}
	if err := seedBooks(ctx, db, c.Books, genres, authors, res); err != nil {
		return nil, err
	}
	if err := seedReaders(ctx, db, c.Readers, res); err != nil {
		return nil, err
	}

	lg.Info().Int("genres", res.Genres).Int("authors", res.Authors).
		Int("books", res.Books).Int("readers", res.Readers).
		Msg("[SEED] done")
	return res, nil
}

func seedGenres(ctx context.Context, db *gorm.DB, in []genreSeed, res *Result) (map[string]genreModel.GenreModel, error) {
	out := make(map[string]genreModel.GenreModel, len(in))
	for _, s := range in {
		var g genreModel.GenreModel
		err := db.WithContext(ctx).Where("genre_name = ?", s.Name).First(&g).Error
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			g = genreModel.GenreModel{GenreName: s.Name, GenreDescription: s.Description}
			if err := db.WithContext(ctx).Create(&g).Error; err != nil {
				return nil, fmt.Errorf("seed genre %q: %w", s.Name, err)
			}
			res.Genres++
		default:
			return nil, err
		}
		out[s.Name] = g
	}
	return out, nil
}

func seedAuthors(ctx context.Context, db *gorm.DB, in []authorSeed, res *Result) (map[string]authorModel.AuthorModel, error) {
	out := make(map[string]authorModel.AuthorModel, len(in))
	for _, s := range in {
		var a authorModel.AuthorModel
		err := db.WithContext(ctx).
			Where("author_first_name = ? AND author_last_name = ?", s.FirstName, s.LastName).
			First(&a).Error
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			a = authorModel.AuthorModel{
				AuthorFirstName: s.FirstName,
				AuthorLastName:  s.LastName,
				AuthorBiography: fmt.Sprintf("%s %s is the author of many widely read works.", s.FirstName, s.LastName),
			}
			if s.BirthDate != "" {
				d, err := dbtime.ParseDate(s.BirthDate)
				if err != nil {
					return nil, fmt.Errorf("seed author %q: %w", s.LastName, err)
				}
				bd := datatypes.Date(d)
				a.AuthorBirthDate = &bd
			}
			if err := db.WithContext(ctx).Create(&a).Error; err != nil {
				return nil, fmt.Errorf("seed author %q: %w", s.LastName, err)
			}
			res.Authors++
		default:
			return nil, err
		}
		out[s.LastName] = a
	}
	return out, nil
}

func seedBooks(ctx context.Context, db *gorm.DB, in []bookSeed, genres map[string]genreModel.GenreModel, authors map[string]authorModel.AuthorModel, res *Result) error {
	for _, s := range in {
		var n int64
		if err := db.WithContext(ctx).Model(&bookModel.BookModel{}).
			Where("book_title = ?", s.Title).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}

		author, ok := authors[s.Author]
		if !ok {
			return fmt.Errorf("seed book %q: unknown author %q", s.Title, s.Author)
		}
		links := make([]genreModel.GenreModel, 0, len(s.Genres))
		for _, name := range s.Genres {
			g, ok := genres[name]
			if !ok {
				return fmt.Errorf("seed book %q: unknown genre %q", s.Title, name)
			}
			links = append(links, g)
		}

		b := bookModel.BookModel{
			BookTitle:           s.Title,
			BookAuthorID:        author.AuthorID,
			BookISBN:            s.ISBN,
			BookPublicationYear: s.Year,
			BookPages:           s.Pages,
			BookDescription:     fmt.Sprintf("%q is a classic of world literature.", s.Title),
			BookAvailableCopies: s.Copies,
			BookRating:          s.Rating,
		}
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Genres", "Author").Create(&b).Error; err != nil {
				return err
			}
			return tx.Model(&b).Association("Genres").Replace(links)
		})
		if err != nil {
			return fmt.Errorf("seed book %q: %w", s.Title, err)
		}
		res.Books++
	}
	return nil
}

func seedReaders(ctx context.Context, db *gorm.DB, in []readerSeed, res *Result) error {
	svc := readerService.NewReaderService(db, nil)
	for _, s := range in {
		var n int64
		if err := db.WithContext(ctx).Model(&userModel.UserModel{}).
			Where("user_name = ?", s.UserName).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}

		nr := readerService.NewReader{
			UserName:  s.UserName,
			Email:     s.Email,
			Password:  s.Password,
			FirstName: s.FirstName,
			LastName:  s.LastName,
			Role:      s.Role,
			Phone:     s.Phone,
			Address:   s.Address,
		}
		if s.DateOfBirth != "" {
			d, err := dbtime.ParseDate(s.DateOfBirth)
			if err != nil {
				return fmt.Errorf("seed reader %q: %w", s.UserName, err)
			}
			nr.DateOfBirth = &d
		}
		if _, err := svc.CreateWithUser(ctx, nr); err != nil {
			return fmt.Errorf("seed reader %q: %w", s.UserName, err)
		}
		res.Readers++
	}
	return nil
}
