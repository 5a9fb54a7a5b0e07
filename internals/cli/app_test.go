package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	bookModel "library_backend/internals/features/library/books/model"
	"library_backend/internals/seeds"
	"library_backend/internals/testutil"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode  string          `json:"error_code"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
}

func testConfig() *configs.Config {
	return &configs.Config{
		Server: configs.ServerConfig{
			RequestTimeout: 5 * time.Second,
			CORSOrigins:    "*",
		},
		Auth:    configs.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Log:     configs.LogConfig{Level: "error", Format: "json"},
		Library: configs.DefaultLibraryConfig(),
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	_, err := seeds.RunAllSeeds(context.Background(), db)
	require.NoError(t, err)
	app, _ := NewApp(db, testConfig())
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, user, password string) string {
	t.Helper()
	status, env := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"identifier": user,
		"password":   password,
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"identifier": "reader1",
		"password":   "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestPublicBookSearch(t *testing.T) {
	app, _ := newTestApp(t)

	status, env := call(t, app, http.MethodGet, "/api/public/books?title=1984", "", nil)
	require.Equal(t, http.StatusOK, status)

	var books []struct {
		BookTitle string `json:"book_title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.Len(t, books, 1)
	assert.Equal(t, "1984", books[0].BookTitle)

	status, env = call(t, app, http.MethodGet, "/api/public/books?sort_by=popularity", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
}

func TestReaderRoutes_RequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := call(t, app, http.MethodGet, "/api/u/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "/api/u/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminRoutes_RequireLibrarian(t *testing.T) {
	app, _ := newTestApp(t)
	body := fiber.Map{"genre_name": "Drama"}

	reader := login(t, app, "reader1", "reader123")
	status, _ := call(t, app, http.MethodPost, "/api/a/genres", reader, body)
	assert.Equal(t, http.StatusForbidden, status)

	librarian := login(t, app, "librarian", "librarian123")
	status, env := call(t, app, http.MethodPost, "/api/a/genres", librarian, body)
	assert.Equal(t, http.StatusCreated, status, env.Message)
}

func TestIssueAndReturnFlow(t *testing.T) {
	app, db := newTestApp(t)
	token := login(t, app, "reader2", "reader123")

	var book bookModel.BookModel
	require.NoError(t, db.First(&book, "book_title = ?", "Anna Karenina").Error)
	require.Equal(t, 1, book.BookAvailableCopies)

	status, env := call(t, app, http.MethodPost, "/api/u/loans", token, fiber.Map{"book_id": book.BookID})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var issue struct {
		BookIssueID string `json:"book_issue_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &issue))

	// last copy is gone
	status, env = call(t, app, http.MethodPost, "/api/u/loans", token, fiber.Map{"book_id": book.BookID})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "BOOK_UNAVAILABLE", env.ErrorCode)

	other := login(t, app, "reader3", "reader123")
	status, _ = call(t, app, http.MethodPost, "/api/u/loans/"+issue.BookIssueID+"/return", other, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = call(t, app, http.MethodPost, "/api/u/loans/"+issue.BookIssueID+"/return", token,
		fiber.Map{"condition_notes": "fine", "is_damaged": false})
	require.Equal(t, http.StatusOK, status, env.Message)
	var ret struct {
		Fine int64 `json:"fine"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ret))
	assert.Zero(t, ret.Fine)

	status, env = call(t, app, http.MethodPost, "/api/u/loans/"+issue.BookIssueID+"/return", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_RETURNED", env.ErrorCode)

	require.NoError(t, db.First(&book, "book_id = ?", book.BookID).Error)
	assert.Equal(t, 1, book.BookAvailableCopies)
}


type bookRow struct {
	BookID              string  `json:"book_id"`
	BookTitle           string  `json:"book_title"`
	BookAvailableCopies int     `json:"book_available_copies"`
	Count               int64   `json:"count"`
	BookRating          float64 `json:"book_rating"`
}

func issueBook(t *testing.T, app *fiber.App, db *gorm.DB, token, title, dueDate string) {
	t.Helper()
	var book bookModel.BookModel
	require.NoError(t, db.First(&book, "book_title = ?", title).Error)
	body := fiber.Map{"book_id": book.BookID}
	if dueDate != "" {
		body["due_date"] = dueDate
	}
	status, env := call(t, app, http.MethodPost, "/api/u/loans", token, body)
	require.Equal(t, http.StatusCreated, status, env.Message)
}

func TestPublicDashboards(t *testing.T) {
	app, db := newTestApp(t)
	token := login(t, app, "reader1", "reader123")
	issueBook(t, app, db, token, "1984", "")

	status, env := call(t, app, http.MethodGet, "/api/public/home", "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var home struct {
		TotalBooks   int64     `json:"total_books"`
		TotalAuthors int64     `json:"total_authors"`
		TotalGenres  int64     `json:"total_genres"`
		TotalReaders int64     `json:"total_readers"`
		MostReviewed []bookRow `json:"most_reviewed"`
		Newest       []bookRow `json:"newest"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &home))
	assert.EqualValues(t, 11, home.TotalBooks)
	assert.EqualValues(t, 8, home.TotalAuthors)
	assert.EqualValues(t, 8, home.TotalGenres)
	assert.GreaterOrEqual(t, home.TotalReaders, int64(3))
	assert.Len(t, home.Newest, 6)
	assert.Len(t, home.MostReviewed, 6)

	status, env = call(t, app, http.MethodGet, "/api/public/stats", "", nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var stats struct {
		TotalBooks   int64     `json:"total_books"`
		PopularBooks []bookRow `json:"popular_books"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 11, stats.TotalBooks)
	require.NotEmpty(t, stats.PopularBooks)
	assert.LessOrEqual(t, len(stats.PopularBooks), 10)
	assert.Equal(t, "1984", stats.PopularBooks[0].BookTitle)
	assert.EqualValues(t, 1, stats.PopularBooks[0].Count)
}

func TestReaderDashboards(t *testing.T) {
	app, db := newTestApp(t)
	token := login(t, app, "reader1", "reader123")

	today := time.Now().UTC().Format("2006-01-02")
	issueBook(t, app, db, token, "1984", today)
	issueBook(t, app, db, token, "Fahrenheit 451", "")

	status, env := call(t, app, http.MethodGet, "/api/u/loans/history?per_page=1", token, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var history []struct {
		BookIssueIsReturned bool `json:"book_issue_is_returned"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history, 1)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Pagination, &page))
	assert.EqualValues(t, 2, page.Total)

	status, env = call(t, app, http.MethodGet, "/api/u/loans/reminders", token, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var rem struct {
		Today    string `json:"today"`
		Upcoming []struct {
			BookIssueDueDate string `json:"book_issue_due_date"`
		} `json:"upcoming"`
		Overdue []json.RawMessage `json:"overdue"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rem))
	assert.Equal(t, today, rem.Today)
	require.Len(t, rem.Upcoming, 1)
	assert.Equal(t, today, rem.Upcoming[0].BookIssueDueDate)
	assert.Empty(t, rem.Overdue)

	status, env = call(t, app, http.MethodGet, "/api/u/stats", token, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var mine struct {
		TotalIssues    int64 `json:"total_issues"`
		CurrentIssues  int64 `json:"current_issues"`
		ReturnedBooks  int64 `json:"returned_books"`
		FavoriteGenres []struct {
			GenreName string `json:"genre_name"`
			Loans     int    `json:"loans"`
		} `json:"favorite_genres"`
		Recommendations []bookRow `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.EqualValues(t, 2, mine.TotalIssues)
	assert.EqualValues(t, 2, mine.CurrentIssues)
	assert.Zero(t, mine.ReturnedBooks)
	require.NotEmpty(t, mine.FavoriteGenres)
	assert.Equal(t, "Science Fiction", mine.FavoriteGenres[0].GenreName)
	assert.Equal(t, 2, mine.FavoriteGenres[0].Loans)

	assert.LessOrEqual(t, len(mine.Recommendations), 8)
	for _, b := range mine.Recommendations {
		assert.Positive(t, b.BookAvailableCopies, b.BookTitle)
		assert.NotContains(t, []string{"1984", "Fahrenheit 451"}, b.BookTitle)
	}

	status, _ = call(t, app, http.MethodGet, "/api/u/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
