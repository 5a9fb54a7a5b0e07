package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	err := Invalid("min_year", "must be at least 1000")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "min_year")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must be at least 1000"}, ve.Fields["min_year"])
}

func TestValidationError_OrNil(t *testing.T) {
	var ve ValidationError
	assert.NoError(t, ve.OrNil())

	ve.Add("rating", "too high")
	assert.Error(t, ve.OrNil())
}

func TestFromValidator(t *testing.T) {
	type in struct {
		Rating int `validate:"min=1,max=5"`
	}
	err := FromValidator(validator.New().Struct(in{Rating: 9}))

	assert.ErrorIs(t, err, ErrValidation)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"must be at most 5"}, ve.Fields["Rating"])
}

func TestNotFoundIf(t *testing.T) {
	err := NotFoundIf(fmt.Errorf("load: %w", gorm.ErrRecordNotFound), "book")
	assert.ErrorIs(t, err, ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, NotFoundIf(other, "book"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: books.book_isbn")))
	assert.False(t, IsUniqueViolation(nil))

	assert.ErrorIs(t, ConflictIf(gorm.ErrDuplicatedKey, "isbn"), ErrConflict)
}
