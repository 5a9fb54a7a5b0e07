package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "library_backend/internals/features/users/user/model"
)

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService("s3cret", time.Hour)
	u := userModel.UserModel{ID: uuid.New(), UserName: "reader1", Role: userModel.RoleReader}

	tok, exp, err := ts.Sign(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(tok)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, "reader", claims.Role)
	assert.Equal(t, "reader1", claims.UserName)
}

func TestTokenService_Rejects(t *testing.T) {
	ts := NewTokenService("s3cret", time.Hour)
	u := userModel.UserModel{ID: uuid.New(), UserName: "reader1"}

	other := NewTokenService("different", time.Hour)
	tok, _, err := other.Sign(u)
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenService("s3cret", time.Hour)
	expired.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err = expired.Sign(u)
	require.NoError(t, err)
	_, err = ts.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ts.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = NewTokenService("", time.Hour).Sign(u)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("reader123")
	require.NoError(t, err)
	assert.NotEqual(t, "reader123", h)
	assert.True(t, CheckPassword(h, "reader123"))
	assert.False(t, CheckPassword(h, "reader124"))

	_, err = HashPassword("123")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
