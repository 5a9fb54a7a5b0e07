package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "library_backend/internals/features/users/user/model"
	"library_backend/internals/testutil"
)

func TestLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	ts := NewTokenService("s3cret", time.Hour)

	hash, err := HashPassword("reader123")
	require.NoError(t, err)
	active := userModel.UserModel{UserName: "reader1", Email: "reader1@library.test", Password: hash, IsActive: true}
	require.NoError(t, db.Create(&active).Error)
	inactive := userModel.UserModel{UserName: "gone", Email: "gone@library.test", Password: hash, IsActive: false}
	require.NoError(t, db.Create(&inactive).Error)

	res, err := Login(ctx, db, ts, "reader1@library.test", "reader123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	claims, err := ts.Parse(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, active.ID.String(), claims.Subject)

	_, err = Login(ctx, db, ts, "reader1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = Login(ctx, db, ts, "nobody", "reader123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = Login(ctx, db, ts, "gone", "reader123")
	assert.ErrorIs(t, err, ErrUserInactive)
}
