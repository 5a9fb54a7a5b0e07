package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	authRepo "library_backend/internals/features/users/auth/repository"
	userModel "library_backend/internals/features/users/user/model"
	"library_backend/internals/logging"
)

var (
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrUserInactive       = errors.New("account is disabled")
)

type LoginResult struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
	User        *userModel.UserModel `json:"user"`
}

// Login checks identifier (user name or email) and password and issues a token.
func Login(ctx context.Context, db *gorm.DB, tokens *TokenService, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := authRepo.FindUserByEmailOrUsername(db.WithContext(ctx), identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(u.Password, password) {
		logging.Ctx(ctx).Warn().Str("identifier", identifier).Msg("[AUTH][LOGIN] bad password")
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	tok, exp, err := tokens.Sign(*u)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Str("user_id", u.ID.String()).Str("role", u.Role).Msg("[AUTH][LOGIN] ok")
	return &LoginResult{AccessToken: tok, TokenType: "Bearer", ExpiresAt: exp, User: u}, nil
}
