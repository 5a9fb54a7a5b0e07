package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRepo "library_backend/internals/features/users/auth/repository"
	"library_backend/internals/features/users/auth/service"
	helper "library_backend/internals/helpers"
	helperAuth "library_backend/internals/helpers/auth"
)

type AuthController struct {
	DB     *gorm.DB
	Tokens *service.TokenService
}

func NewAuthController(db *gorm.DB, tokens *service.TokenService) *AuthController {
	return &AuthController{DB: db, Tokens: tokens}
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := helper.BindJSON(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	res, err := service.Login(c.UserContext(), ac.DB, ac.Tokens, req.Identifier, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserInactive):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", res)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(ac.DB.WithContext(c.UserContext()), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
		"full_name": user.FullName(),
		"role":      user.Role,
	})
}
