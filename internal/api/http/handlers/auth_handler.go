package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and the current account.
type AuthHandler struct {
	binder
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, v *validation.Validator) *AuthHandler {
	return &AuthHandler{binder: binder{validator: v}, auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.RegisterCitizen(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return created(c, "registration successful", authResponse(result))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "login successful", authResponse(result))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	current, found := auth.CurrentUser(c)
	if !found {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.auth.GetMe(c.UserContext(), current.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user", map[string]any{"id": current.ID})
	}
	return ok(c, dto.NewUserResponse(user))
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		User:      dto.NewUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
}
