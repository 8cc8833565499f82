package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
)

var userSortFields = []string{"createdAt", "updatedAt", "name", "email", "role"}

// UsersHandler manages accounts.
type UsersHandler struct {
	binder
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, v *validation.Validator) *UsersHandler {
	return &UsersHandler{binder: binder{validator: v}, users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page, sort, err := listParams(c, userSortFields)
	if err != nil {
		return err
	}
	role, err := validation.OptionalEnum("role", c.Query("role"), domain.UserRole.Valid)
	if err != nil {
		return err
	}
	status, err := validation.OptionalEnum("status", c.Query("status"), domain.UserStatus.Valid)
	if err != nil {
		return err
	}

	result, err := h.users.ListUsers(c.UserContext(), repository.UserFilter{
		Role:     role,
		Status:   status,
		AgencyID: validation.OptionalString(c.Query("agencyId")),
		Search:   c.Query("search"),
	}, page, sort)
	if err != nil {
		return err
	}
	return respondPage(c, result, dto.NewUserResponse)
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)
	user, err := h.users.GetUser(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewUserResponse(user))
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	user, err := h.users.CreateUser(c.UserContext(), service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
		AgencyID: req.AgencyID,
	})
	if err != nil {
		return err
	}
	return created(c, "user created", dto.NewUserResponse(user))
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	actor, _ := auth.CurrentUser(c)
	user, err := h.users.UpdateUser(c.UserContext(), actor, id, service.UserUpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		Role:        req.Role,
		Status:      req.Status,
		AgencyID:    req.AgencyID.Ptr(),
		ClearAgency: req.AgencyID.Set && !req.AgencyID.Valid,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user updated", dto.NewUserResponse(user))
}

// Deactivate handles DELETE /users/:id.
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, _ := auth.CurrentUser(c)
	user, err := h.users.DeactivateUser(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user deactivated", dto.NewUserResponse(user))
}

