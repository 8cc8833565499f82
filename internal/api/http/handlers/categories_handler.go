package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
)

var categorySortFields = []string{"createdAt", "updatedAt", "name"}

// CategoriesHandler manages ticket categories.
type CategoriesHandler struct {
	binder
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService, v *validation.Validator) *CategoriesHandler {
	return &CategoriesHandler{binder: binder{validator: v}, categories: categories}
}

// List handles GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	page, sort, err := listParams(c, categorySortFields)
	if err != nil {
		return err
	}
	result, err := h.categories.ListCategories(c.UserContext(), repository.CategoryFilter{
		ParentCategoryID: validation.OptionalString(c.Query("parentCategoryId")),
		Search:           c.Query("search"),
	}, page, sort)
	if err != nil {
		return err
	}
	return respondPage(c, result, dto.NewCategoryResponse)
}

// Get handles GET /categories/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.categories.GetCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewCategoryResponse(category))
}

// Create handles POST /categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	category, err := h.categories.CreateCategory(c.UserContext(), service.CategoryCreateInput{
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		return err
	}
	return created(c, "category created", dto.NewCategoryResponse(category))
}

// Update handles PATCH /categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCategoryRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	category, err := h.categories.UpdateCategory(c.UserContext(), id, service.CategoryUpdateInput{
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID.Ptr(),
		ClearParent:      req.ParentCategoryID.Set && !req.ParentCategoryID.Valid,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "category updated", dto.NewCategoryResponse(category))
}

// Delete handles DELETE /categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categories.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "category deleted", nil)
}
