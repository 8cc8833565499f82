// Package handlers adapts HTTP requests to service calls and wraps results
// in the response envelope.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/validation"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// binder decodes and validates request bodies.
type binder struct {
	validator *validation.Validator
}

func (b binder) bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewBadRequest("malformed request body")
	}
	return b.validator.Struct(dst)
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(dto.Envelope{Status: "success", Message: message, Data: data})
}

func ok(c *fiber.Ctx, data any) error {
	return respond(c, fiber.StatusOK, "", data)
}

func created(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusCreated, message, data)
}

// respondPage maps page items through toDTO and attaches pagination meta.
func respondPage[T, R any](c *fiber.Ctx, page domain.Page[T], toDTO func(*T) R) error {
	items := make([]R, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toDTO(&page.Items[i]))
	}
	return c.JSON(dto.Envelope{
		Status: "success",
		Data:   items,
		Meta: &dto.Meta{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	})
}

func mapSlice[T, R any](items []T, toDTO func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, toDTO(&items[i]))
	}
	return out
}

// listParams parses page, limit, sortBy and sortOrder.
func listParams(c *fiber.Ctx, sortFields []string) (domain.PageRequest, domain.Sort, error) {
	page, err := validation.Page(c.Query)
	if err != nil {
		return domain.PageRequest{}, domain.Sort{}, err
	}
	sort, err := validation.Sort(c.Query, sortFields, "createdAt")
	if err != nil {
		return domain.PageRequest{}, domain.Sort{}, err
	}
	return page, sort, nil
}

// pathID reads a uuid route parameter, rejecting malformed values before they reach the database.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if !validation.IsUUID(id) {
		return "", apperrors.NewValidationError("invalid path parameter", []apperrors.FieldError{
			{Field: name, Message: "must be a valid UUID"},
		})
	}
	return id, nil
}
