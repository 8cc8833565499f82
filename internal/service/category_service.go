package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// CategoryService manages the category tree.
type CategoryService struct {
	categories repository.CategoryRepository
}

// CategoryCreateInput is the payload for a new category.
type CategoryCreateInput struct {
	Name             string
	Description      string
	ParentCategoryID *string
}

// CategoryUpdateInput is a partial update. ClearParent detaches the category
// from its parent.
type CategoryUpdateInput struct {
	Name             *string
	Description      *string
	ParentCategoryID *string
	ClearParent      bool
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryCreateInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}
	if input.ParentCategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.ParentCategoryID); err != nil {
			return nil, notFoundOr(err, "parent category", *input.ParentCategoryID)
		}
	}

	category := &domain.Category{
		Name:             name,
		Description:      strings.TrimSpace(input.Description),
		ParentCategoryID: input.ParentCategoryID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "category", id)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, filter repository.CategoryFilter, page domain.PageRequest, sort domain.Sort) (domain.Page[domain.Category], error) {
	items, total, err := s.categories.List(ctx, filter, page, sort)
	if err != nil {
		return domain.Page[domain.Category]{}, apperrors.MapError(err)
	}
	return domain.NewPage(items, total, page), nil
}

// UpdateCategory rejects a parent change that would make the category its own ancestor.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input CategoryUpdateInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "category", id)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != category.Name {
			if err := s.ensureNameFree(ctx, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}
	switch {
	case input.ClearParent:
		category.ParentCategoryID = nil
	case input.ParentCategoryID != nil:
		if err := s.ensureNoCycle(ctx, category.ID, *input.ParentCategoryID); err != nil {
			return nil, err
		}
		category.ParentCategoryID = input.ParentCategoryID
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, notFoundOr(err, "category", id)
	}
	return category, nil
}

// DeleteCategory removes the category. Children are detached and its routing rule is dropped.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return notFoundOr(err, "category", id)
	}
	return nil
}

// ensureNoCycle walks up from parentID and fails if it reaches id.
func (s *CategoryService) ensureNoCycle(ctx context.Context, id, parentID string) error {
	seen := map[string]bool{}
	current := parentID
	for current != "" {
		if current == id {
			return apperrors.NewBadRequest("category cannot be its own ancestor")
		}
		if seen[current] {
			return apperrors.NewBadRequest("category tree contains a cycle")
		}
		seen[current] = true

		parent, err := s.categories.GetByID(ctx, current)
		if err != nil {
			return notFoundOr(err, "parent category", current)
		}
		if parent.ParentCategoryID == nil {
			return nil
		}
		current = *parent.ParentCategoryID
	}
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.categories.GetByName(ctx, name)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return apperrors.MapError(err)
	case existing.ID != selfID:
		return apperrors.NewConflict("category with this name already exists", map[string]any{"name": name})
	}
	return nil
}
