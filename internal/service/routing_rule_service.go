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

// RoutingRuleService maps categories to their default agency.
type RoutingRuleService struct {
	rules      repository.RoutingRuleRepository
	categories repository.CategoryRepository
	agencies   repository.AgencyRepository
}

// RoutingRuleDependencies bundles repositories for the routing rule service.
type RoutingRuleDependencies struct {
	RuleRepo     repository.RoutingRuleRepository
	CategoryRepo repository.CategoryRepository
	AgencyRepo   repository.AgencyRepository
}

// RoutingRuleCreateInput is the payload for a new rule.
type RoutingRuleCreateInput struct {
	CategoryID       string
	AssignedAgencyID string
	Description      string
	Status           *domain.RoutingRuleStatus
}

// RoutingRuleUpdateInput is a partial update.
type RoutingRuleUpdateInput struct {
	AssignedAgencyID *string
	Description      *string
	Status           *domain.RoutingRuleStatus
}

// NewRoutingRuleService constructs the service.
func NewRoutingRuleService(deps RoutingRuleDependencies) *RoutingRuleService {
	return &RoutingRuleService{
		rules:      deps.RuleRepo,
		categories: deps.CategoryRepo,
		agencies:   deps.AgencyRepo,
	}
}

// CreateRule allows one rule per category.
func (s *RoutingRuleService) CreateRule(ctx context.Context, input RoutingRuleCreateInput) (*domain.RoutingRule, error) {
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		return nil, notFoundOr(err, "category", input.CategoryID)
	}
	if err := s.requireActiveAgency(ctx, input.AssignedAgencyID); err != nil {
		return nil, err
	}
	existing, err := s.rules.GetByCategory(ctx, input.CategoryID)
	if err == nil {
		return nil, apperrors.NewConflict("category already has a routing rule", map[string]any{"routingRuleId": existing.ID})
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	rule := &domain.RoutingRule{
		CategoryID:       input.CategoryID,
		AssignedAgencyID: input.AssignedAgencyID,
		Description:      strings.TrimSpace(input.Description),
		Status:           domain.RoutingRuleStatusActive,
	}
	if input.Status != nil {
		rule.Status = *input.Status
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, apperrors.MapError(err)
	}
	return rule, nil
}

func (s *RoutingRuleService) GetRule(ctx context.Context, id string) (*domain.RoutingRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "routing rule", id)
	}
	return rule, nil
}

func (s *RoutingRuleService) ListRules(ctx context.Context, filter repository.RoutingRuleFilter, page domain.PageRequest, sort domain.Sort) (domain.Page[domain.RoutingRule], error) {
	items, total, err := s.rules.List(ctx, filter, page, sort)
	if err != nil {
		return domain.Page[domain.RoutingRule]{}, apperrors.MapError(err)
	}
	return domain.NewPage(items, total, page), nil
}

func (s *RoutingRuleService) UpdateRule(ctx context.Context, id string, input RoutingRuleUpdateInput) (*domain.RoutingRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "routing rule", id)
	}
	if input.AssignedAgencyID != nil && *input.AssignedAgencyID != rule.AssignedAgencyID {
		if err := s.requireActiveAgency(ctx, *input.AssignedAgencyID); err != nil {
			return nil, err
		}
		rule.AssignedAgencyID = *input.AssignedAgencyID
	}
	if input.Description != nil {
		rule.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		rule.Status = *input.Status
	}
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, notFoundOr(err, "routing rule", id)
	}
	return rule, nil
}

func (s *RoutingRuleService) DeleteRule(ctx context.Context, id string) error {
	if err := s.rules.Delete(ctx, id); err != nil {
		return notFoundOr(err, "routing rule", id)
	}
	return nil
}

// ActiveRuleForCategory returns the category's rule when both the rule and
// its agency are active, or nil.
func (s *RoutingRuleService) ActiveRuleForCategory(ctx context.Context, categoryID string) (*domain.RoutingRule, error) {
	rule, err := s.rules.GetByCategory(ctx, categoryID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rule.Status != domain.RoutingRuleStatusActive {
		return nil, nil
	}
	agency, err := s.agencies.GetByID(ctx, rule.AssignedAgencyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if agency.Status != domain.AgencyStatusActive {
		return nil, nil
	}
	return rule, nil
}

func (s *RoutingRuleService) requireActiveAgency(ctx context.Context, id string) error {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "agency", id)
	}
	if agency.Status != domain.AgencyStatusActive {
		return apperrors.NewConflict("agency is inactive", map[string]any{"agencyId": id})
	}
	return nil
}
