package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// AgencyService manages agencies.
type AgencyService struct {
	agencies repository.AgencyRepository
	logger   *zap.Logger
}

// AgencyCreateInput is the payload for a new agency.
type AgencyCreateInput struct {
	Name         string
	Description  string
	ContactEmail string
	ContactPhone *string
	Status       *domain.AgencyStatus
}

// AgencyUpdateInput is a partial update; nil fields are left unchanged.
type AgencyUpdateInput struct {
	Name         *string
	Description  *string
	ContactEmail *string
	ContactPhone *string
	Status       *domain.AgencyStatus
}

func (in AgencyUpdateInput) empty() bool {
	return in.Name == nil && in.Description == nil && in.ContactEmail == nil &&
		in.ContactPhone == nil && in.Status == nil
}

// NewAgencyService constructs the service.
func NewAgencyService(agencies repository.AgencyRepository, logger *zap.Logger) *AgencyService {
	return &AgencyService{agencies: agencies, logger: logger}
}

// CreateAgency rejects duplicate names with 409. Status defaults to ACTIVE.
func (s *AgencyService) CreateAgency(ctx context.Context, input AgencyCreateInput) (*domain.Agency, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	agency := &domain.Agency{
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: trimmed(input.ContactPhone),
		Status:       domain.AgencyStatusActive,
	}
	if input.Status != nil {
		agency.Status = *input.Status
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("agency created", zap.String("agency_id", agency.ID), zap.String("name", agency.Name))
	return agency, nil
}

// GetAgencyByID returns nil without error when the agency does not exist.
func (s *AgencyService) GetAgencyByID(ctx context.Context, id string) (*domain.Agency, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return agency, nil
}

// ListAgencies returns a page of agencies.
func (s *AgencyService) ListAgencies(ctx context.Context, filter repository.AgencyFilter, page domain.PageRequest, sort domain.Sort) (domain.Page[domain.Agency], error) {
	items, total, err := s.agencies.List(ctx, filter, page, sort)
	if err != nil {
		return domain.Page[domain.Agency]{}, apperrors.MapError(err)
	}
	return domain.NewPage(items, total, page), nil
}

// UpdateAgency applies a partial update. An empty patch returns the agency unchanged.
func (s *AgencyService) UpdateAgency(ctx context.Context, id string, input AgencyUpdateInput) (*domain.Agency, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "agency", id)
	}
	if input.empty() {
		return agency, nil
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != agency.Name {
			if err := s.ensureNameFree(ctx, name, agency.ID); err != nil {
				return nil, err
			}
		}
		agency.Name = name
	}
	if input.Description != nil {
		agency.Description = strings.TrimSpace(*input.Description)
	}
	if input.ContactEmail != nil {
		agency.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.ContactPhone != nil {
		agency.ContactPhone = trimmed(input.ContactPhone)
	}
	if input.Status != nil {
		agency.Status = *input.Status
	}

	if err := s.agencies.Update(ctx, agency); err != nil {
		return nil, notFoundOr(err, "agency", id)
	}
	return agency, nil
}

// DeleteAgency deactivates the agency. Agencies are never removed.
func (s *AgencyService) DeleteAgency(ctx context.Context, id string) (*domain.Agency, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "agency", id)
	}
	if agency.Status == domain.AgencyStatusInactive {
		return agency, nil
	}
	agency.Status = domain.AgencyStatusInactive
	if err := s.agencies.Update(ctx, agency); err != nil {
		return nil, notFoundOr(err, "agency", id)
	}
	s.logger.Info("agency deactivated", zap.String("agency_id", agency.ID))
	return agency, nil
}

func (s *AgencyService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.agencies.GetByName(ctx, name)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return apperrors.MapError(err)
	case existing.ID != selfID:
		return apperrors.NewConflict("agency with this name already exists", map[string]any{"name": name})
	}
	return nil
}
