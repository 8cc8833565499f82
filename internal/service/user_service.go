package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/config"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// UserService manages accounts on behalf of admins and the account owner.
type UserService struct {
	users      repository.UserRepository
	agencies   repository.AgencyRepository
	bcryptCost int
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	AgencyRepo repository.AgencyRepository
	BcryptCost int
	Logger     *zap.Logger
}

// UserCreateInput is the admin payload for a new account.
type UserCreateInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.UserRole
	AgencyID *string
}

// UserUpdateInput is a partial update. Role, Status, AgencyID and ClearAgency are admin-only.
type UserUpdateInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Password    *string
	Role        *domain.UserRole
	Status      *domain.UserStatus
	AgencyID    *string
	ClearAgency bool
}

func (in UserUpdateInput) touchesPrivilegedFields() bool {
	return in.Role != nil || in.Status != nil || in.AgencyID != nil || in.ClearAgency
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		agencies:   deps.AgencyRepo,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter, page domain.PageRequest, sort domain.Sort) (domain.Page[domain.User], error) {
	items, total, err := s.users.List(ctx, filter, page, sort)
	if err != nil {
		return domain.Page[domain.User]{}, apperrors.MapError(err)
	}
	return domain.NewPage(items, total, page), nil
}

// GetUser returns id to an admin or to the account owner.
func (s *UserService) GetUser(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if err := s.authorizeSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return user, nil
}

// CreateUser creates an account with any role. Agency staff must name an existing agency.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if err := ensureContactUnique(ctx, s.users, email, phone, ""); err != nil {
		return nil, err
	}
	if err := s.checkAgency(ctx, input.Role, input.AgencyID); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       domain.UserStatusActive,
		AgencyID:     input.AgencyID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// UpdateUser lets an admin change anything and an owner change their own profile.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id string, input UserUpdateInput) (*domain.User, error) {
	if err := s.authorizeSelfOrAdmin(actor, id); err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && input.touchesPrivilegedFields() {
		return nil, apperrors.NewForbidden("only admins may change role, status or agency")
	}
	if actor.ID == id {
		if input.Status != nil && *input.Status != domain.UserStatusActive {
			return nil, apperrors.NewBadRequest("you cannot deactivate your own account")
		}
		if input.Role != nil && *input.Role != actor.Role {
			return nil, apperrors.NewBadRequest("you cannot change your own role")
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user", id)
	}

	email, phone := user.Email, user.Phone
	if input.Email != nil {
		email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		phone = strings.TrimSpace(*input.Phone)
	}
	if !strings.EqualFold(email, user.Email) || phone != user.Phone {
		if err := ensureContactUnique(ctx, s.users, email, phone, user.ID); err != nil {
			return nil, err
		}
	}
	user.Email, user.Phone = email, phone

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	switch {
	case input.ClearAgency:
		user.AgencyID = nil
	case input.AgencyID != nil:
		user.AgencyID = input.AgencyID
	}
	if input.Role != nil || input.AgencyID != nil || input.ClearAgency {
		if err := s.checkAgency(ctx, user.Role, user.AgencyID); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return user, nil
}

// DeactivateUser flips the account to INACTIVE. Accounts are never deleted.
func (s *UserService) DeactivateUser(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if actor.ID == id {
		return nil, apperrors.NewBadRequest("you cannot deactivate your own account")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	if user.Status == domain.UserStatusInactive {
		return user, nil
	}
	user.Status = domain.UserStatusInactive
	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	s.logger.Info("user deactivated", zap.String("user_id", user.ID), zap.String("by", actor.ID))
	return user, nil
}

// EnsureDefaultAdmin creates the seeded administrator unless its phone or email is taken.
// It reports whether an account was created.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, seed config.AdminSeedConfig) (bool, error) {
	if !seed.Enabled() {
		return false, nil
	}
	err := ensureContactUnique(ctx, s.users, seed.Email, seed.Phone, "")
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.HTTPStatus == http.StatusConflict {
		s.logger.Debug("default admin already present", zap.String("phone", seed.Phone))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := s.CreateUser(ctx, UserCreateInput{
		Name:     seed.Name,
		Email:    seed.Email,
		Phone:    seed.Phone,
		Password: seed.Password,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) authorizeSelfOrAdmin(actor *domain.User, id string) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != id {
		return apperrors.NewForbidden("you may only access your own account")
	}
	return nil
}

func (s *UserService) checkAgency(ctx context.Context, role domain.UserRole, agencyID *string) error {
	if agencyID == nil {
		if role == domain.RoleAgencyStaff {
			return apperrors.NewValidationError("validation failed", []apperrors.FieldError{
				{Field: "agencyId", Message: "is required for agency staff"},
			})
		}
		return nil
	}
	if _, err := s.agencies.GetByID(ctx, *agencyID); err != nil {
		return notFoundOr(err, "agency", *agencyID)
	}
	return nil
}

// ensureContactUnique fails with 409 when email (case-insensitively) or phone
// belongs to an account other than selfID.
func ensureContactUnique(ctx context.Context, users repository.UserRepository, email, phone, selfID string) error {
	existing, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return apperrors.MapError(err)
	case existing.ID != selfID:
		return apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
	}

	existing, err = users.GetByPhone(ctx, phone)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return apperrors.MapError(err)
	case existing.ID != selfID:
		return apperrors.NewConflict("phone already registered", map[string]any{"field": "phone"})
	}
	return nil
}
