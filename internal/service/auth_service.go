package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// Login failures share one message so callers cannot probe for registered phones.
const invalidCredentials = "invalid phone number or password"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger

	// decoyHash is compared on unknown phones so both login failures pay one bcrypt round.
	decoyHash string
	compare   func(hashed, plain string) error
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	TokenManager *auth.TokenManager
	BcryptCost   int
	Logger       *zap.Logger
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AuthResult is an authenticated user plus their access token.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	s := &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   deps.TokenManager,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
		compare:    auth.ComparePassword,
	}
	decoy, err := auth.DecoyHash(deps.BcryptCost)
	if err != nil {
		deps.Logger.Warn("decoy password hash unavailable", zap.Error(err))
	}
	s.decoyHash = decoy
	return s
}

// RegisterCitizen creates an ACTIVE citizen account and signs them in.
func (s *AuthService) RegisterCitizen(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if err := ensureContactUnique(ctx, s.users, email, phone, ""); err != nil {
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
		Role:         domain.RoleCitizen,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("citizen registered", zap.String("user_id", user.ID))
	return s.issue(user)
}

// Login authenticates by phone. Wrong password and unknown phone both yield
// the same 401; a correct password on an INACTIVE account yields 403.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*AuthResult, error) {
	user, err := s.users.GetByPhone(ctx, strings.TrimSpace(phone))
	if errors.Is(err, pgx.ErrNoRows) {
		_ = s.compare(s.decoyHash, password)
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	if !user.IsActive() {
		return nil, apperrors.NewForbidden("account is inactive")
	}
	return s.issue(user)
}

// GetMe returns the user or nil when the account no longer exists.
func (s *AuthService) GetMe(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
