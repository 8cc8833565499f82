package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository/mocks"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// memoryUsers is a slice-backed user repository mock with case-insensitive email lookup.
func memoryUsers(seed ...*domain.User) *mocks.UserRepositoryMock {
	users := append([]*domain.User{}, seed...)
	find := func(match func(u *domain.User) bool) (*domain.User, error) {
		for _, u := range users {
			if match(u) {
				cp := *u
				return &cp, nil
			}
		}
		return nil, pgx.ErrNoRows
	}
	return &mocks.UserRepositoryMock{
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = "user-" + user.Phone
			cp := *user
			users = append(users, &cp)
			return nil
		},
		UpdateFunc: func(ctx context.Context, user *domain.User) error {
			for i, u := range users {
				if u.ID == user.ID {
					cp := *user
					users[i] = &cp
					return nil
				}
			}
			return pgx.ErrNoRows
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return find(func(u *domain.User) bool { return u.ID == id })
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return find(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
		},
		GetByPhoneFunc: func(ctx context.Context, phone string) (*domain.User, error) {
			return find(func(u *domain.User) bool { return u.Phone == phone })
		},
	}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func newAuthService(users *mocks.UserRepositoryMock) *AuthService {
	return NewAuthService(AuthDependencies{
		UserRepo:     users,
		TokenManager: auth.NewTokenManager(testSecret, time.Hour),
		BcryptCost:   bcrypt.MinCost,
		Logger:       zap.NewNop(),
	})
}

func TestRegisterCitizen(t *testing.T) {
	t.Parallel()

	users := memoryUsers()
	svc := newAuthService(users)

	result, err := svc.RegisterCitizen(context.Background(), RegisterInput{
		Name:     "Amina",
		Email:    "Amina@Example.com",
		Phone:    "+250788000001",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, result.User.Role)
	assert.Equal(t, domain.UserStatusActive, result.User.Status)
	assert.NotEqual(t, "s3cret-pass", result.User.PasswordHash)
	assert.NoError(t, auth.ComparePassword(result.User.PasswordHash, "s3cret-pass"))

	claims, err := svc.tokenMgr.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestRegisterCitizen_Duplicates(t *testing.T) {
	t.Parallel()

	existing := &domain.User{ID: "u1", Email: "amina@example.com", Phone: "+250788000001"}

	tests := []struct {
		name  string
		email string
		phone string
		field string
	}{
		{"email differs only in case", "AMINA@example.com", "+250788000002", "email"},
		{"phone", "other@example.com", "+250788000001", "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			users := memoryUsers(existing)
			svc := newAuthService(users)

			_, err := svc.RegisterCitizen(context.Background(), RegisterInput{
				Name: "Dup", Email: tt.email, Phone: tt.phone, Password: "password1",
			})
			domainErr := requireStatus(t, err, http.StatusConflict)
			assert.Equal(t, tt.field, domainErr.Details["field"])
			assert.Empty(t, users.CreateCalls())
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	active := &domain.User{
		ID: "u1", Phone: "+250788000001", Role: domain.RoleAgencyStaff,
		Status: domain.UserStatusActive, PasswordHash: hashed(t, "right-password"),
	}
	inactive := &domain.User{
		ID: "u2", Phone: "+250788000002", Role: domain.RoleCitizen,
		Status: domain.UserStatusInactive, PasswordHash: hashed(t, "right-password"),
	}
	svc := newAuthService(memoryUsers(active, inactive))
	ctx := context.Background()

	result, err := svc.Login(ctx, "+250788000001", "right-password")
	require.NoError(t, err)
	assert.Equal(t, "u1", result.User.ID)
	assert.NotEmpty(t, result.Token)

	wrongPassword := requireStatus(t, func() error { _, err := svc.Login(ctx, "+250788000001", "nope"); return err }(), http.StatusUnauthorized)
	unknownPhone := requireStatus(t, func() error { _, err := svc.Login(ctx, "+250700000000", "nope"); return err }(), http.StatusUnauthorized)
	assert.Equal(t, wrongPassword.Message, unknownPhone.Message)
	assert.NotContains(t, strings.ToLower(wrongPassword.Message), "not found")

	_, err = svc.Login(ctx, "+250788000002", "right-password")
	requireStatus(t, err, http.StatusForbidden)

	// Wrong password on an inactive account does not reveal the status.
	_, err = svc.Login(ctx, "+250788000002", "nope")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestLogin_UnknownPhoneStillComparesPassword(t *testing.T) {
	t.Parallel()

	svc := newAuthService(memoryUsers())
	require.NotEmpty(t, svc.decoyHash)

	var compared []string
	svc.compare = func(hashed, plain string) error {
		compared = append(compared, hashed)
		return auth.ComparePassword(hashed, plain)
	}

	_, err := svc.Login(context.Background(), "+250700000000", "nope")
	requireStatus(t, err, http.StatusUnauthorized)
	assert.Equal(t, []string{svc.decoyHash}, compared)
}

func TestGetMe(t *testing.T) {
	t.Parallel()

	svc := newAuthService(memoryUsers(&domain.User{ID: "u1", Phone: "+1"}))

	me, err := svc.GetMe(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)

	missing, err := svc.GetMe(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
