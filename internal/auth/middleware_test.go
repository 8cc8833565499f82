package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository/mocks"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

const secret = "0123456789abcdef0123456789abcdef"

func newApp(t *testing.T, users *mocks.UserRepositoryMock, guards ...fiber.Handler) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	tokens := auth.NewTokenManager(secret, time.Hour)
	mw := auth.NewMiddleware(tokens, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
		},
	})
	handlers := append([]fiber.Handler{mw.Populate}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		user, ok := auth.CurrentUser(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(user.ID)
	})
	app.Get("/", handlers...)
	return app, tokens
}

func call(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func activeUser(id string, role domain.UserRole) *domain.User {
	return &domain.User{ID: id, Role: role, Status: domain.UserStatusActive}
}

func TestPopulate_NoTokenContinuesAnonymously(t *testing.T) {
	users := &mocks.UserRepositoryMock{}
	app, _ := newApp(t, users)

	status, body := call(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)
	assert.Empty(t, users.GetByIDCalls())
}

func TestPopulate_ValidTokenAttachesUser(t *testing.T) {
	users := &mocks.UserRepositoryMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return activeUser(id, domain.RoleCitizen), nil
		},
	}
	app, tokens := newApp(t, users)
	token, _, err := tokens.GenerateToken("u-42", domain.RoleCitizen)
	require.NoError(t, err)

	status, body := call(t, app, token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u-42", body)
}

func TestPopulate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		lookup func(ctx context.Context, id string) (*domain.User, error)
		token  string
	}{
		{
			name:  "garbage token",
			token: "not-a-jwt",
		},
		{
			name: "user missing",
			lookup: func(ctx context.Context, id string) (*domain.User, error) {
				return nil, pgx.ErrNoRows
			},
		},
		{
			name: "user inactive",
			lookup: func(ctx context.Context, id string) (*domain.User, error) {
				u := activeUser(id, domain.RoleCitizen)
				u.Status = domain.UserStatusInactive
				return u, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.UserRepositoryMock{GetByIDFunc: tt.lookup}
			app, tokens := newApp(t, users)
			token := tt.token
			if token == "" {
				var err error
				token, _, err = tokens.GenerateToken("u-1", domain.RoleCitizen)
				require.NoError(t, err)
			}

			status, _ := call(t, app, token)
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestPopulate_LookupFailureIsServerError(t *testing.T) {
	users := &mocks.UserRepositoryMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	app, tokens := newApp(t, users)
	token, _, err := tokens.GenerateToken("u-1", domain.RoleCitizen)
	require.NoError(t, err)

	status, _ := call(t, app, token)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestRequireAuth(t *testing.T) {
	users := &mocks.UserRepositoryMock{}
	app, _ := newApp(t, users, auth.RequireAuth)

	status, _ := call(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthorizerRequire_NamesRole(t *testing.T) {
	users := &mocks.UserRepositoryMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return activeUser(id, domain.RoleCitizen), nil
		},
	}
	authz := auth.NewAuthorizer(auth.DefaultPolicy())
	app, tokens := newApp(t, users, authz.Require(auth.CapAgenciesManage))
	token, _, err := tokens.GenerateToken("u-1", domain.RoleCitizen)
	require.NoError(t, err)

	status, body := call(t, app, token)
	assert.Equal(t, http.StatusForbidden, status)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "role CITIZEN lacks capability agencies:manage", payload["message"])

	status, _ = call(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
