package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

const userKey = "auth_user"

// Middleware resolves bearer tokens into users.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Populate attaches the caller to the request when a bearer token is sent.
// Requests without a token continue anonymously; a token that fails to
// resolve to an active user is rejected.
func (m *Middleware) Populate(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}
	if !user.IsActive() {
		return apperrors.NewUnauthorized("user account is inactive")
	}

	c.Locals(userKey, user)
	return c.Next()
}

// RequireAuth rejects anonymous requests.
func RequireAuth(c *fiber.Ctx) error {
	if _, ok := CurrentUser(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.Next()
}

// CurrentUser retrieves the authenticated user, if any.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(userKey).(*domain.User)
	return user, ok && user != nil
}
