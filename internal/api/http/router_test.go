package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/citizen-engagement/internal/api/http"
	"github.com/spec-kit/citizen-engagement/internal/api/http/handlers"
	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/observability"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/repository/mocks"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
)

const (
	secret    = "0123456789abcdef0123456789abcdef"
	citizenID = "6f1c2a9e-0000-4000-8000-000000000001"
	adminID   = "6f1c2a9e-0000-4000-8000-000000000002"
	ticketID  = "6f1c2a9e-0000-4000-8000-0000000000aa"
)

type testServer struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	agencies *mocks.AgencyRepositoryMock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := map[string]*domain.User{
		citizenID: {ID: citizenID, Name: "Amina", Role: domain.RoleCitizen, Status: domain.UserStatusActive, PasswordHash: "secret-hash"},
		adminID:   {ID: adminID, Name: "Root", Role: domain.RoleAdmin, Status: domain.UserStatusActive},
	}
	userRepo := &mocks.UserRepositoryMock{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			u, ok := users[id]
			if !ok {
				return nil, pgx.ErrNoRows
			}
			cp := *u
			return &cp, nil
		},
	}
	agencyRepo := &mocks.AgencyRepositoryMock{
		ListFunc: func(ctx context.Context, filter repository.AgencyFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Agency, int64, error) {
			return []domain.Agency{{ID: "a1", Name: "Water Board", Status: domain.AgencyStatusActive}}, 11, nil
		},
	}
	categoryRepo := &mocks.CategoryRepositoryMock{}
	ruleRepo := &mocks.RoutingRuleRepositoryMock{}

	tokens := auth.NewTokenManager(secret, time.Hour)
	v := validation.New()
	logger := zap.NewNop()

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo, TokenManager: tokens, BcryptCost: bcrypt.MinCost, Logger: logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:        &mocks.TicketRepositoryMock{},
		CommunicationRepo: &mocks.CommunicationRepositoryMock{},
		HistoryRepo:       &mocks.TicketHistoryRepositoryMock{},
		CategoryRepo:      categoryRepo,
		AgencyRepo:        agencyRepo,
		UserRepo:          userRepo,
		RuleRepo:          ruleRepo,
		Tx:                &mocks.TransactorMock{},
		Logger:            logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), httptransport.MiddlewareConfig{
		Timeout:        time.Second,
		AllowedOrigins: "*",
		Development:    true,
	})
	app.Get("/boom", func(c *fiber.Ctx) error { panic("kaboom") })
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Prefix:     "/api/v1",
		Health:     handlers.NewHealthHandler(handlers.HealthDependencies{ServiceName: "test", Version: "t"}),
		Auth:       handlers.NewAuthHandler(authService, v),
		Users:      handlers.NewUsersHandler(service.NewUserService(service.UserDependencies{UserRepo: userRepo, AgencyRepo: agencyRepo, Logger: logger}), v),
		Agencies:   handlers.NewAgenciesHandler(service.NewAgencyService(agencyRepo, logger), v),
		Tickets:    handlers.NewTicketsHandler(ticketService, v),
		Categories: handlers.NewCategoriesHandler(service.NewCategoryService(categoryRepo), v),
		RoutingRules: handlers.NewRoutingRulesHandler(service.NewRoutingRuleService(service.RoutingRuleDependencies{
			RuleRepo: ruleRepo, CategoryRepo: categoryRepo, AgencyRepo: agencyRepo,
		}), v),
		Middleware: auth.NewMiddleware(tokens, userRepo),
		Authorizer: auth.NewAuthorizer(auth.DefaultPolicy()),
	})
	return &testServer{app: app, tokens: tokens, agencies: agencyRepo}
}

func (s *testServer) token(t *testing.T, userID string, role domain.UserRole) string {
	t.Helper()
	tok, _, err := s.tokens.GenerateToken(userID, role)
	require.NoError(t, err)
	return tok
}

type response struct {
	Status     string            `json:"status"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Meta       map[string]int    `json:"meta"`
	Errors     []json.RawMessage `json:"errors"`
	Stack      string            `json:"stack"`
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out response
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestRoutes_ErrorEnvelope(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/v1/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, http.StatusNotFound, body.StatusCode)

	status, body = s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"phone":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "malformed request body", body.Message)

	status, body = s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"name":"A","email":"nope","phone":"x","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body.Errors, 4)
}

func TestRoutes_PanicIsRecovered(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/boom", "", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotEmpty(t, body.Stack)
}

func TestRoutes_Authentication(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := s.do(t, http.MethodGet, "/api/v1/auth/me", s.token(t, citizenID, domain.RoleCitizen), "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"id":"`+citizenID+`"`)
	assert.NotContains(t, string(body.Data), "secret-hash")
}

func TestRoutes_AuthMe(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/v1/auth/me", s.token(t, adminID, domain.RoleAdmin), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body.Status)
	var me struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &me))
	assert.Equal(t, adminID, me.ID)
	assert.Equal(t, "Root", me.Name)
	assert.Equal(t, string(domain.RoleAdmin), me.Role)

	status, body = s.do(t, http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "error", body.Status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", s.token(t, "9b6c0a36-0000-4000-8000-000000000000", domain.RoleCitizen), "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoutes_CapabilityGuard(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/agencies", s.token(t, citizenID, domain.RoleCitizen),
		`{"name":"Roads","description":"Road works","contactEmail":"roads@example.com"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "role CITIZEN lacks capability agencies:manage", body.Message)

	status, _ = s.do(t, http.MethodGet, "/api/v1/routing-rules", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoutes_AgencyListPagination(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/v1/agencies?page=2&limit=5", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, map[string]int{"total": 11, "page": 2, "limit": 5, "totalPages": 3}, body.Meta)

	calls := s.agencies.ListCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.PageRequest{Page: 2, Limit: 5}, calls[0].Page)

	for _, q := range []string{"page=abc", "page=0", "limit=-1", "sortBy=password", "status=CLOSED"} {
		status, _ := s.do(t, http.MethodGet, "/api/v1/agencies?"+q, "", "")
		assert.Equal(t, http.StatusBadRequest, status, q)
	}
}

func TestRoutes_AssignmentRequiresAgentField(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	admin := s.token(t, adminID, domain.RoleAdmin)

	status, body := s.do(t, http.MethodPatch, "/api/v1/tickets/"+ticketID+"/assignment", admin, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, body.Errors, 1)
	assert.Contains(t, string(body.Errors[0]), `"agentId"`)

	status, _ = s.do(t, http.MethodPatch, "/api/v1/tickets/"+ticketID+"/assignment", admin, `{"agentId":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPatch, "/api/v1/tickets/not-a-uuid/assignment", admin, `{"agentId":null}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRoutes_AnonymousTicketValidation(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/tickets", "",
		`{"title":"Burst pipe","detailedDescription":"Water everywhere on Main St","location":"Main St","isAnonymous":true}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body.Errors, 2)
}

func TestHealth_Live(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"alive"`)
}

func TestHealth_MetricsRequiresAdmin(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/health/metrics", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/health/metrics", s.token(t, citizenID, domain.RoleCitizen), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, body := s.do(t, http.MethodGet, "/health/metrics", s.token(t, adminID, domain.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body.Status)
}
