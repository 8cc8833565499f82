package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizen-engagement/internal/api/http/handlers"
	"github.com/spec-kit/citizen-engagement/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Prefix       string
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Users        *handlers.UsersHandler
	Agencies     *handlers.AgenciesHandler
	Tickets      *handlers.TicketsHandler
	Categories   *handlers.CategoriesHandler
	RoutingRules *handlers.RoutingRulesHandler
	Middleware   *auth.Middleware
	Authorizer   *auth.Authorizer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	require := cfg.Authorizer.Require
	app.Get("/health/metrics", cfg.Middleware.Populate, require(auth.CapMetricsRead), cfg.Health.Metrics)
	api := app.Group(cfg.Prefix, cfg.Middleware.Populate)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", auth.RequireAuth, cfg.Auth.Me)

	users := api.Group("/users")
	users.Get("/", require(auth.CapUsersManage), cfg.Users.List)
	users.Post("/", require(auth.CapUsersManage), cfg.Users.Create)
	users.Get("/:id", require(auth.CapUsersReadSelf), cfg.Users.Get)
	users.Patch("/:id", require(auth.CapUsersReadSelf), cfg.Users.Update)
	users.Delete("/:id", require(auth.CapUsersManage), cfg.Users.Deactivate)

	agencies := api.Group("/agencies")
	agencies.Get("/", cfg.Agencies.List)
	agencies.Get("/:id", cfg.Agencies.Get)
	agencies.Post("/", require(auth.CapAgenciesManage), cfg.Agencies.Create)
	agencies.Patch("/:id", require(auth.CapAgenciesManage), cfg.Agencies.Update)
	agencies.Delete("/:id", require(auth.CapAgenciesManage), cfg.Agencies.Delete)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", require(auth.CapCategoriesManage), cfg.Categories.Create)
	categories.Patch("/:id", require(auth.CapCategoriesManage), cfg.Categories.Update)
	categories.Delete("/:id", require(auth.CapCategoriesManage), cfg.Categories.Delete)

	rules := api.Group("/routing-rules", require(auth.CapRoutingManage))
	rules.Get("/", cfg.RoutingRules.List)
	rules.Get("/:id", cfg.RoutingRules.Get)
	rules.Post("/", cfg.RoutingRules.Create)
	rules.Patch("/:id", cfg.RoutingRules.Update)
	rules.Delete("/:id", cfg.RoutingRules.Delete)

	tickets := api.Group("/tickets")
	// Anonymous submissions carry no token.
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", require(auth.CapTicketsRead), cfg.Tickets.List)
	tickets.Get("/:id", require(auth.CapTicketsRead), cfg.Tickets.Get)
	tickets.Patch("/:id", require(auth.CapTicketsWork), cfg.Tickets.Update)
	tickets.Patch("/:id/assignment", require(auth.CapTicketsAssign), cfg.Tickets.Assign)
	tickets.Post("/:id/transfer", require(auth.CapTicketsWork), cfg.Tickets.Transfer)
	tickets.Get("/:id/communications", require(auth.CapTicketsRead), cfg.Tickets.ListCommunications)
	tickets.Post("/:id/communications", require(auth.CapCommunicationsWrite), cfg.Tickets.AddCommunication)
	tickets.Get("/:id/history", require(auth.CapTicketsWork), cfg.Tickets.History)
}
