package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/citizen-engagement/internal/api/http"
	"github.com/spec-kit/citizen-engagement/internal/api/http/handlers"
	"github.com/spec-kit/citizen-engagement/internal/ai"
	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/config"
	"github.com/spec-kit/citizen-engagement/internal/events"
	"github.com/spec-kit/citizen-engagement/internal/observability"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
	"github.com/spec-kit/citizen-engagement/internal/queue"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/service"
	"github.com/spec-kit/citizen-engagement/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	notifications := queue.New(redis.Client, cfg.Queue, logger)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	agencyRepo := repository.NewAgencyRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	ruleRepo := repository.NewRoutingRuleRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	dispatcher := events.NewInMemoryDispatcher(logger)

	var suggester service.AgencySuggester
	if cfg.AI.Enabled() {
		suggester = ai.NewAnthropicSuggester(cfg.AI, logger)
	} else {
		logger.Info("AI agency suggestions disabled")
	}

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:     userRepo,
		TokenManager: tokens,
		BcryptCost:   cfg.Auth.BcryptCost,
		Logger:       logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		AgencyRepo: agencyRepo,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	agencyService := service.NewAgencyService(agencyRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo)
	ruleService := service.NewRoutingRuleService(service.RoutingRuleDependencies{
		RuleRepo:     ruleRepo,
		CategoryRepo: categoryRepo,
		AgencyRepo:   agencyRepo,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:        repository.NewTicketRepository(pool),
		CommunicationRepo: repository.NewCommunicationRepository(pool),
		HistoryRepo:       repository.NewTicketHistoryRepository(pool),
		CategoryRepo:      categoryRepo,
		AgencyRepo:        agencyRepo,
		UserRepo:          userRepo,
		RuleRepo:          ruleRepo,
		Suggester:         suggester,
		Tx:                persistence.NewTxManager(pool),
		Dispatcher:        dispatcher,
		Logger:            logger,
	})
	service.NewNotificationService(dispatcher, notifications, userRepo, logger).RegisterHandlers()

	if created, err := userService.EnsureDefaultAdmin(ctx, cfg.Admin); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	} else if created {
		logger.Info("default admin created", zap.String("phone", cfg.Admin.Phone))
	}

	metrics := observability.NewMetrics()
	v := validation.New()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		BodyLimit:             cfg.App.BodyLimitBytes,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:        cfg.App.RequestTimeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Development:    cfg.App.IsDevelopment(),
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Prefix: cfg.App.APIPrefix,
		Health: handlers.NewHealthHandler(handlers.HealthDependencies{
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Postgres:    pg,
			Redis:       redis,
			Queue:       notifications,
			Metrics:     metrics,
			Logger:      logger,
		}),
		Auth:         handlers.NewAuthHandler(authService, v),
		Users:        handlers.NewUsersHandler(userService, v),
		Agencies:     handlers.NewAgenciesHandler(agencyService, v),
		Tickets:      handlers.NewTicketsHandler(ticketService, v),
		Categories:   handlers.NewCategoriesHandler(categoryService, v),
		RoutingRules: handlers.NewRoutingRulesHandler(ruleService, v),
		Middleware:   auth.NewMiddleware(tokens, userRepo),
		Authorizer:   auth.NewAuthorizer(auth.DefaultPolicy()),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("prefix", cfg.App.APIPrefix))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	startWatchdog(logger, cfg.App.ShutdownTimeout)

	if err := app.ShutdownWithTimeout(cfg.App.ShutdownTimeout); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

// startWatchdog forces the process down when graceful shutdown hangs.
func startWatchdog(logger *zap.Logger, timeout time.Duration) {
	go func() {
		time.Sleep(timeout + 5*time.Second)
		logger.Error("graceful shutdown timed out, forcing exit")
		_ = logger.Sync()
		os.Exit(1)
	}()
}
