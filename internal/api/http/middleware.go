package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/observability"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// MiddlewareConfig tunes the global chain.
type MiddlewareConfig struct {
	Timeout        time.Duration
	AllowedOrigins string
	Development    bool
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	app.Use(requestid.New())
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics, cfg.Development))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(compress.New())
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders every error, including recovered panics, as the error envelope.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, development bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		var stack []byte
		defer func() {
			if r := recover(); r != nil {
				stack = debug.Stack()
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", stack))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err == nil {
				return
			}

			domainErr := toDomainError(err)
			if metrics != nil {
				metrics.RecordError(routePattern(c), c.Method(), domainErr.Code)
			}
			if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
				logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
			} else {
				logger.Debug("request rejected", zap.String("path", c.Path()), zap.Error(domainErr))
			}

			body := dto.ErrorEnvelope{
				Status:     "error",
				StatusCode: domainErr.HTTPStatus,
				Code:       domainErr.Code,
				Message:    domainErr.Message,
			}
			if len(domainErr.Details) > 0 {
				body.Details = domainErr.Details
			}
			for _, f := range domainErr.Fields {
				body.Errors = append(body.Errors, dto.FieldError{Field: f.Field, Message: f.Message})
			}
			if development && domainErr.HTTPStatus >= fiber.StatusInternalServerError {
				body.Stack = devStack(domainErr, stack)
			}
			err = c.Status(domainErr.HTTPStatus).JSON(body)
		}()
		return c.Next()
	}
}

// toDomainError also understands fiber's own errors such as unmatched routes.
func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return apperrors.NewDomainError("NOT_FOUND", "route not found", fiberErr.Code, nil)
		case fiber.StatusMethodNotAllowed:
			return apperrors.NewDomainError("METHOD_NOT_ALLOWED", fiberErr.Message, fiberErr.Code, nil)
		case fiber.StatusRequestEntityTooLarge:
			return apperrors.NewDomainError("PAYLOAD_TOO_LARGE", "request body too large", fiberErr.Code, nil)
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return apperrors.NewDomainError("BAD_REQUEST", fiberErr.Message, fiberErr.Code, nil)
		}
		return apperrors.ToDomainError(apperrors.NewInternalError(err))
	}
	return apperrors.ToDomainError(err)
}

func devStack(domainErr *apperrors.DomainError, stack []byte) string {
	if len(stack) > 0 {
		return string(stack)
	}
	if domainErr.Err != nil {
		return strings.ReplaceAll(domainErr.Err.Error(), ": ", ":\n  ")
	}
	return ""
}

func routePattern(c *fiber.Ctx) string {
	if route := c.Route(); route != nil && route.Path != "" {
		return route.Path
	}
	return c.Path()
}
