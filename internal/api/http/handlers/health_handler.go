package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/api/dto"
	"github.com/spec-kit/citizen-engagement/internal/observability"
	"github.com/spec-kit/citizen-engagement/internal/queue"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueStats reports notification queue depth.
type QueueStats interface {
	Counts(ctx context.Context) (queue.Counts, error)
}

// HealthHandler responds to liveness, readiness and metrics probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    Pinger
	redis       Pinger
	queue       QueueStats
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// HealthDependencies bundles what the probes inspect. Queue, Metrics and Logger are optional.
type HealthDependencies struct {
	ServiceName string
	Version     string
	Postgres    Pinger
	Redis       Pinger
	Queue       QueueStats
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// Probe failures are logged; responses only say "unavailable".
const unavailable = "unavailable"

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		logger:      logger,
		serviceName: deps.ServiceName,
		version:     deps.Version,
		postgres:    deps.Postgres,
		redis:       deps.Redis,
		queue:       deps.Queue,
		metrics:     deps.Metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return ok(c, fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	deps := fiber.Map{}
	ready := true
	for name, p := range map[string]Pinger{"postgres": h.postgres, "redis": h.redis} {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = unavailable
			ready = false
			continue
		}
		deps[name] = "ok"
	}

	if ready {
		return ok(c, fiber.Map{"status": "ready", "dependencies": deps})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorEnvelope{
		Status:     "error",
		StatusCode: fiber.StatusServiceUnavailable,
		Code:       "DEPENDENCY_UNAVAILABLE",
		Message:    "one or more dependencies unavailable",
		Details:    deps,
	})
}

// Metrics reports request counters and queue depth.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	body := fiber.Map{}
	if h.metrics != nil {
		body["http"] = h.metrics.Snapshot()
	}
	if h.queue != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		counts, err := h.queue.Counts(ctx)
		if err != nil {
			h.logger.Warn("queue counts unavailable", zap.Error(err))
			body["queue"] = unavailable
		} else {
			body["queue"] = counts
		}
	}
	return ok(c, body)
}
