package health

import (
	"context"
	"time"

	"github.com/consort-app/consort/internal/loader"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

type Controller struct {
	cache  Pinger
	logger logrus.FieldLogger
}

func NewController(cache Pinger, logger logrus.FieldLogger) *Controller {
	return &Controller{
		cache:  cache,
		logger: logger,
	}
}

func (h *Controller) Routes() []loader.Route {
	return []loader.Route{
		{Method: fiber.MethodGet, Path: "/", Handlers: []fiber.Handler{h.Check}},
	}
}

func (h *Controller) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		h.logger.WithError(err).Warn("Health check could not reach the cache")
		return c.Status(fiber.StatusServiceUnavailable).JSON(Status{Status: "degraded", Cache: "unavailable"})
	}
	return c.JSON(Status{Status: "ok", Cache: "ok"})
}
