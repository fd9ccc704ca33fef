package deletion

import (
	"context"
	"time"

	"github.com/consort-app/consort/internal/loader"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix = "data-deletion:"
	// Requests are kept long enough for the user to check them
	defaultTTL = 90 * 24 * time.Hour
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type Config struct {
	AppSecret string
	AppURL    string
	// MountPath is where the controller routes are served, status links
	// are built from it
	MountPath string
	TTL       time.Duration
}

// Request is what gets stored for every deletion callback received
type Request struct {
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

type Confirmation struct {
	URL              string `json:"url"`
	ConfirmationCode string `json:"confirmation_code"`
}

type Controller struct {
	store  Store
	config Config
	logger logrus.FieldLogger
}

func NewController(store Store, cfg Config, logger logrus.FieldLogger) *Controller {
	if cfg.TTL == 0 {
		cfg.TTL = defaultTTL
	}
	return &Controller{
		store:  store,
		config: cfg,
		logger: logger,
	}
}

func (d *Controller) Routes() []loader.Route {
	return []loader.Route{
		{Method: fiber.MethodPost, Path: "/", Handlers: []fiber.Handler{d.Create}},
		{Method: fiber.MethodGet, Path: "/:code", Handlers: []fiber.Handler{d.Status}},
	}
}
