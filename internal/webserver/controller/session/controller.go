package session

import (
	"time"

	"github.com/consort-app/consort/internal/loader"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const cookieName = "consort_session"

type Config struct {
	Expiration   time.Duration
	CookieSecure bool
}

type Session struct {
	ID     string            `json:"id"`
	Fresh  bool              `json:"fresh"`
	Values map[string]string `json:"values"`
}

type Controller struct {
	store  *session.Store
	logger logrus.FieldLogger
}

// NewController keeps sessions in storage, which is expected to be the shared
// cache store
func NewController(storage fiber.Storage, cfg Config, logger logrus.FieldLogger) *Controller {
	return &Controller{
		store: session.New(session.Config{
			Storage:        storage,
			Expiration:     cfg.Expiration,
			KeyLookup:      "cookie:" + cookieName,
			CookieSecure:   cfg.CookieSecure,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
		logger: logger,
	}
}

func (s *Controller) Routes() []loader.Route {
	return []loader.Route{
		{Method: fiber.MethodGet, Path: "/", Handlers: []fiber.Handler{s.Show}},
		{Method: fiber.MethodPut, Path: "/", Handlers: []fiber.Handler{s.Update}},
		{Method: fiber.MethodDelete, Path: "/", Handlers: []fiber.Handler{s.Destroy}},
	}
}

func (s *Controller) load(c *fiber.Ctx) (*session.Session, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		s.logger.WithError(err).Error("Error loading session")
		return nil, fiber.ErrInternalServerError
	}
	return sess, nil
}

func toSession(sess *session.Session) Session {
	values := map[string]string{}
	for _, key := range sess.Keys() {
		if value, ok := sess.Get(key).(string); ok {
			values[key] = value
		}
	}
	return Session{ID: sess.ID(), Fresh: sess.Fresh(), Values: values}
}
