package storage

import (
	"path"

	"github.com/consort-app/consort/internal/loader"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Config struct {
	StoragePath string
	// URLPrefix is where the storage directory is served statically
	URLPrefix string
}

type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type Controller struct {
	appFs  afero.Fs
	config Config
	logger logrus.FieldLogger
}

func NewController(appFs afero.Fs, cfg Config, logger logrus.FieldLogger) *Controller {
	return &Controller{
		appFs:  appFs,
		config: cfg,
		logger: logger,
	}
}

func (s *Controller) Routes() []loader.Route {
	return []loader.Route{
		{Method: fiber.MethodGet, Path: "/", Handlers: []fiber.Handler{s.List}},
		{Method: fiber.MethodPost, Path: "/", Handlers: []fiber.Handler{s.Upload}},
		{Method: fiber.MethodDelete, Path: "/:name", Handlers: []fiber.Handler{s.Delete}},
	}
}

func (s *Controller) url(name string) string {
	return path.Join("/", s.config.URLPrefix, name)
}
