package export

import (
	"github.com/consort-app/consort/internal/loader"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type Config struct {
	// OutputPath is the directory generated files are written to. It is
	// served statically under the very same path.
	OutputPath string
}

type Export struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
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

func (e *Controller) Routes() []loader.Route {
	return []loader.Route{
		{Method: fiber.MethodPost, Path: "/", Handlers: []fiber.Handler{e.Create}},
	}
}
