package webserver

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/consort-app/consort/internal/loader"
	"github.com/consort-app/consort/internal/webserver/errorhandler"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Startup stages, in the order a successful boot goes through them
const (
	StageStatic           = "static"
	StageRequestReporter  = "request-reporter"
	StageLogger           = "logger"
	StageCORS             = "cors"
	StageURLEncoded       = "urlencoded"
	StageJSON             = "json"
	StageRoutes           = "routes"
	StageCache            = "cache"
	StageErrorReporter    = "error-reporter"
	StageExceptionHandler = "exception-handler"
	StageListen           = "listen"
)

// Config holds the settings of the server and the controllers it ships
type Config struct {
	Port              int
	BodyLimit         int
	APIPrefix         string
	Verbose           bool
	StoragePath       string
	TmpDir            string
	Version           string
	SessionExpiration time.Duration
	CookieSecure      bool
	FacebookAppSecret string
	AppURL            string
}

// Store is the backing store the server waits for before accepting requests
type Store interface {
	Connect(ctx context.Context) error
	Close() error
}

// Server is the API server, built by New and started by Listen or Serve
type Server struct {
	app    *fiber.App
	config Config
	store  Store
	chain  *errorhandler.Chain
	logger logrus.FieldLogger
	listen func(addr string) error

	mu     sync.Mutex
	stages []string
	routes []loader.Mounted
}

// New builds the Fiber application and registers static files, request
// middleware and routes. Error handlers are attached by Listen once the store
// is connected.
func New(cfg Config, appFs afero.Fs, store Store, registry *loader.Registry, logger logrus.FieldLogger) (*Server, error) {
	if cfg.TmpDir == "" {
		cfg.TmpDir = os.TempDir()
	}

	chain := &errorhandler.Chain{}
	app := fiber.New(fiber.Config{
		AppName:               cfg.Version,
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          chain.Handle,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:    app,
		config: cfg,
		store:  store,
		chain:  chain,
		logger: logger,
	}
	s.listen = app.Listen

	s.static(appFs)
	s.middleware()

	routes, err := loader.Load(app, registry, loader.Options{
		Prefix:  cfg.APIPrefix,
		Verbose: cfg.Verbose,
		Ignore:  loader.DefaultIgnore,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("loading controllers: %w", err)
	}
	s.routes = routes
	s.record(StageRoutes)

	return s, nil
}

// Listen waits for the store, attaches the error handlers after every route
// and binds the configured port. It blocks until the server stops.
func (s *Server) Listen(ctx context.Context) error {
	return s.start(ctx, func() error {
		return s.listen(fmt.Sprintf(":%d", s.config.Port))
	})
}

// Serve is like Listen but accepts connections from ln
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	return s.start(ctx, func() error {
		return s.app.Listener(ln)
	})
}

func (s *Server) start(ctx context.Context, serve func() error) error {
	s.record(StageCache)
	if err := s.store.Connect(ctx); err != nil {
		return fmt.Errorf("waiting for the cache store: %w", err)
	}

	s.chain.Attach(errorhandler.Reporter(sentryfiber.GetHubFromContext))
	s.record(StageErrorReporter)
	s.chain.Attach(errorhandler.Exception(s.logger))
	s.record(StageExceptionHandler)

	s.record(StageListen)
	s.logger.Infof("App server started on port: %d", s.config.Port)
	return serve()
}

// Shutdown stops accepting connections, waits for the active ones and then
// closes the store
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return s.store.Close()
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Stages returns the startup stages run so far
func (s *Server) Stages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.stages...)
}

// Routes returns the routes mounted by the controller loader
func (s *Server) Routes() []loader.Mounted {
	return s.routes
}

func (s *Server) record(stage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages = append(s.stages, stage)
}
