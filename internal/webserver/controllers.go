package webserver

import (
	"context"
	"os"
	"time"

	"github.com/consort-app/consort/internal/loader"
	"github.com/consort-app/consort/internal/webserver/controller/deletion"
	"github.com/consort-app/consort/internal/webserver/controller/export"
	"github.com/consort-app/consort/internal/webserver/controller/health"
	"github.com/consort-app/consort/internal/webserver/controller/session"
	"github.com/consort-app/consort/internal/webserver/controller/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const deletionName = "data-deletion"

// Cache is what controllers need from the cache store
type Cache interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Storage() fiber.Storage
}

// SetupControllers registers every controller under the name its routes are
// served at, relative to the API prefix
func SetupControllers(cfg Config, appFs afero.Fs, cache Cache, logger logrus.FieldLogger) *loader.Registry {
	if cfg.TmpDir == "" {
		cfg.TmpDir = os.TempDir()
	}
	registry := loader.NewRegistry()

	registry.Register("health", health.NewController(cache, logger))

	registry.Register("storage", storage.NewController(appFs, storage.Config{
		StoragePath: cfg.StoragePath,
		URLPrefix:   "/storage",
	}, logger))

	registry.Register("exports", export.NewController(appFs, export.Config{
		OutputPath: GeneratedPath(cfg),
	}, logger))

	registry.Register("session", session.NewController(cache.Storage(), session.Config{
		Expiration:   cfg.SessionExpiration,
		CookieSecure: cfg.CookieSecure,
	}, logger))

	registry.Register(deletionName, deletion.NewController(cache, deletion.Config{
		AppSecret: cfg.FacebookAppSecret,
		AppURL:    cfg.AppURL,
		MountPath: loader.MountPath(cfg.APIPrefix, deletionName),
	}, logger))

	return registry
}
