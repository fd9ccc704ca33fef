package webserver

import (
	"path/filepath"

	"github.com/consort-app/consort/internal/webserver/bodyparser"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"
)

const generatedDir = "consort"

// Mount is a directory served as is under a URL path
type Mount struct {
	Path string
	Root string
}

// StaticMounts lists every directory exposed over HTTP. Generated files are
// served under their own filesystem path.
func StaticMounts(cfg Config) []Mount {
	generated := filepath.Join(cfg.TmpDir, generatedDir)
	return []Mount{
		{Path: "/storage", Root: cfg.StoragePath},
		{Path: filepath.ToSlash(generated), Root: generated},
	}
}

// GeneratedPath is the directory generated files are written to
func GeneratedPath(cfg Config) string {
	return filepath.Join(cfg.TmpDir, generatedDir)
}

func (s *Server) static(appFs afero.Fs) {
	httpFs := afero.NewHttpFs(appFs)
	for _, mount := range StaticMounts(s.config) {
		s.app.Use(mount.Path, filesystem.New(filesystem.Config{
			Root: httpFs.Dir(mount.Root),
		}))
	}
	s.record(StageStatic)
}

func (s *Server) middleware() {
	s.app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	s.app.Use(recover.New())
	s.record(StageRequestReporter)

	s.app.Use(RequestLogger(s.logger))
	s.record(StageLogger)

	// Any origin is accepted and reflected back
	s.app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
	}))
	s.record(StageCORS)

	s.app.Use(bodyparser.URLEncoded())
	s.record(StageURLEncoded)

	s.app.Use(bodyparser.JSON())
	s.record(StageJSON)
}
