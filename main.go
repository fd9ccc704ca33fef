package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/consort-app/consort/internal/cache"
	"github.com/consort-app/consort/internal/webserver"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	shutdownTimeout = 10 * time.Second
	sentryFlush     = 2 * time.Second
)

var version string = "unknown"

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables only")
	}

	cfg, err := readConfig()
	if err != nil {
		log.Fatal(err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     version,
	}); err != nil {
		log.WithError(err).Fatal("Error initialising error reporting")
	}
	defer sentry.Flush(sentryFlush)

	if err := run(cfg, afero.NewOsFs(), log); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(sentryFlush)
		log.Fatal(err)
	}
}

func run(cfg Config, appFs afero.Fs, log logrus.FieldLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := cache.New(cfg.cacheOptions())
	wsCfg := cfg.webserverConfig()
	registry := webserver.SetupControllers(wsCfg, appFs, store, log)
	server, err := webserver.New(wsCfg, appFs, store, registry, log)
	if err != nil {
		return err
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.Listen(ctx)
	}()

	select {
	case err := <-errs:
		store.Close()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// Listen may have been interrupted while still waiting for the store
	if err := <-errs; err != nil {
		log.WithError(err).Debug("Server stopped")
	}
	return nil
}
