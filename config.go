package main

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/consort-app/consort/internal/cache"
	"github.com/consort-app/consort/internal/webserver"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config stores all settings that can be passed to the application through
// environment variables or a .env file
type Config struct {
	// Port defines the port number in which the webserver listens for requests
	Port int `env:"PORT" env-default:"1500" env-description:"Port number in which the webserver listens for requests"`
	// SentryDSN enables error reporting when set
	SentryDSN         string `env:"SENTRY_DSN" env-description:"Sentry DSN, error reporting is disabled if empty"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" env-default:"development"`
	// StoragePath is the local directory served under /storage
	StoragePath string `env:"STORAGE_PATH" env-default:"storage" env-description:"Directory served under /storage"`
	// BodyLimit is the maximum request body size in bytes
	BodyLimit int    `env:"BODY_LIMIT" env-default:"104857600" env-description:"Maximum request body size in bytes"`
	APIPrefix string `env:"API_PREFIX" env-default:"api" env-description:"URL prefix controllers are mounted under"`
	Verbose   bool   `env:"VERBOSE" env-default:"true" env-description:"Log every mounted route"`
	// Redis settings for the cache and session store
	RedisHost           string        `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort           int           `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword       string        `env:"REDIS_PASSWORD"`
	RedisDB             int           `env:"REDIS_DB" env-default:"0"`
	RedisConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" env-default:"10s" env-description:"How long to wait for Redis at startup"`
	// SessionExpiration is how long an idle session is kept
	SessionExpiration time.Duration `env:"SESSION_EXPIRATION" env-default:"24h"`
	// FacebookAppSecret verifies signed requests of the data deletion callback
	FacebookAppSecret string `env:"FACEBOOK_APP_SECRET"`
	// AppURL is the public URL of the server, used to build status links
	AppURL   string `env:"APP_URL" env-default:"http://localhost:1500"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info" env-description:"One of trace, debug, info, warn or error"`
}

func readConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration from environment variables: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("port %d out of range", cfg.Port)
	}
	return cfg, nil
}

func (c Config) cacheOptions() cache.Options {
	return cache.Options{
		Addr:           net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort)),
		Password:       c.RedisPassword,
		DB:             c.RedisDB,
		ConnectTimeout: c.RedisConnectTimeout,
	}
}

func (c Config) webserverConfig() webserver.Config {
	return webserver.Config{
		Port:              c.Port,
		BodyLimit:         c.BodyLimit,
		APIPrefix:         c.APIPrefix,
		Verbose:           c.Verbose,
		StoragePath:       c.StoragePath,
		Version:           version,
		SessionExpiration: c.SessionExpiration,
		CookieSecure:      strings.HasPrefix(c.AppURL, "https://"),
		FacebookAppSecret: c.FacebookAppSecret,
		AppURL:            c.AppURL,
	}
}
