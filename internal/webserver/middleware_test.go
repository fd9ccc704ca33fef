package webserver_test

import (
	"net/http"
	"testing"

	"github.com/consort-app/consort/internal/webserver"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRequestLogger(t *testing.T) {
	var cases = []struct {
		name           string
		url            string
		expectedStatus int
		expectedLevel  logrus.Level
	}{
		{"Handled requests are logged with their status", "/ok", http.StatusOK, logrus.InfoLevel},
		{"Failed requests are logged with the final status", "/missing", http.StatusNotFound, logrus.InfoLevel},
		{"Panicking requests are logged too", "/panic", http.StatusInternalServerError, logrus.ErrorLevel},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			app := fiber.New()
			app.Use(recover.New())
			app.Use(webserver.RequestLogger(logger))
			app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
			app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

			req, _ := http.NewRequest(http.MethodGet, tcase.url, nil)
			response, err := app.Test(req)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if response.StatusCode != tcase.expectedStatus {
				t.Errorf("Wrong status code received, expected %d, got %d", tcase.expectedStatus, response.StatusCode)
			}

			if len(hook.AllEntries()) != 1 {
				t.Fatalf("Expected one log entry per request, got %d", len(hook.AllEntries()))
			}
			entry := hook.LastEntry()
			if entry.Level != tcase.expectedLevel {
				t.Errorf("Wrong log level, expected %s, got %s", tcase.expectedLevel, entry.Level)
			}
			if entry.Data["status"] != tcase.expectedStatus {
				t.Errorf("Wrong logged status, expected %d, got %v", tcase.expectedStatus, entry.Data["status"])
			}
			if entry.Data["path"] != tcase.url {
				t.Errorf("Wrong logged path, expected %s, got %v", tcase.url, entry.Data["path"])
			}
		})
	}
}
