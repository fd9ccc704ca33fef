package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/consort-app/consort/internal/webserver/controller/health"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
)

type pingerMock struct {
	err error
}

func (p pingerMock) Ping(ctx context.Context) error {
	return p.err
}

func TestCheck(t *testing.T) {
	var cases = []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   health.Status
	}{
		{"Healthy when the cache answers", nil, http.StatusOK, health.Status{Status: "ok", Cache: "ok"}},
		{"Degraded when the cache is down", errors.New("connection refused"), http.StatusServiceUnavailable, health.Status{Status: "degraded", Cache: "unavailable"}},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			ctrl := health.NewController(pingerMock{err: tcase.pingErr}, logger)

			app := fiber.New()
			app.Get("/health", ctrl.Check)

			req, _ := http.NewRequest(http.MethodGet, "/health", nil)
			response, err := app.Test(req)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if response.StatusCode != tcase.expectedStatus {
				t.Errorf("Wrong status code received, expected %d, got %d", tcase.expectedStatus, response.StatusCode)
			}

			var body health.Status
			if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
				t.Fatalf("Unexpected error decoding body: %v", err)
			}
			if body != tcase.expectedBody {
				t.Errorf("Wrong body, expected %+v, got %+v", tcase.expectedBody, body)
			}
		})
	}
}
