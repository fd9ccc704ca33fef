package loader_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/consort-app/consort/internal/loader"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type stubController struct {
	routes []loader.Route
}

func (s stubController) Routes() []loader.Route {
	return s.routes
}

func reply(body string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(body)
	}
}

func TestMountPath(t *testing.T) {
	var cases = []struct {
		name     string
		prefix   string
		ctrlName string
		expected string
	}{
		{"Plain name is appended to the prefix", "api", "users", "/api/users"},
		{"Prefix slashes are normalised", "/api/", "users", "/api/users"},
		{"Index maps to the prefix root", "api", "index", "/api"},
		{"Nested index maps to its parent", "api", "users/index", "/api/users"},
		{"Nested names keep their path", "api", "users/profile", "/api/users/profile"},
		{"Empty prefix mounts at the root", "", "health", "/health"},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			if got := loader.MountPath(tcase.prefix, tcase.ctrlName); got != tcase.expected {
				t.Errorf("Wrong mount path, expected '%s', got '%s'", tcase.expected, got)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	reg := loader.NewRegistry()
	reg.Register("users", stubController{routes: []loader.Route{
		{Method: "get", Path: "/", Handlers: []fiber.Handler{reply("list")}},
		{Method: fiber.MethodGet, Path: "/:id", Handlers: []fiber.Handler{reply("detail")}},
	}})
	reg.Register("index", stubController{routes: []loader.Route{
		{Method: fiber.MethodGet, Path: "/", Handlers: []fiber.Handler{reply("root")}},
	}})
	reg.Register("users.spec", stubController{routes: []loader.Route{
		{Method: fiber.MethodGet, Path: "/spec", Handlers: []fiber.Handler{reply("spec")}},
	}})
	reg.Register("docs/readme.md", stubController{routes: []loader.Route{
		{Method: fiber.MethodGet, Path: "/", Handlers: []fiber.Handler{reply("readme")}},
	}})
	reg.Register("jobs/cleanup.action", stubController{routes: []loader.Route{
		{Method: fiber.MethodPost, Path: "/", Handlers: []fiber.Handler{reply("action")}},
	}})

	logger, hook := test.NewNullLogger()
	app := fiber.New()
	mounted, err := loader.Load(app, reg, loader.Options{Prefix: "api", Verbose: true, Ignore: loader.DefaultIgnore}, logger)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(mounted) != 3 {
		t.Fatalf("Expected 3 mounted routes, got %d: %v", len(mounted), mounted)
	}

	var cases = []struct {
		name           string
		method         string
		url            string
		expectedStatus int
		expectedBody   string
	}{
		{"Controller root", http.MethodGet, "/api/users", http.StatusOK, "list"},
		{"Controller param route", http.MethodGet, "/api/users/42", http.StatusOK, "detail"},
		{"Index controller", http.MethodGet, "/api", http.StatusOK, "root"},
		{"Ignored spec controller", http.MethodGet, "/api/users.spec/spec", http.StatusNotFound, ""},
		{"Ignored markdown controller", http.MethodGet, "/api/docs/readme.md", http.StatusNotFound, ""},
		{"Ignored action controller", http.MethodPost, "/api/jobs/cleanup.action", http.StatusNotFound, ""},
		{"Routes outside the prefix are not mounted", http.MethodGet, "/users", http.StatusNotFound, ""},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			req, _ := http.NewRequest(tcase.method, tcase.url, nil)
			response, err := app.Test(req)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if response.StatusCode != tcase.expectedStatus {
				t.Errorf("Wrong status code received, expected %d, got %d", tcase.expectedStatus, response.StatusCode)
			}
			if tcase.expectedBody == "" {
				return
			}
			body, _ := io.ReadAll(response.Body)
			if string(body) != tcase.expectedBody {
				t.Errorf("Wrong body, expected '%s', got '%s'", tcase.expectedBody, body)
			}
		})
	}

	mountedEntries := 0
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Route mounted" {
			mountedEntries++
		}
	}
	if mountedEntries != 3 {
		t.Errorf("Expected a log entry per mounted route in verbose mode, got %d", mountedEntries)
	}
}

func TestLoadQuiet(t *testing.T) {
	reg := loader.NewRegistry()
	reg.Register("users", stubController{routes: []loader.Route{
		{Method: fiber.MethodGet, Path: "/", Handlers: []fiber.Handler{reply("list")}},
	}})

	logger, hook := test.NewNullLogger()
	if _, err := loader.Load(fiber.New(), reg, loader.Options{Prefix: "api"}, logger); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("Expected no log entries when not verbose, got %d", len(hook.AllEntries()))
	}
}

func TestLoadRejectsInvalidPattern(t *testing.T) {
	_, err := loader.Load(fiber.New(), loader.NewRegistry(), loader.Options{Ignore: []string{"[unclosed"}}, logrus.New())
	if err == nil {
		t.Error("Expected an error for an invalid ignore pattern, got nil")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	reg := loader.NewRegistry()
	reg.Register("users", stubController{})

	defer func() {
		if recover() == nil {
			t.Error("Expected registering a duplicate name to panic")
		}
	}()
	reg.Register("/users/", stubController{})
}

func TestNamesAreSorted(t *testing.T) {
	reg := loader.NewRegistry()
	for _, name := range []string{"storage", "exports", "health"} {
		reg.Register(name, stubController{})
	}

	names := reg.Names()
	expected := []string{"exports", "health", "storage"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Wrong order, expected %v, got %v", expected, names)
			break
		}
	}
}
