// Package loader mounts named controllers on a router following a path
// convention: a controller registered as "users/profile" is served under
// "/<prefix>/users/profile", and names ending in "index" collapse onto their parent.
package loader

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const indexName = "index"

// DefaultIgnore skips specs, actions and docs registered next to controllers
var DefaultIgnore = []string{"*.spec", "*.action", "*.md"}

// Route is a handler chain served at Path, relative to the controller mount path
type Route struct {
	Method   string
	Path     string
	Handlers []fiber.Handler
}

// Controller is anything that can list the routes it serves
type Controller interface {
	Routes() []Route
}

// Options controls where and how Load mounts controllers
type Options struct {
	Prefix  string
	Verbose bool
	Ignore  []string
}

// Mounted describes a route as it ended up registered on the router
type Mounted struct {
	Controller string
	Method     string
	Path       string
}

// Registry holds controllers by the name they are mounted under
type Registry struct {
	controllers map[string]Controller
}

func NewRegistry() *Registry {
	return &Registry{controllers: map[string]Controller{}}
}

// Register adds a controller under name. Registering the same name twice is a
// programming error and panics.
func (r *Registry) Register(name string, controller Controller) {
	name = strings.Trim(name, "/")
	if _, ok := r.controllers[name]; ok {
		panic(fmt.Sprintf("loader: controller %q already registered", name))
	}
	r.controllers[name] = controller
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load registers every non ignored controller of the registry on router,
// in name order, and returns the resulting routes.
func Load(router fiber.Router, reg *Registry, opts Options, logger logrus.FieldLogger) ([]Mounted, error) {
	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	var mounted []Mounted
	for _, name := range reg.Names() {
		if ignored(name, opts.Ignore) {
			if opts.Verbose {
				logger.WithField("controller", name).Info("Controller ignored")
			}
			continue
		}

		base := MountPath(opts.Prefix, name)
		for _, route := range reg.controllers[name].Routes() {
			method := strings.ToUpper(route.Method)
			full := joinRoute(base, route.Path)
			router.Add(method, full, route.Handlers...)
			mounted = append(mounted, Mounted{Controller: name, Method: method, Path: full})

			if opts.Verbose {
				logger.WithFields(logrus.Fields{
					"controller": name,
					"method":     method,
					"path":       full,
				}).Info("Route mounted")
			}
		}
	}

	return mounted, nil
}

// MountPath returns the path a controller registered under name is served at
func MountPath(prefix, name string) string {
	name = strings.Trim(name, "/")
	if name == indexName {
		name = ""
	}
	name = strings.TrimSuffix(name, "/"+indexName)
	return path.Join("/", strings.Trim(prefix, "/"), name)
}

func joinRoute(base, route string) string {
	if route == "" || route == "/" {
		return base
	}
	return path.Join(base, route)
}

func ignored(name string, patterns []string) bool {
	for _, pattern := range patterns {
		for _, candidate := range []string{name, path.Base(name)} {
			if ok, _ := doublestar.Match(pattern, candidate); ok {
				return true
			}
		}
	}
	return false
}
