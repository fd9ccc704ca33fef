package errorhandler

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

// HubFunc returns the Sentry hub bound to a request, if any
type HubFunc func(c *fiber.Ctx) *sentry.Hub

// Reporter forwards server errors to Sentry and passes them on untouched.
// Client errors are not reported.
func Reporter(hubFor HubFunc) Link {
	return func(c *fiber.Ctx, err error) error {
		if isClientError(err) {
			return err
		}

		var hub *sentry.Hub
		if hubFor != nil {
			hub = hubFor(c)
		}
		if hub == nil {
			hub = sentry.CurrentHub()
		}

		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("method", c.Method())
			scope.SetTag("path", c.Path())
			hub.CaptureException(err)
		})
		return err
	}
}

func isClientError(err error) bool {
	var e *fiber.Error
	return errors.As(err, &e) && e.Code < fiber.StatusInternalServerError
}
