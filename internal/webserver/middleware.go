package webserver

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request once its response is settled. Errors are
// handed to the app error handler first so the logged status is the final one.
// Panics are logged as 500 and passed on to the recover middleware.
func RequestLogger(logger logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				requestEntry(logger, c, start, fiber.StatusInternalServerError).
					WithField("panic", r).Error("Request panicked")
				panic(r)
			}
		}()

		if err := c.Next(); err != nil {
			if err := c.App().ErrorHandler(c, err); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		requestEntry(logger, c, start, c.Response().StatusCode()).Info("Request handled")
		return nil
	}
}

func requestEntry(logger logrus.FieldLogger, c *fiber.Ctx, start time.Time, status int) logrus.FieldLogger {
	return logger.WithFields(logrus.Fields{
		"method":  c.Method(),
		"path":    c.Path(),
		"status":  status,
		"latency": time.Since(start).String(),
		"ip":      c.IP(),
	})
}
