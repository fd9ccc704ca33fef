package errorhandler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Error Body `json:"error"`
}

type Body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Exception is the default exception handler, it answers every error with a
// JSON envelope. Details of unexpected errors are logged, never sent.
func Exception(logger logrus.FieldLogger) Link {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := utils.StatusMessage(code)

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		entry := logger.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		})
		if code >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("Request failed")
		} else {
			entry.Debug(message)
		}

		return c.Status(code).JSON(Response{Error: Body{Code: code, Message: message}})
	}
}
