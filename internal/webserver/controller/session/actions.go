package session

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

func (s *Controller) Show(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}
	return c.JSON(toSession(sess))
}

// Update merges a JSON object of string values into the session
func (s *Controller) Update(c *fiber.Ctx) error {
	var values map[string]string
	if err := json.Unmarshal(c.Body(), &values); err != nil || values == nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected a JSON object of string values")
	}

	sess, err := s.load(c)
	if err != nil {
		return err
	}
	for key, value := range values {
		sess.Set(key, value)
	}
	result := toSession(sess)

	if err := sess.Save(); err != nil {
		s.logger.WithError(err).Error("Error saving session")
		return fiber.ErrInternalServerError
	}
	return c.JSON(result)
}

func (s *Controller) Destroy(c *fiber.Ctx) error {
	sess, err := s.load(c)
	if err != nil {
		return err
	}
	if err := sess.Destroy(); err != nil {
		s.logger.WithError(err).Error("Error destroying session")
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}
