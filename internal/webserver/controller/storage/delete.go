package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (s *Controller) Delete(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid file name")
	}

	fullPath := filepath.Join(s.config.StoragePath, name)
	info, err := s.appFs.Stat(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return fiber.ErrNotFound
	}
	if err != nil {
		s.logger.WithError(err).WithField("path", fullPath).Error("Error checking file for removal")
		return fiber.ErrInternalServerError
	}
	if info.IsDir() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid file name")
	}

	if err := s.appFs.Remove(fullPath); err != nil {
		s.logger.WithError(err).WithField("path", fullPath).Error("Error removing file")
		return fiber.ErrInternalServerError
	}

	s.logger.WithField("name", name).Info("File removed")
	return c.SendStatus(fiber.StatusNoContent)
}
