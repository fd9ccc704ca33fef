package storage

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
)

func (s *Controller) List(c *fiber.Ctx) error {
	entries, err := afero.ReadDir(s.appFs, s.config.StoragePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.WithError(err).Error("Error reading storage directory")
		return fiber.ErrInternalServerError
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, File{
			Name: entry.Name(),
			Size: entry.Size(),
			URL:  s.url(entry.Name()),
		})
	}

	return c.JSON(files)
}
