package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const fallbackName = "file"

func (s *Controller) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file")
	}

	if err := s.appFs.MkdirAll(s.config.StoragePath, os.ModePerm); err != nil {
		s.logger.WithError(err).Error("Error creating storage directory")
		return fiber.ErrInternalServerError
	}

	name, err := s.availableName(fileHeader.Filename)
	if err != nil {
		s.logger.WithError(err).Error("Error checking storage for existing files")
		return fiber.ErrInternalServerError
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.WithError(err).Error("Error opening uploaded file")
		return fiber.ErrInternalServerError
	}
	defer src.Close()

	fullPath := filepath.Join(s.config.StoragePath, name)
	dst, err := s.appFs.Create(fullPath)
	if err != nil {
		s.logger.WithError(err).WithField("path", fullPath).Error("Error creating file")
		return fiber.ErrInternalServerError
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		s.logger.WithError(err).WithField("path", fullPath).Error("Error writing file")
		s.appFs.Remove(fullPath)
		return fiber.ErrInternalServerError
	}

	s.logger.WithFields(logrus.Fields{"name": name, "size": written}).Info("File stored")
	return c.Status(fiber.StatusCreated).JSON(File{
		Name: name,
		Size: written,
		URL:  s.url(name),
	})
}

// availableName turns an uploaded file name into a slug that does not clash
// with files already in storage
func (s *Controller) availableName(original string) (string, error) {
	original = filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := filepath.Ext(original)
	base := slug.Make(strings.TrimSuffix(original, ext))
	if base == "" {
		base = fallbackName
	}
	if ext != "" {
		if ext = slug.Make(ext[1:]); ext != "" {
			ext = "." + ext
		}
	}

	name := base + ext
	exists, err := afero.Exists(s.appFs, filepath.Join(s.config.StoragePath, name))
	if err != nil {
		return "", err
	}
	if exists {
		name = base + "-" + uuid.NewString()[:8] + ext
	}
	return name, nil
}
