package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Create writes the posted JSON array of objects as a CSV file and returns the
// URL it can be downloaded from
func (e *Controller) Create(c *fiber.Ctx) error {
	var rows []map[string]any
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(&rows); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected a JSON array of objects")
	}
	if len(rows) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to export")
	}

	if err := e.appFs.MkdirAll(e.config.OutputPath, os.ModePerm); err != nil {
		e.logger.WithError(err).Error("Error creating export directory")
		return fiber.ErrInternalServerError
	}

	name := uuid.NewString() + ".csv"
	fullPath := filepath.Join(e.config.OutputPath, name)
	file, err := e.appFs.Create(fullPath)
	if err != nil {
		e.logger.WithError(err).WithField("path", fullPath).Error("Error creating export file")
		return fiber.ErrInternalServerError
	}
	defer file.Close()

	if err := writeCSV(file, rows); err != nil {
		e.logger.WithError(err).WithField("path", fullPath).Error("Error writing export file")
		e.appFs.Remove(fullPath)
		return fiber.ErrInternalServerError
	}

	e.logger.WithFields(logrus.Fields{"name": name, "rows": len(rows)}).Info("Export generated")
	return c.Status(fiber.StatusCreated).JSON(Export{
		Name: name,
		Rows: len(rows),
		URL:  path.Join("/", filepath.ToSlash(e.config.OutputPath), name),
	})
}

// writeCSV uses the sorted union of all keys as header, missing values are left empty
func writeCSV(w io.Writer, rows []map[string]any) error {
	keys := map[string]struct{}{}
	for _, row := range rows {
		for key := range row {
			keys[key] = struct{}{}
		}
	}
	header := make([]string, 0, len(keys))
	for key := range keys {
		header = append(header, key)
	}
	sort.Strings(header)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			value, err := cell(row[key])
			if err != nil {
				return err
			}
			record[i] = value
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func cell(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		encoded, err := json.Marshal(v)
		return string(encoded), err
	}
}
