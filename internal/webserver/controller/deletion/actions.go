package deletion

import (
	"encoding/json"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/consort-app/consort/internal/cache"
	"github.com/consort-app/consort/internal/webserver/bodyparser"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const statusPending = "pending"

// Create handles the data deletion callback, which is posted as an
// urlencoded form carrying a signed_request field
func (d *Controller) Create(c *fiber.Ctx) error {
	if d.config.AppSecret == "" {
		d.logger.Warn("Data deletion callback received but no app secret is configured")
		return fiber.ErrServiceUnavailable
	}

	payload, err := parseSignedRequest(bodyparser.Form(c)["signed_request"], d.config.AppSecret)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	code := uuid.NewString()
	encoded, err := json.Marshal(Request{
		UserID:      payload.UserID,
		Status:      statusPending,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := d.store.Set(c.UserContext(), keyPrefix+code, string(encoded), d.config.TTL); err != nil {
		d.logger.WithError(err).Error("Error storing data deletion request")
		return fiber.ErrInternalServerError
	}

	d.logger.WithField("confirmation_code", code).Info("Data deletion requested")
	return c.JSON(Confirmation{
		URL:              strings.TrimRight(d.config.AppURL, "/") + path.Join("/", d.config.MountPath, code),
		ConfirmationCode: code,
	})
}

func (d *Controller) Status(c *fiber.Ctx) error {
	code := c.Params("code")
	if _, err := uuid.Parse(code); err != nil {
		return fiber.ErrNotFound
	}

	stored, err := d.store.Get(c.UserContext(), keyPrefix+code)
	if errors.Is(err, cache.ErrNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		d.logger.WithError(err).Error("Error reading data deletion request")
		return fiber.ErrInternalServerError
	}

	var request Request
	if err := json.Unmarshal([]byte(stored), &request); err != nil {
		d.logger.WithError(err).WithField("confirmation_code", code).Error("Corrupted data deletion request")
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{
		"confirmation_code": code,
		"status":            request.Status,
		"requested_at":      request.RequestedAt,
	})
}
