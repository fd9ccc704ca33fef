package bodyparser

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const formLocal = "form"

// URLEncoded decodes form bodies into a flat map. Keys are kept verbatim, so
// "a[b]=c" yields the key "a[b]", and the first value of a repeated key wins.
func URLEncoded() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isForm(c) {
			return c.Next()
		}

		values := map[string]string{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			if _, ok := values[string(key)]; !ok {
				values[string(key)] = string(value)
			}
		})
		c.Locals(formLocal, values)
		return c.Next()
	}
}

// Form returns the values decoded by URLEncoded, or an empty map
func Form(c *fiber.Ctx) map[string]string {
	values, ok := c.Locals(formLocal).(map[string]string)
	if !ok {
		return map[string]string{}
	}
	return values
}

// JSON rejects JSON requests whose body is not valid JSON before they reach
// any controller. The size limit is enforced by the server itself.
func JSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isJSON(c) {
			return c.Next()
		}
		if body := c.Body(); len(body) > 0 && !json.Valid(body) {
			return fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
		}
		return c.Next()
	}
}

func isForm(c *fiber.Ctx) bool {
	return strings.HasPrefix(contentType(c), fiber.MIMEApplicationForm)
}

func isJSON(c *fiber.Ctx) bool {
	ct := contentType(c)
	return strings.HasPrefix(ct, fiber.MIMEApplicationJSON) || (strings.HasPrefix(ct, "application/") && strings.Contains(ct, "+json"))
}

func contentType(c *fiber.Ctx) string {
	return strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
}
