package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errNoToken = errors.New("Unauthorized: No token provided")

// extractBearerToken tolerates extra whitespace and quoted tokens.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errNoToken
	}
	tok := strings.Trim(fields[1], `"'`)
	if tok == "" {
		return "", errNoToken
	}
	return tok, nil
}
