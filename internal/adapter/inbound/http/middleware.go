package http_handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer credential on every request before any
// other component runs. Missing, malformed, expired, or invalid tokens are
// rejected with 401 without touching storage.
func AuthMiddleware(verifier port.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearer(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		identity, err := verifier.Verify(c.Context(), raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// identityFromCtx returns the verified identity attached by AuthMiddleware.
func identityFromCtx(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*domain.Identity)
	return identity, ok
}

func extractBearer(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
