package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/config"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired admits requests carrying the configured X-Admin-Token, or an
// attached user whose email is listed in ADMIN_EMAILS. It must run after OptionalAuth.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(strings.ToLower(cfg.AdminEmails))

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			given := c.Get("X-Admin-Token")
			if given != "" && subtle.ConstantTimeCompare([]byte(given), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		user := owner.CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Access token required"))
		}
		if contains(adminEmails, strings.ToLower(user.Email)) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Admin access required"))
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
