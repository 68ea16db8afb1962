package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionHeader     = "x-session-id"
	sessionQueryParam = "session_id"
	maxSessionLength  = 100
)

// Session resolves the cart owner. An attached user wins; otherwise the
// session token comes from the header or query, or a new one is minted and
// echoed back in the x-session-id response header.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user := owner.CurrentUser(c); user != nil {
			owner.SetOwner(c, owner.User(user.ID))
			return c.Next()
		}

		token := SessionToken(c)
		if token == "" {
			token = NewSessionToken(time.Now())
		}
		c.Set(SessionHeader, token)
		owner.SetOwner(c, owner.Anonymous(token))
		return c.Next()
	}
}

// SessionToken returns the client-supplied session token, or "" when absent or unusable.
func SessionToken(c *fiber.Ctx) string {
	token := strings.TrimSpace(c.Get(SessionHeader))
	if token == "" {
		token = strings.TrimSpace(c.Query(sessionQueryParam))
	}
	if len(token) > maxSessionLength {
		return ""
	}
	return token
}

func NewSessionToken(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}
