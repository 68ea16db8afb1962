package owner

import (
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	localsOwner = "cart_owner"
	localsUser  = "current_user"
)

func SetOwner(c *fiber.Ctx, o Owner) {
	c.Locals(localsOwner, o)
}

// FromCtx returns the owner resolved by the session middleware.
func FromCtx(c *fiber.Ctx) (Owner, error) {
	o, ok := c.Locals(localsOwner).(Owner)
	if !ok || !o.Valid() {
		return Owner{}, ErrNoOwner
	}
	return o, nil
}

func SetUser(c *fiber.Ctx, u *models.User) {
	c.Locals(localsUser, u)
}

// CurrentUser returns the user attached by an auth gate, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(localsUser).(*models.User)
	return u
}
