package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/auth"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLocal = "token"

// UserResolver loads the active user behind verified claims.
type UserResolver interface {
	Authenticate(ctx context.Context, claims *auth.Claims) (*models.User, error)
}

// RequireAuth rejects a missing bearer token with 401, and an invalid token
// or an unknown/inactive user with 403.
func RequireAuth(tokens *auth.TokenService, users UserResolver) fiber.Handler {
	return jwtware.New(bearerConfig(tokens, users, false))
}

// OptionalAuth attaches the user when a valid token is present and otherwise
// continues anonymously.
func OptionalAuth(tokens *auth.TokenService, users UserResolver) fiber.Handler {
	return jwtware.New(bearerConfig(tokens, users, true))
}

func bearerConfig(tokens *auth.TokenService, users UserResolver, optional bool) jwtware.Config {
	reject := func(c *fiber.Ctx, status int, message string) error {
		if optional {
			return c.Next()
		}
		return c.Status(status).JSON(dto.Fail(message))
	}

	return jwtware.Config{
		Claims:     &auth.Claims{},
		KeyFunc:    tokens.Keyfunc,
		ContextKey: tokenLocal,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals(tokenLocal).(*jwt.Token)
			var claims *auth.Claims
			if token != nil {
				claims, _ = token.Claims.(*auth.Claims)
			}
			if !tokens.Accepts(claims) {
				return reject(c, fiber.StatusForbidden, "Invalid or expired token")
			}

			user, err := users.Authenticate(c.UserContext(), claims)
			if err != nil {
				if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrUserInactive) {
					return reject(c, fiber.StatusForbidden, "User not found or inactive")
				}
				slog.Error("token user lookup failed", "request_id", requestID(c), "error", err)
				if optional {
					return c.Next()
				}
				return err
			}

			owner.SetUser(c, user)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return reject(c, fiber.StatusUnauthorized, "Access token required")
			}
			return reject(c, fiber.StatusForbidden, "Invalid or expired token")
		},
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
