package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrEmailTaken, fiber.StatusConflict},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{services.ErrIncorrectPassword, fiber.StatusBadRequest},
	{services.ErrSamePassword, fiber.StatusBadRequest},
	{services.ErrTooManyAttempts, fiber.StatusTooManyRequests},
	{services.ErrUserNotFound, fiber.StatusNotFound},
	{services.ErrUserInactive, fiber.StatusForbidden},
	{services.ErrProductNotFound, fiber.StatusNotFound},
	{services.ErrCategoryNotFound, fiber.StatusNotFound},
	{services.ErrCartItemNotFound, fiber.StatusNotFound},
	{services.ErrProductInactive, fiber.StatusBadRequest},
	{services.ErrInsufficientStock, fiber.StatusBadRequest},
	{owner.ErrNoOwner, fiber.StatusBadRequest},
}

// respond translates domain and validation errors into the envelope. Anything
// unrecognised is returned for the app's ErrorHandler.
func respond(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(verr.Message))
	}
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.Fail(capitalize(err.Error())))
		}
	}
	return err
}

// parseBody decodes c's body strictly into v. On failure it has already written a 400.
func parseBody(c *fiber.Ctx, v any) bool {
	if err := dto.DecodeStrict(c.Body(), v); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.Fail(capitalize(err.Error())))
		return false
	}
	return true
}

// ErrorHandler handles errors that escape the route handlers. Server errors
// are logged and reported to Sentry; their detail is only shown in development.
func ErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code < fiber.StatusInternalServerError {
			return c.Status(code).JSON(dto.Fail(message))
		}

		slog.Error("unhandled server error",
			"request_id", requestID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}

		if development {
			return c.Status(code).JSON(dto.FailDetail("Internal server error", err.Error()))
		}
		return c.Status(code).JSON(dto.Fail("Internal server error"))
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
