package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if !parseBody(c, &req) {
		return nil
	}

	resp, err := h.authService.Register(c.UserContext(), &req, middleware.SessionToken(c))
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Registration successful", resp))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if !parseBody(c, &req) {
		return nil
	}

	resp, err := h.authService.Login(c.UserContext(), &req, c.IP(), middleware.SessionToken(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Login successful", resp))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Access token required"))
	}
	h.authService.Logout(c.UserContext(), user.ID)
	return c.JSON(dto.OKMessage("Logged out successfully", nil))
}

// Verify answers for any client holding a token that passed the strict gate.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Access token required"))
	}
	return c.JSON(dto.OKMessage("Token is valid", fiber.Map{"user": dto.NewUserResponse(user)}))
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Access token required"))
	}
	resp, err := h.authService.Profile(c.UserContext(), user.ID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(resp))
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Access token required"))
	}
	var req dto.UpdateProfileRequest
	if !parseBody(c, &req) {
		return nil
	}

	resp, err := h.authService.UpdateProfile(c.UserContext(), user.ID, &req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Profile updated", resp))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Access token required"))
	}
	var req dto.ChangePasswordRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.authService.ChangePassword(c.UserContext(), user.ID, &req); err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Password changed successfully", nil))
}

func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	user := owner.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Access token required"))
	}
	var req dto.DeactivateRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.authService.Deactivate(c.UserContext(), user.ID, &req); err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Account deactivated", nil))
}
