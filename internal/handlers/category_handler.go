package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(categories))
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	category, err := h.categoryService.Get(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(category))
}

func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	page, err := h.categoryService.Products(c.UserContext(), c.Params("slug"), f)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(page))
}
