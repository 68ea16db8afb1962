package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CartHandler serves the cart of the owner resolved by middleware.Session.
type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	o, err := owner.FromCtx(c)
	if err != nil {
		return respond(c, err)
	}
	summary, err := h.cartService.Summary(c.UserContext(), o)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(summary))
}

func (h *CartHandler) Count(c *fiber.Ctx) error {
	o, err := owner.FromCtx(c)
	if err != nil {
		return respond(c, err)
	}
	count, err := h.cartService.Count(c.UserContext(), o)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(count))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	o, err := owner.FromCtx(c)
	if err != nil {
		return respond(c, err)
	}
	var req dto.AddToCartRequest
	if !parseBody(c, &req) {
		return nil
	}
	if err := services.ValidateRequest(&req); err != nil {
		return respond(c, err)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.cartService.AddToCart(c.UserContext(), o, req.ProductID, quantity)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Item added to cart", item))
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	o, err := owner.FromCtx(c)
	if err != nil {
		return respond(c, err)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateCartItemRequest
	if !parseBody(c, &req) {
		return nil
	}
	if err := services.ValidateRequest(&req); err != nil {
		return respond(c, err)
	}

	item, err := h.cartService.UpdateQuantity(c.UserContext(), o, id, *req.Quantity)
	if err != nil {
		return respond(c, err)
	}
	if item == nil {
		return c.JSON(dto.OKMessage("Item removed from cart", nil))
	}
	return c.JSON(dto.OKMessage("Cart updated", item))
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	o, err := owner.FromCtx(c)
	if err != nil {
		return respond(c, err)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	if err := h.cartService.Remove(c.UserContext(), o, id); err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Item removed from cart", nil))
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	o, err := owner.FromCtx(c)
	if err != nil {
		return respond(c, err)
	}
	if err := h.cartService.Clear(c.UserContext(), o); err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Cart cleared", nil))
}

// pathUUID parses a route parameter. On failure it has already written a 400.
func pathUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid " + name))
		return uuid.Nil, false
	}
	return id, true
}
