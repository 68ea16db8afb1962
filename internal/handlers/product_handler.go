package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return h.page(c, f)
}

func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	return h.flagged(c, func(f *repository.ProductFilter, on *bool) { f.Featured = on })
}

func (h *ProductHandler) Offers(c *fiber.Ctx) error {
	return h.flagged(c, func(f *repository.ProductFilter, on *bool) { f.Offer = on })
}

func (h *ProductHandler) BestSellers(c *fiber.Ctx) error {
	return h.flagged(c, func(f *repository.ProductFilter, on *bool) { f.BestSeller = on })
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	page, err := h.productService.Search(c.UserContext(), c.Query("q"), f)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(page))
}

func (h *ProductHandler) Brands(c *fiber.Ctx) error {
	brands, err := h.productService.Brands(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(dto.BrandsResponse{Brands: brands}))
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	product, err := h.productService.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(product))
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if !parseBody(c, &req) {
		return nil
	}
	product, err := h.productService.Create(c.UserContext(), &req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Product created", product))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	var req dto.UpdateProductRequest
	if !parseBody(c, &req) {
		return nil
	}
	product, err := h.productService.Update(c.UserContext(), id, &req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Product updated", product))
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	if err := h.productService.Deactivate(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OKMessage("Product deleted", nil))
}

func (h *ProductHandler) flagged(c *fiber.Ctx, set func(*repository.ProductFilter, *bool)) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	on := true
	set(&f, &on)
	return h.page(c, f)
}

func (h *ProductHandler) page(c *fiber.Ctx, f repository.ProductFilter) error {
	page, err := h.productService.List(c.UserContext(), f)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(dto.OK(page))
}

// filterFromQuery reads the listing query string. Absent parameters leave
// the matching filter field nil.
func filterFromQuery(c *fiber.Ctx) (repository.ProductFilter, error) {
	var f repository.ProductFilter

	if v := strings.TrimSpace(c.Query("category")); v != "" {
		category := models.Category(strings.ToLower(v))
		if !category.Valid() {
			return f, fmt.Errorf("unknown category %q", v)
		}
		f.Category = &category
	}
	if v := strings.TrimSpace(c.Query("brand")); v != "" {
		f.Brand = &v
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		f.Search = &v
	}

	var err error
	if f.MinPrice, err = floatQuery(c, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = floatQuery(c, "max_price"); err != nil {
		return f, err
	}
	if f.Featured, err = boolQuery(c, "featured"); err != nil {
		return f, err
	}
	if f.Offer, err = boolQuery(c, "offer"); err != nil {
		return f, err
	}
	if f.BestSeller, err = boolQuery(c, "best_seller"); err != nil {
		return f, err
	}

	if sort := c.Query("sort"); sort != "" {
		if !repository.ValidSortKey(sort) {
			return f, fmt.Errorf("unsupported sort %q", sort)
		}
		f.Sort = sort
	}
	switch strings.ToLower(c.Query("order", "desc")) {
	case "asc":
		f.Ascending = true
	case "desc":
	default:
		return f, fmt.Errorf("order must be asc or desc")
	}

	f.Limit = c.QueryInt("limit", repository.DefaultLimit)
	f.Offset = c.QueryInt("offset", 0)
	return f, nil
}

func floatQuery(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative number", key)
	}
	return &v, nil
}

func boolQuery(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &v, nil
}
