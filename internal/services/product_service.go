package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProductService struct {
	products         ProductStore
	installmentTimes int
}

func NewProductService(products ProductStore, installmentTimes int) *ProductService {
	if installmentTimes <= 0 {
		installmentTimes = 12
	}
	return &ProductService{products: products, installmentTimes: installmentTimes}
}

// List returns one page of active products matching f.
func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) (*dto.ProductPage, error) {
	f = f.Normalize()
	products, total, err := s.products.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return &dto.ProductPage{
		Products: dto.NewProductResponses(products),
		Pagination: dto.Pagination{
			Total:   total,
			Limit:   f.Limit,
			Offset:  f.Offset,
			HasMore: int64(f.Offset+len(products)) < total,
		},
	}, nil
}

// Search requires a non-blank query and otherwise behaves like List.
func (s *ProductService) Search(ctx context.Context, query string, f repository.ProductFilter) (*dto.ProductPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("q", "search query is required")
	}
	f.Search = &query
	return s.List(ctx, f)
}

func (s *ProductService) Brands(ctx context.Context) ([]string, error) {
	brands, err := s.products.Brands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// Get returns an active product. Inactive products read as not found.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Brand = strings.TrimSpace(req.Brand)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	condition := req.Condition
	if condition == "" {
		condition = models.ConditionNew
	}
	discount := models.DiscountPercent(req.OriginalPrice, req.CurrentPrice)
	if req.Discount != nil {
		discount = *req.Discount
	}

	product := models.Product{
		ID:               uuid.New(),
		Title:            req.Title,
		Brand:            req.Brand,
		Category:         req.Category,
		OriginalPrice:    req.OriginalPrice,
		CurrentPrice:     req.CurrentPrice,
		Discount:         discount,
		InstallmentTimes: s.installmentTimes,
		Image:            req.Image,
		Images:           datatypes.JSONSlice[string](req.Images),
		Description:      req.Description,
		Specifications:   datatypes.JSONMap(req.Specifications),
		Stock:            req.Stock,
		IsActive:         true,
		IsFeatured:       req.IsFeatured,
		IsOffer:          req.IsOffer,
		IsBestSeller:     req.IsBestSeller,
		Condition:        condition,
		Warranty:         req.Warranty,
	}
	if product.Image == "" && len(req.Images) > 0 {
		product.Image = req.Images[0]
	}

	if err := s.products.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	slog.Info("product created", "action", "product_create", "product_id", product.ID.String())
	resp := dto.NewProductResponse(&product)
	return &resp, nil
}

// Update applies the present fields of req. A price change recomputes the
// discount unless one is supplied.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	fields := productUpdateFields(req)
	if len(fields) == 0 {
		return nil, invalid("", "no product fields to update")
	}

	if req.Discount == nil && (req.OriginalPrice != nil || req.CurrentPrice != nil) {
		original, price := current.OriginalPrice, current.CurrentPrice
		if req.OriginalPrice != nil {
			original = *req.OriginalPrice
		}
		if req.CurrentPrice != nil {
			price = *req.CurrentPrice
		}
		fields["discount"] = models.DiscountPercent(original, price)
	}

	if err := s.products.UpdateColumns(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	slog.Info("product updated", "action", "product_update", "product_id", id.String())
	resp := dto.NewProductResponse(updated)
	return &resp, nil
}

// Deactivate hides a product from every listing without deleting it.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.products.UpdateColumns(ctx, id, map[string]any{"is_active": false}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	slog.Info("product deactivated", "action", "product_delete", "product_id", id.String())
	return nil
}

func productUpdateFields(req *dto.UpdateProductRequest) map[string]any {
	fields := make(map[string]any)
	set := func(column string, present bool, value func() any) {
		if present {
			fields[column] = value()
		}
	}
	set("title", req.Title != nil, func() any { return strings.TrimSpace(*req.Title) })
	set("brand", req.Brand != nil, func() any { return strings.TrimSpace(*req.Brand) })
	set("category", req.Category != nil, func() any { return *req.Category })
	set("original_price", req.OriginalPrice != nil, func() any { return *req.OriginalPrice })
	set("current_price", req.CurrentPrice != nil, func() any { return *req.CurrentPrice })
	set("discount", req.Discount != nil, func() any { return *req.Discount })
	set("image", req.Image != nil, func() any { return *req.Image })
	set("images", req.Images != nil, func() any { return datatypes.JSONSlice[string](*req.Images) })
	set("description", req.Description != nil, func() any { return *req.Description })
	set("specifications", req.Specifications != nil, func() any { return datatypes.JSONMap(*req.Specifications) })
	set("stock", req.Stock != nil, func() any { return *req.Stock })
	set("is_active", req.IsActive != nil, func() any { return *req.IsActive })
	set("is_featured", req.IsFeatured != nil, func() any { return *req.IsFeatured })
	set("is_offer", req.IsOffer != nil, func() any { return *req.IsOffer })
	set("is_best_seller", req.IsBestSeller != nil, func() any { return *req.IsBestSeller })
	set("condition", req.Condition != nil, func() any { return *req.Condition })
	set("warranty", req.Warranty != nil, func() any { return *req.Warranty })
	return fields
}
