package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
)

type CategoryService struct {
	products ProductStore
	catalog  *ProductService
}

func NewCategoryService(products ProductStore, catalog *ProductService) *CategoryService {
	return &CategoryService{products: products, catalog: catalog}
}

// List returns every category in display order with its active product count.
func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	counts, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	out := make([]dto.CategoryResponse, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, dto.CategoryResponse{Slug: c, Name: c.Label(), ProductCount: counts[c]})
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category := models.Category(slug)
	if !category.Valid() {
		return nil, ErrCategoryNotFound
	}
	counts, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	return &dto.CategoryResponse{Slug: category, Name: category.Label(), ProductCount: counts[category]}, nil
}

func (s *CategoryService) Products(ctx context.Context, slug string, f repository.ProductFilter) (*dto.ProductPage, error) {
	category := models.Category(slug)
	if !category.Valid() {
		return nil, ErrCategoryNotFound
	}
	f.Category = &category
	return s.catalog.List(ctx, f)
}
