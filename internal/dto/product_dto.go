package dto

import "github.com/ahmetcoskunkizilkaya/storefront/internal/models"

type CreateProductRequest struct {
	Title          string           `json:"title" validate:"required,max=255"`
	Brand          string           `json:"brand" validate:"required,max=100"`
	Category       models.Category  `json:"category" validate:"required,category"`
	OriginalPrice  float64          `json:"original_price" validate:"gte=0"`
	CurrentPrice   float64          `json:"current_price" validate:"gt=0"`
	Discount       *int             `json:"discount" validate:"omitempty,min=0,max=100"`
	Image          string           `json:"image" validate:"omitempty,url"`
	Images         []string         `json:"images" validate:"omitempty,dive,url"`
	Description    string           `json:"description"`
	Specifications map[string]any   `json:"specifications"`
	Stock          int              `json:"stock" validate:"gte=0"`
	IsFeatured     bool             `json:"is_featured"`
	IsOffer        bool             `json:"is_offer"`
	IsBestSeller   bool             `json:"is_best_seller"`
	Condition      models.Condition `json:"condition" validate:"omitempty,condition"`
	Warranty       string           `json:"warranty" validate:"omitempty,max=255"`
}

// UpdateProductRequest lists the product fields an administrator may change.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Title          *string           `json:"title" validate:"omitempty,min=1,max=255"`
	Brand          *string           `json:"brand" validate:"omitempty,min=1,max=100"`
	Category       *models.Category  `json:"category" validate:"omitempty,category"`
	OriginalPrice  *float64          `json:"original_price" validate:"omitempty,gte=0"`
	CurrentPrice   *float64          `json:"current_price" validate:"omitempty,gt=0"`
	Discount       *int              `json:"discount" validate:"omitempty,min=0,max=100"`
	Image          *string           `json:"image" validate:"omitempty,url"`
	Images         *[]string         `json:"images" validate:"omitempty,dive,url"`
	Description    *string           `json:"description"`
	Specifications *map[string]any   `json:"specifications"`
	Stock          *int              `json:"stock" validate:"omitempty,gte=0"`
	IsActive       *bool             `json:"is_active"`
	IsFeatured     *bool             `json:"is_featured"`
	IsOffer        *bool             `json:"is_offer"`
	IsBestSeller   *bool             `json:"is_best_seller"`
	Condition      *models.Condition `json:"condition" validate:"omitempty,condition"`
	Warranty       *string           `json:"warranty" validate:"omitempty,max=255"`
}

type ProductResponse struct {
	models.Product
	Installments models.Installments `json:"installments"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{Product: *p, Installments: p.Installments()}
}

func NewProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

type ProductPage struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

type CategoryResponse struct {
	Slug         models.Category `json:"slug"`
	Name         string          `json:"name"`
	ProductCount int64           `json:"product_count"`
}

type BrandsResponse struct {
	Brands []string `json:"brands"`
}
