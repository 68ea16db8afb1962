package dto

import (
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/google/uuid"
)

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  *int      `json:"quantity" validate:"omitempty,min=1,max=1000"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=1000"`
}

type CartSummary struct {
	Items         []models.CartItem `json:"items"`
	ItemCount     int               `json:"item_count"`
	TotalQuantity int               `json:"total_quantity"`
	Subtotal      float64           `json:"subtotal"`
	TotalDiscount float64           `json:"total_discount"`
	Total         float64           `json:"total"`
}

type CartCount struct {
	ItemCount     int `json:"item_count"`
	TotalQuantity int `json:"total_quantity"`
}
