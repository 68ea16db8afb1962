package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is owned by exactly one of UserID or SessionToken.
type CartItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid;index;check:chk_cart_items_owner,(user_id IS NULL) <> (session_token IS NULL)" json:"user_id,omitempty"`
	SessionToken *string    `gorm:"size:100;index" json:"session_id,omitempty"`
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int        `gorm:"not null;check:chk_cart_items_quantity,quantity > 0" json:"quantity"`
	Price        float64    `gorm:"not null" json:"price"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Product      *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
