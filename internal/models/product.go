package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category string

const (
	CategorySmartphones Category = "smartphones"
	CategoryLaptops     Category = "laptops"
	CategoryTablets     Category = "tablets"
	CategoryAudio       Category = "audio"
	CategoryWearables   Category = "wearables"
	CategoryGaming      Category = "gaming"
	CategoryTV          Category = "tv"
	CategoryAccessories Category = "accessories"
)

// Categories lists the closed category enumeration in display order.
var Categories = []Category{
	CategorySmartphones,
	CategoryLaptops,
	CategoryTablets,
	CategoryAudio,
	CategoryWearables,
	CategoryGaming,
	CategoryTV,
	CategoryAccessories,
}

var categoryLabels = map[Category]string{
	CategorySmartphones: "Smartphones",
	CategoryLaptops:     "Laptops",
	CategoryTablets:     "Tablets",
	CategoryAudio:       "Audio",
	CategoryWearables:   "Wearables",
	CategoryGaming:      "Gaming",
	CategoryTV:          "TV & Video",
	CategoryAccessories: "Accessories",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	return categoryLabels[c]
}

type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionRefurbished Condition = "refurbished"
	ConditionUsed        Condition = "used"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionRefurbished, ConditionUsed:
		return true
	}
	return false
}

type Product struct {
	ID               uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title            string                      `gorm:"size:255;not null" json:"title"`
	Brand            string                      `gorm:"size:100;not null;index" json:"brand"`
	Category         Category                    `gorm:"size:50;not null;index" json:"category"`
	OriginalPrice    float64                     `gorm:"not null;default:0" json:"original_price"`
	CurrentPrice     float64                     `gorm:"not null" json:"current_price"`
	Discount         int                         `gorm:"not null;default:0" json:"discount"`
	InstallmentTimes int                         `gorm:"not null;default:12" json:"-"`
	Image            string                      `gorm:"type:text" json:"image"`
	Images           datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"images"`
	Description      string                      `gorm:"type:text" json:"description"`
	Specifications   datatypes.JSONMap           `gorm:"type:jsonb" json:"specifications"`
	Stock            int                         `gorm:"not null;default:0;check:chk_products_stock,stock >= 0" json:"stock"`
	IsActive         bool                        `gorm:"not null;default:true;index" json:"is_active"`
	IsFeatured       bool                        `gorm:"not null;default:false" json:"is_featured"`
	IsOffer          bool                        `gorm:"not null;default:false" json:"is_offer"`
	IsBestSeller     bool                        `gorm:"not null;default:false" json:"is_best_seller"`
	Condition        Condition                   `gorm:"size:20;not null;default:'new'" json:"condition"`
	Warranty         string                      `gorm:"size:255" json:"warranty"`
	CreatedAt        time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// DiscountPercent is round((original-current)/original*100), or 0 when there is no markdown.
func DiscountPercent(original, current float64) int {
	if original <= 0 || current >= original {
		return 0
	}
	return int(math.Round((original - current) / original * 100))
}

type Installments struct {
	Times int    `json:"times"`
	Value string `json:"value"`
}

// Installments splits the current price into equal payments formatted to two decimals.
func (p *Product) Installments() Installments {
	times := p.InstallmentTimes
	if times <= 0 {
		times = 1
	}
	return Installments{
		Times: times,
		Value: fmt.Sprintf("%.2f", p.CurrentPrice/float64(times)),
	}
}
