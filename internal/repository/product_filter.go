package repository

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// sortColumns maps public sort keys to columns.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "current_price",
	"title":      "title",
	"discount":   "discount",
	"stock":      "stock",
}

// ProductFilter describes a catalog query. Nil fields impose no constraint.
type ProductFilter struct {
	Category   *models.Category
	Brand      *string
	MinPrice   *float64
	MaxPrice   *float64
	Search     *string
	Featured   *bool
	Offer      *bool
	BestSeller *bool
	Sort       string
	Ascending  bool
	Limit      int
	Offset     int
}

func ValidSortKey(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

// Normalize clamps pagination and falls back to newest-first ordering.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if !ValidSortKey(f.Sort) {
		f.Sort = "created_at"
		f.Ascending = false
	}
	return f
}

// Where applies the row constraints. Only active products are ever matched.
func (f ProductFilter) Where(db *gorm.DB) *gorm.DB {
	db = db.Where("is_active = ?", true)
	if f.Category != nil {
		db = db.Where("category = ?", string(*f.Category))
	}
	if f.Brand != nil {
		db = db.Where("LOWER(brand) = ?", strings.ToLower(*f.Brand))
	}
	if f.MinPrice != nil {
		db = db.Where("current_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("current_price <= ?", *f.MaxPrice)
	}
	if f.Search != nil {
		if term := strings.TrimSpace(*f.Search); term != "" {
			pattern := "%" + escapeLike(term) + "%"
			db = db.Where("(title ILIKE ? OR description ILIKE ? OR brand ILIKE ?)", pattern, pattern, pattern)
		}
	}
	if f.Featured != nil {
		db = db.Where("is_featured = ?", *f.Featured)
	}
	if f.Offer != nil {
		db = db.Where("is_offer = ?", *f.Offer)
	}
	if f.BestSeller != nil {
		db = db.Where("is_best_seller = ?", *f.BestSeller)
	}
	return db
}

// Page applies ordering and pagination on top of Where.
func (f ProductFilter) Page(db *gorm.DB) *gorm.DB {
	f = f.Normalize()
	dir := "DESC"
	if f.Ascending {
		dir = "ASC"
	}
	return db.Order(sortColumns[f.Sort] + " " + dir).Limit(f.Limit).Offset(f.Offset)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
