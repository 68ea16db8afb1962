package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// Search returns one page of active products matching f and the total match count.
func (r *ProductRepository) Search(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(f.Where).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]models.Product, 0)
	if total == 0 {
		return products, 0, nil
	}
	err := r.db.WithContext(ctx).Scopes(f.Where, f.Page).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Brands lists distinct brands of active products.
func (r *ProductRepository) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ?", true).
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &brands).Error
	return brands, err
}

type categoryCount struct {
	Category models.Category
	Count    int64
}

// CountByCategory counts active products per category.
func (r *ProductRepository) CountByCategory(ctx context.Context) (map[models.Category]int64, error) {
	var rows []categoryCount
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.Category]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) UpdateColumns(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
