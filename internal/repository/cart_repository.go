package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// ListByOwner returns the owner's line items with their product, newest first.
func (r *CartRepository) ListByOwner(ctx context.Context, o owner.Owner) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	err := r.db.WithContext(ctx).
		Scopes(owner.Scope(o)).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *CartRepository) FindByOwnerAndProduct(ctx context.Context, o owner.Owner, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Scopes(owner.Scope(o)).
		Where("product_id = ?", productID).
		First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *CartRepository) FindByIDForOwner(ctx context.Context, id uuid.UUID, o owner.Owner) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Scopes(owner.Scope(o)).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *CartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *CartRepository) DeleteForOwner(ctx context.Context, id uuid.UUID, o owner.Owner) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(owner.Scope(o)).
		Where("id = ?", id).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *CartRepository) DeleteByOwner(ctx context.Context, o owner.Owner) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(owner.Scope(o)).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ReassignSession moves every line item of a session to userID and clears the session reference.
func (r *CartRepository) ReassignSession(ctx context.Context, sessionToken string, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("session_token = ? AND user_id IS NULL", sessionToken).
		Updates(map[string]any{
			"user_id":       userID,
			"session_token": gorm.Expr("NULL"),
		})
	return result.RowsAffected, result.Error
}
