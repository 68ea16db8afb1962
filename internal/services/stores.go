package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/google/uuid"
)

type UserStore interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateColumns(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

type ProductStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Search(ctx context.Context, f repository.ProductFilter) ([]models.Product, int64, error)
	Brands(ctx context.Context) ([]string, error)
	CountByCategory(ctx context.Context) (map[models.Category]int64, error)
	Create(ctx context.Context, product *models.Product) error
	UpdateColumns(ctx context.Context, id uuid.UUID, fields map[string]any) error
}

// ProductLookup is the read the cart needs for live price and stock.
type ProductLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type CartStore interface {
	ListByOwner(ctx context.Context, o owner.Owner) ([]models.CartItem, error)
	FindByOwnerAndProduct(ctx context.Context, o owner.Owner, productID uuid.UUID) (*models.CartItem, error)
	FindByIDForOwner(ctx context.Context, id uuid.UUID, o owner.Owner) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteForOwner(ctx context.Context, id uuid.UUID, o owner.Owner) (int64, error)
	DeleteByOwner(ctx context.Context, o owner.Owner) (int64, error)
	ReassignSession(ctx context.Context, sessionToken string, userID uuid.UUID) (int64, error)
}
