package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/google/uuid"
)

// CartService mutates and reads line items for a single resolved owner.
//
// Stock checks and the following write are separate round trips, so two
// concurrent adds against the last unit can both succeed.
type CartService struct {
	carts    CartStore
	products ProductLookup
}

func NewCartService(carts CartStore, products ProductLookup) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) GetCart(ctx context.Context, o owner.Owner) ([]models.CartItem, error) {
	if !o.Valid() {
		return nil, owner.ErrNoOwner
	}
	items, err := s.carts.ListByOwner(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return items, nil
}

// AddToCart creates a line item priced at the product's current price, or
// accumulates quantity onto the existing line for the same product.
func (s *CartService) AddToCart(ctx context.Context, o owner.Owner, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	if !o.Valid() {
		return nil, owner.ErrNoOwner
	}
	if quantity < 1 {
		return nil, invalid("quantity", "quantity must be at least 1")
	}

	product, err := s.liveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.carts.FindByOwnerAndProduct(ctx, o, productID)
	switch {
	case err == nil:
		total := existing.Quantity + quantity
		if total > product.Stock {
			return nil, stockError(product.Stock)
		}
		if err := s.carts.UpdateQuantity(ctx, existing.ID, total); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		existing.Quantity = total
		existing.Product = product
		return existing, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	if quantity > product.Stock {
		return nil, stockError(product.Stock)
	}

	item := &models.CartItem{
		ID:        uuid.New(),
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.CurrentPrice,
	}
	assignOwner(item, o)
	if err := s.carts.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create cart item: %w", err)
	}
	item.Product = product
	return item, nil
}

// UpdateQuantity sets an owned line item's quantity against live stock.
// A quantity of zero or less removes the line and returns a nil item.
func (s *CartService) UpdateQuantity(ctx context.Context, o owner.Owner, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	if !o.Valid() {
		return nil, owner.ErrNoOwner
	}
	if quantity <= 0 {
		return nil, s.Remove(ctx, o, itemID)
	}

	item, err := s.carts.FindByIDForOwner(ctx, itemID, o)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	product, err := s.liveProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, stockError(product.Stock)
	}

	if err := s.carts.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	item.Quantity = quantity
	item.Product = product
	return item, nil
}

// Remove deletes an owned line item. Removing an absent item succeeds.
func (s *CartService) Remove(ctx context.Context, o owner.Owner, itemID uuid.UUID) error {
	if !o.Valid() {
		return owner.ErrNoOwner
	}
	if _, err := s.carts.DeleteForOwner(ctx, itemID, o); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, o owner.Owner) error {
	if !o.Valid() {
		return owner.ErrNoOwner
	}
	if _, err := s.carts.DeleteByOwner(ctx, o); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) Summary(ctx context.Context, o owner.Owner) (*dto.CartSummary, error) {
	items, err := s.GetCart(ctx, o)
	if err != nil {
		return nil, err
	}
	summary := Summarize(items)
	return &summary, nil
}

func (s *CartService) Count(ctx context.Context, o owner.Owner) (*dto.CartCount, error) {
	items, err := s.GetCart(ctx, o)
	if err != nil {
		return nil, err
	}
	count := dto.CartCount{ItemCount: len(items)}
	for _, item := range items {
		count.TotalQuantity += item.Quantity
	}
	return &count, nil
}

// Summarize derives cart totals. Subtotal uses the price pinned at add time;
// the discount uses the live product and is informational, so Total equals Subtotal.
func Summarize(items []models.CartItem) dto.CartSummary {
	summary := dto.CartSummary{Items: items, ItemCount: len(items)}
	for _, item := range items {
		summary.TotalQuantity += item.Quantity
		summary.Subtotal += item.Price * float64(item.Quantity)
		if p := item.Product; p != nil && p.OriginalPrice > p.CurrentPrice {
			summary.TotalDiscount += (p.OriginalPrice - p.CurrentPrice) * float64(item.Quantity)
		}
	}
	summary.Subtotal = roundCents(summary.Subtotal)
	summary.TotalDiscount = roundCents(summary.TotalDiscount)
	summary.Total = summary.Subtotal
	return summary
}

// MigrateSessionCartToUser moves a session's line items to userID. A product
// the user already holds is merged into the user's line, capped at live stock.
// No line item owned by the session remains afterwards.
func (s *CartService) MigrateSessionCartToUser(ctx context.Context, sessionToken string, userID uuid.UUID) error {
	if sessionToken == "" || userID == uuid.Nil {
		return owner.ErrNoOwner
	}
	session := owner.Anonymous(sessionToken)
	user := owner.User(userID)

	sessionItems, err := s.carts.ListByOwner(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to list session cart: %w", err)
	}
	if len(sessionItems) == 0 {
		return nil
	}

	userItems, err := s.carts.ListByOwner(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to list user cart: %w", err)
	}
	held := make(map[uuid.UUID]models.CartItem, len(userItems))
	for _, item := range userItems {
		held[item.ProductID] = item
	}

	merged := 0
	for _, item := range sessionItems {
		existing, ok := held[item.ProductID]
		if !ok {
			continue
		}
		quantity := existing.Quantity + item.Quantity
		if item.Product != nil && quantity > item.Product.Stock {
			quantity = max(existing.Quantity, item.Product.Stock)
		}
		if quantity != existing.Quantity {
			if err := s.carts.UpdateQuantity(ctx, existing.ID, quantity); err != nil {
				return fmt.Errorf("failed to merge cart item: %w", err)
			}
		}
		if _, err := s.carts.DeleteForOwner(ctx, item.ID, session); err != nil {
			return fmt.Errorf("failed to drop merged session item: %w", err)
		}
		merged++
	}

	moved, err := s.carts.ReassignSession(ctx, sessionToken, userID)
	if err != nil {
		return fmt.Errorf("failed to reassign session cart: %w", err)
	}

	slog.Info("session cart migrated",
		"action", "cart_migrate",
		"user_id", userID.String(),
		"session_id", sessionToken,
		"moved", moved,
		"merged", merged,
	)
	return nil
}

func (s *CartService) liveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	return product, nil
}

func assignOwner(item *models.CartItem, o owner.Owner) {
	if id, ok := o.UserID(); ok {
		item.UserID = &id
		item.SessionToken = nil
		return
	}
	token, _ := o.SessionToken()
	item.SessionToken = &token
	item.UserID = nil
}

func stockError(available int) error {
	return fmt.Errorf("%w: only %d available", ErrInsufficientStock, available)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
