package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func (m *memUsers) FindActiveByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.IsActive && u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) UpdateColumns(_ context.Context, id uuid.UUID, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["first_name"].(string); ok {
		u.FirstName = v
	}
	if v, ok := fields["password"].(string); ok {
		u.Password = v
	}
	if v, ok := fields["is_active"].(bool); ok {
		u.IsActive = v
	}
	m.users[id] = u
	return nil
}

type memProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
	lastF    repository.ProductFilter
}

func (m *memProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) Search(_ context.Context, f repository.ProductFilter) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastF = f
	out := make([]models.Product, 0)
	for _, p := range m.products {
		if !p.IsActive {
			continue
		}
		if f.Category != nil && p.Category != *f.Category {
			continue
		}
		if f.Featured != nil && p.IsFeatured != *f.Featured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, int64(len(out)), nil
}

func (m *memProducts) Brands(context.Context) ([]string, error) {
	return []string{"Acme"}, nil
}

func (m *memProducts) CountByCategory(context.Context) (map[models.Category]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[models.Category]int64)
	for _, p := range m.products {
		if p.IsActive {
			counts[p.Category]++
		}
	}
	return counts, nil
}

func (m *memProducts) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = *product
	return nil
}

func (m *memProducts) UpdateColumns(_ context.Context, id uuid.UUID, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["is_active"].(bool); ok {
		p.IsActive = v
	}
	if v, ok := fields["stock"].(int); ok {
		p.Stock = v
	}
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	m.products[id] = p
	return nil
}

type memCarts struct {
	mu       sync.Mutex
	items    map[uuid.UUID]models.CartItem
	products *memProducts
	seq      int64
}

func owns(item models.CartItem, o owner.Owner) bool {
	if id, ok := o.UserID(); ok {
		return item.UserID != nil && *item.UserID == id
	}
	token, ok := o.SessionToken()
	return ok && item.UserID == nil && item.SessionToken != nil && *item.SessionToken == token
}

func (m *memCarts) ListByOwner(ctx context.Context, o owner.Owner) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CartItem, 0)
	for _, item := range m.items {
		if !owns(item, o) {
			continue
		}
		if p, err := m.products.FindByID(ctx, item.ProductID); err == nil {
			item.Product = p
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memCarts) FindByOwnerAndProduct(_ context.Context, o owner.Owner, productID uuid.UUID) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if owns(item, o) && item.ProductID == productID {
			return &item, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCarts) FindByIDForOwner(_ context.Context, id uuid.UUID, o owner.Owner) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || !owns(item, o) {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (m *memCarts) Create(_ context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	item.CreatedAt = time.Unix(m.seq, 0)
	stored := *item
	stored.Product = nil
	m.items[item.ID] = stored
	return nil
}

func (m *memCarts) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[id]; ok {
		item.Quantity = quantity
		m.items[id] = item
	}
	return nil
}

func (m *memCarts) DeleteForOwner(_ context.Context, id uuid.UUID, o owner.Owner) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || !owns(item, o) {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func (m *memCarts) DeleteByOwner(_ context.Context, o owner.Owner) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, item := range m.items {
		if owns(item, o) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

func (m *memCarts) ReassignSession(_ context.Context, sessionToken string, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, item := range m.items {
		if item.UserID == nil && item.SessionToken != nil && *item.SessionToken == sessionToken {
			uid := userID
			item.UserID = &uid
			item.SessionToken = nil
			m.items[id] = item
			n++
		}
	}
	return n, nil
}
