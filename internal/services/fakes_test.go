package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/owner"
	"github.com/ahmetcoskunkizilkaya/storefront/internal/repository"
	"github.com/google/uuid"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUsers) FindActiveByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.IsActive && u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) UpdateColumns(_ context.Context, id uuid.UUID, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "first_name":
			u.FirstName = v.(string)
		case "last_name":
			u.LastName = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "password":
			u.Password = v.(string)
		case "is_active":
			u.IsActive = v.(bool)
		case "last_login":
			t := v.(time.Time)
			u.LastLogin = &t
		default:
			panic("unexpected user column " + k)
		}
	}
	return nil
}

type fakeProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
	lastF    repository.ProductFilter
	updates  []map[string]any
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	f := &fakeProducts{products: make(map[uuid.UUID]*models.Product)}
	for i := range products {
		p := products[i]
		f.products[p.ID] = &p
	}
	return f
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Search(_ context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastF = filter
	var out []models.Product
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	total := int64(len(out))
	if filter.Offset >= len(out) {
		return []models.Product{}, total, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeProducts) Brands(context.Context) ([]string, error) {
	return []string{"Apple", "Sony"}, nil
}

func (f *fakeProducts) CountByCategory(context.Context) (map[models.Category]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[models.Category]int64)
	for _, p := range f.products {
		if p.IsActive {
			counts[p.Category]++
		}
	}
	return counts, nil
}

func (f *fakeProducts) Create(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProducts) UpdateColumns(_ context.Context, id uuid.UUID, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.updates = append(f.updates, fields)
	for k, v := range fields {
		switch k {
		case "is_active":
			p.IsActive = v.(bool)
		case "current_price":
			p.CurrentPrice = v.(float64)
		case "original_price":
			p.OriginalPrice = v.(float64)
		case "discount":
			p.Discount = v.(int)
		case "stock":
			p.Stock = v.(int)
		case "title":
			p.Title = v.(string)
		}
	}
	return nil
}

func (f *fakeProducts) setStock(id uuid.UUID, stock int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[id].Stock = stock
}

// fakeCarts scopes every read and write by owner the same way the gorm scope does.
type fakeCarts struct {
	mu       sync.Mutex
	items    map[uuid.UUID]*models.CartItem
	products *fakeProducts
	seq      int
}

func newFakeCarts(products *fakeProducts) *fakeCarts {
	return &fakeCarts{items: make(map[uuid.UUID]*models.CartItem), products: products}
}

func ownedBy(item *models.CartItem, o owner.Owner) bool {
	if id, ok := o.UserID(); ok {
		return item.UserID != nil && *item.UserID == id
	}
	if token, ok := o.SessionToken(); ok {
		return item.UserID == nil && item.SessionToken != nil && *item.SessionToken == token
	}
	return false
}

func (f *fakeCarts) ListByOwner(_ context.Context, o owner.Owner) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CartItem, 0)
	for _, item := range f.items {
		if !ownedBy(item, o) {
			continue
		}
		cp := *item
		if p, ok := f.products.products[item.ProductID]; ok {
			pc := *p
			cp.Product = &pc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCarts) FindByOwnerAndProduct(_ context.Context, o owner.Owner, productID uuid.UUID) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if ownedBy(item, o) && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCarts) FindByIDForOwner(_ context.Context, id uuid.UUID, o owner.Owner) (*models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok || !ownedBy(item, o) {
		return nil, repository.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeCarts) Create(_ context.Context, item *models.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if (item.UserID == nil) == (item.SessionToken == nil) {
		panic("cart item must have exactly one owner")
	}
	f.seq++
	item.CreatedAt = time.Unix(int64(f.seq), 0)
	cp := *item
	cp.Product = nil
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeCarts) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[id]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (f *fakeCarts) DeleteForOwner(_ context.Context, id uuid.UUID, o owner.Owner) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok || !ownedBy(item, o) {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

func (f *fakeCarts) DeleteByOwner(_ context.Context, o owner.Owner) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, item := range f.items {
		if ownedBy(item, o) {
			delete(f.items, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeCarts) ReassignSession(_ context.Context, sessionToken string, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, item := range f.items {
		if item.UserID == nil && item.SessionToken != nil && *item.SessionToken == sessionToken {
			id := userID
			item.UserID = &id
			item.SessionToken = nil
			n++
		}
	}
	return n, nil
}

func newProduct(title string, current, original float64, stock int) models.Product {
	return models.Product{
		ID:               uuid.New(),
		Title:            title,
		Brand:            "Acme",
		Category:         models.CategoryAudio,
		CurrentPrice:     current,
		OriginalPrice:    original,
		Stock:            stock,
		IsActive:         true,
		InstallmentTimes: 12,
		Condition:        models.ConditionNew,
	}
}
