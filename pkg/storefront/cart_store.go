package storefront

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
)

type Totals struct {
	ItemCount     int     `json:"item_count"`
	Quantity      int     `json:"quantity"`
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"total_discount"`
	Total         float64 `json:"total"`
}

type State struct {
	Items   []CartItem
	Totals  Totals
	Loading bool
	Error   error
}

type ActionType int

const (
	ActionLoadStart ActionType = iota + 1
	ActionLoadSuccess
	ActionLoadFailure
	ActionReset
)

type Action struct {
	Type  ActionType
	Items []CartItem
	Err   error
}

// Reduce returns the next state. Totals are always recomputed from the
// incoming items, never carried over from prev.
func Reduce(prev State, a Action) State {
	switch a.Type {
	case ActionLoadStart:
		next := prev
		next.Loading = true
		next.Error = nil
		return next
	case ActionLoadSuccess:
		items := a.Items
		if items == nil {
			items = []CartItem{}
		}
		return State{Items: items, Totals: ComputeTotals(items)}
	case ActionLoadFailure:
		next := prev
		next.Loading = false
		next.Error = a.Err
		return next
	case ActionReset:
		return State{Items: []CartItem{}}
	}
	return prev
}

// ComputeTotals mirrors the server summary: the discount is informational
// and Total equals Subtotal.
func ComputeTotals(items []CartItem) Totals {
	t := Totals{ItemCount: len(items)}
	for _, item := range items {
		t.Quantity += item.Quantity
		t.Subtotal += item.Price * float64(item.Quantity)
		if p := item.Product; p != nil && p.OriginalPrice > p.CurrentPrice {
			t.TotalDiscount += (p.OriginalPrice - p.CurrentPrice) * float64(item.Quantity)
		}
	}
	t.Subtotal = math.Round(t.Subtotal*100) / 100
	t.TotalDiscount = math.Round(t.TotalDiscount*100) / 100
	t.Total = t.Subtotal
	return t
}

// CartStore mirrors the server cart. Mutations are never applied locally:
// each one is followed by a full reload.
type CartStore struct {
	client *Client

	mu    sync.RWMutex
	state State
}

func NewCartStore(client *Client) *CartStore {
	return &CartStore{client: client, state: State{Items: []CartItem{}}}
}

func (s *CartStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *CartStore) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
}

func (s *CartStore) Load(ctx context.Context) error {
	s.Dispatch(Action{Type: ActionLoadStart})
	items, err := s.client.Cart(ctx)
	if err != nil {
		s.Dispatch(Action{Type: ActionLoadFailure, Err: err})
		return err
	}
	s.Dispatch(Action{Type: ActionLoadSuccess, Items: items})
	return nil
}

func (s *CartStore) Add(ctx context.Context, productID uuid.UUID, quantity int) error {
	_, err := s.client.AddToCart(ctx, productID, quantity)
	return s.reload(ctx, err)
}

func (s *CartStore) Update(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return s.reload(ctx, s.client.UpdateCartItem(ctx, itemID, quantity))
}

func (s *CartStore) Remove(ctx context.Context, itemID uuid.UUID) error {
	return s.reload(ctx, s.client.RemoveCartItem(ctx, itemID))
}

func (s *CartStore) Clear(ctx context.Context) error {
	return s.reload(ctx, s.client.ClearCart(ctx))
}

// reload refreshes from the server whether or not the mutation succeeded,
// and reports the mutation error first.
func (s *CartStore) reload(ctx context.Context, mutErr error) error {
	loadErr := s.Load(ctx)
	if mutErr != nil {
		s.Dispatch(Action{Type: ActionLoadFailure, Err: mutErr})
		return mutErr
	}
	return loadErr
}
