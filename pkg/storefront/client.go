// Package storefront is a Go client for the storefront REST API and a
// reducer-style cart store built on it.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionHeader = "x-session-id"

type Product struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category"`
	OriginalPrice float64   `json:"original_price"`
	CurrentPrice  float64   `json:"current_price"`
	Discount      int       `json:"discount"`
	Image         string    `json:"image"`
	Stock         int       `json:"stock"`
}

type CartItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Product   *Product  `json:"product,omitempty"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: %d %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Client talks to one API base URL, e.g. "http://localhost:8080/api". It
// keeps the session id the server mints and sends it on later requests.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session string
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSession(id string) Option {
	return func(c *Client) { c.session = id }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetToken attaches a bearer token; an empty token goes back to anonymous.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Cart(ctx context.Context) ([]CartItem, error) {
	var summary struct {
		Items []CartItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &summary); err != nil {
		return nil, err
	}
	return summary.Items, nil
}

func (c *Client) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (*CartItem, error) {
	body := map[string]any{"product_id": productID, "quantity": quantity}
	var item CartItem
	if err := c.do(ctx, http.MethodPost, "/cart", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of a line; zero removes it.
func (c *Client) UpdateCartItem(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return c.do(ctx, http.MethodPut, "/cart/"+itemID.String(), map[string]any{"quantity": quantity}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+itemID.String(), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.session != "" {
		req.Header.Set(sessionHeader, c.session)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if id := resp.Header.Get(sessionHeader); id != "" {
		c.mu.Lock()
		c.session = id
		c.mu.Unlock()
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("storefront: decode %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
