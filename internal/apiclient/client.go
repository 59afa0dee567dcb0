// Package apiclient talks to the remote shop REST API. Every call goes
// through the backend selector, so the host is chosen once per process.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// Resolver yields the API base URL. *backend.Selector implements it.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// Client is the shop API client.
type Client struct {
	resolver   Resolver
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client. httpClient may be nil.
func New(resolver Resolver, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		resolver:   resolver,
		httpClient: httpClient,
		logger:     logger,
	}
}

type result interface {
	ok() bool
	message() string
}

// do is the single helper behind every endpoint. It resolves the base
// URL, sends body as JSON, attaches the bearer token when given and
// decodes the envelope into out.
func (c *Client) do(ctx context.Context, op, method, path, token string, body any, out result) error {
	base, err := c.resolver.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shop API request failed",
			"op", op,
			"method", method,
			"path", path,
			"error", err.Error(),
		)
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if resp.StatusCode >= 400 {
			return &RejectedError{Op: op, Status: resp.StatusCode}
		}
		return fmt.Errorf("%s: %w: %v", op, ErrDecode, err)
	}

	c.logger.Debug("Shop API request completed",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"success", out.ok(),
	)

	if !out.ok() {
		return &RejectedError{Op: op, Status: resp.StatusCode, Message: out.message()}
	}
	return nil
}

// SearchProducts runs GET /products?search=<name>.
func (c *Client) SearchProducts(ctx context.Context, name string) ([]Product, error) {
	var resp productsResponse
	path := "/products?search=" + url.QueryEscape(name)
	if err := c.do(ctx, "search products", http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Register runs POST /auth/register and returns the issued token.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (string, error) {
	var resp authResponse
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", in, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login runs POST /auth/login and returns the issued token.
func (c *Client) Login(ctx context.Context, in LoginRequest) (string, error) {
	var resp authResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", in, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// GetCart runs GET /cart.
func (c *Client) GetCart(ctx context.Context, token string) (*Cart, error) {
	var resp cartResponse
	if err := c.do(ctx, "get cart", http.MethodGet, "/cart", token, nil, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Cart), nil
}

// AddToCart runs POST /cart/add with a quantity delta.
func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) (*Cart, error) {
	var resp cartResponse
	body := addToCartRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, "add to cart", http.MethodPost, "/cart/add", token, body, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Cart), nil
}

// UpdateCartItem runs PUT /cart/update/:id with an absolute quantity.
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) (*Cart, error) {
	var resp cartResponse
	path := "/cart/update/" + url.PathEscape(productID)
	if err := c.do(ctx, "update cart item", http.MethodPut, path, token, updateCartRequest{Quantity: quantity}, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Cart), nil
}

// RemoveCartItem runs DELETE /cart/remove/:id.
func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) (*Cart, error) {
	var resp cartResponse
	path := "/cart/remove/" + url.PathEscape(productID)
	if err := c.do(ctx, "remove cart item", http.MethodDelete, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return orEmpty(resp.Cart), nil
}

func orEmpty(c *Cart) *Cart {
	if c == nil {
		return &Cart{}
	}
	return c
}
