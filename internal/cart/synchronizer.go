// Package cart keeps the rendered cart in step with the server-side cart.
//
// The server is the single source of truth: every mutation is followed by
// a full reload, and the total shown is always the server's total.
package cart

import (
	"context"
	"log/slog"

	"storefront/internal/activity"
	"storefront/internal/apiclient"
	"storefront/internal/notify"
)

// API is the subset of the shop API the synchronizer needs.
type API interface {
	SearchProducts(ctx context.Context, name string) ([]apiclient.Product, error)
	GetCart(ctx context.Context, token string) (*apiclient.Cart, error)
	AddToCart(ctx context.Context, token, productID string, quantity int) (*apiclient.Cart, error)
	UpdateCartItem(ctx context.Context, token, productID string, quantity int) (*apiclient.Cart, error)
	RemoveCartItem(ctx context.Context, token, productID string) (*apiclient.Cart, error)
}

// ImageResolver turns image references into loadable URLs.
type ImageResolver interface {
	Resolve(ctx context.Context, image string) string
}

// Synchronizer runs the cart and checkout flows.
type Synchronizer struct {
	api       API
	images    ImageResolver
	publisher activity.Publisher
	logger    *slog.Logger
}

// NewSynchronizer creates a synchronizer. images and publisher may be nil.
func NewSynchronizer(api API, images ImageResolver, publisher activity.Publisher, logger *slog.Logger) *Synchronizer {
	if publisher == nil {
		publisher = activity.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{api: api, images: images, publisher: publisher, logger: logger}
}

func (s *Synchronizer) imageFunc(ctx context.Context) func(string) string {
	return func(image string) string {
		if s.images == nil {
			return image
		}
		return s.images.Resolve(ctx, image)
	}
}

func (s *Synchronizer) publish(eventType string, data map[string]any) {
	if err := s.publisher.Publish(activity.New(eventType, data)); err != nil {
		s.logger.Warn("Failed to publish activity", "type", eventType, "error", err.Error())
	}
}

// rejected reports whether err is a well-formed success=false answer.
func rejected(err error) bool {
	_, ok := apiclient.RejectionMessage(err)
	return ok
}

func (s *Synchronizer) fail(v View, msg string, err error, attrs ...any) {
	s.logger.Warn(msg, append(attrs, "error", err.Error())...)
	v.Notify(notify.Error(msg))
}

// Load fetches the cart and replaces the rendered rows. Without a token
// it redirects to sign-in and sends nothing.
func (s *Synchronizer) Load(ctx context.Context, token string, v View) {
	if token == "" {
		v.Redirect(SignInPath)
		return
	}

	c, err := s.api.GetCart(ctx, token)
	if err != nil {
		s.fail(v, "Error loading cart", err)
		return
	}
	v.RenderCart(cartView(c, s.imageFunc(ctx)))
}

// Add looks the product up by name (first match wins) and adds quantity
// of it. The cart is not re-rendered.
func (s *Synchronizer) Add(ctx context.Context, token, name string, quantity int, v View) {
	if token == "" {
		v.Notify(notify.Error("Please login first to add items to cart"))
		v.Redirect(SignInPath)
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	products, err := s.api.SearchProducts(ctx, name)
	if err != nil && !rejected(err) {
		s.fail(v, "Error adding to cart", err, "product", name)
		return
	}
	if len(products) == 0 {
		v.Notify(notify.Error("Product not found"))
		return
	}
	product := products[0]

	if _, err := s.api.AddToCart(ctx, token, product.ID, quantity); err != nil {
		s.fail(v, "Error adding to cart", err, "product_id", product.ID)
		return
	}

	v.Notify(notify.Success("Product added to cart!"))
	s.publish(activity.TypeCartItemAdded, map[string]any{
		"product_id": product.ID,
		"quantity":   quantity,
	})
}

// UpdateQuantity sets an absolute quantity, then reloads. Quantities
// below 1 are ignored without a request.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, token, productID string, quantity int, v View) {
	if quantity < 1 {
		return
	}
	if token == "" {
		v.Redirect(SignInPath)
		return
	}

	if _, err := s.api.UpdateCartItem(ctx, token, productID, quantity); err != nil {
		s.fail(v, "Error updating cart", err, "product_id", productID)
		return
	}
	s.Load(ctx, token, v)
}

// Remove deletes a product from the cart, reloads, and shows the
// removal toast.
func (s *Synchronizer) Remove(ctx context.Context, token, productID string, v View) {
	if token == "" {
		v.Redirect(SignInPath)
		return
	}

	if _, err := s.api.RemoveCartItem(ctx, token, productID); err != nil {
		s.fail(v, "Error removing item", err, "product_id", productID)
		return
	}
	s.Load(ctx, token, v)
	v.Notify(notify.Removed())
	s.publish(activity.TypeCartItemRemoved, map[string]any{"product_id": productID})
}

// LoadCheckout renders the order summary.
func (s *Synchronizer) LoadCheckout(ctx context.Context, token string, v View) {
	if token == "" {
		v.Redirect(SignInPath)
		return
	}

	c, err := s.api.GetCart(ctx, token)
	if err != nil {
		s.fail(v, "Error loading checkout items", err)
		return
	}
	v.RenderCheckout(checkoutView(c, s.imageFunc(ctx)))
}

// OrderResult summarises a PlaceOrder run.
type OrderResult struct {
	Items   int `json:"items"`
	Removed int `json:"removed"`
}

// Complete reports whether every item left the cart.
func (r OrderResult) Complete() bool { return r.Items > 0 && r.Removed == r.Items }

// PlaceOrder emulates checkout: the shop API has no order endpoint, so
// the order is "placed" by deleting every cart item, one at a time.
// Rejected deletes are reported as a warning and are not rolled back. A
// transport failure stops the run with an error and no redirect.
func (s *Synchronizer) PlaceOrder(ctx context.Context, token string, form CheckoutForm, v View) OrderResult {
	if token == "" {
		v.Redirect(SignInPath)
		return OrderResult{}
	}
	if err := form.Validate(); err != nil {
		v.Notify(notify.Error(err.Error()))
		return OrderResult{}
	}

	c, err := s.api.GetCart(ctx, token)
	if err != nil && !rejected(err) {
		s.fail(v, "Error placing order", err)
		return OrderResult{}
	}
	if err != nil || len(c.Items) == 0 {
		v.Notify(notify.Error("Your cart is empty"))
		return OrderResult{}
	}

	// A rejected delete leaves the item behind and the order goes on; a
	// transport failure stops the order where it is.
	res := OrderResult{Items: len(c.Items)}
	for _, it := range c.Items {
		_, err := s.api.RemoveCartItem(ctx, token, it.Product.ID)
		if err == nil {
			res.Removed++
			continue
		}
		if !rejected(err) {
			s.fail(v, "Error placing order", err, "product_id", it.Product.ID, "removed", res.Removed)
			return res
		}
		s.logger.Warn("Order item not cleared",
			"product_id", it.Product.ID,
			"error", err.Error(),
		)
	}

	if res.Complete() {
		v.Notify(notify.Success("Order placed successfully!"))
	} else {
		v.Notify(notify.Warning("Order placed with some issues. Please check your dashboard."))
	}
	v.Redirect(DashboardPath)

	s.logger.Info("Order placed", "items", res.Items, "removed", res.Removed)
	s.publish(activity.TypeOrderPlaced, map[string]any{
		"items":    res.Items,
		"removed":  res.Removed,
		"complete": res.Complete(),
	})
	return res
}
