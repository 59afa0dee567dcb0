// Package storefront turns user interactions into flow runs. Every
// interaction is a typed Event; dispatching it yields the ViewModel the
// page applies.
package storefront

import (
	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
)

// Event is one user interaction.
type Event interface {
	Name() string
}

// LoadCart renders the cart page.
type LoadCart struct{}

// AddToCart adds a product found by name.
type AddToCart struct {
	ProductName string `json:"name" binding:"required"`
	Quantity    int    `json:"quantity"`
}

// UpdateQuantity sets the absolute quantity of a cart line.
type UpdateQuantity struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RemoveItem deletes a cart line.
type RemoveItem struct {
	ProductID string `json:"product_id"`
}

// LoadCheckout renders the checkout summary.
type LoadCheckout struct{}

// PlaceOrder submits the checkout form.
type PlaceOrder struct {
	Form cart.CheckoutForm
}

// OpenProduct opens the product modal of a tile.
type OpenProduct struct {
	Card catalog.Card
}

// LoadMore appends the extra tiles of a home page section.
type LoadMore struct {
	Section catalog.Section
}

// SearchProducts looks products up by name.
type SearchProducts struct {
	Query string
}

// SignUp submits the sign-up form.
type SignUp struct {
	Form auth.SignupForm
}

// SignIn submits the sign-in form.
type SignIn struct {
	Form auth.SigninForm
}

// SignOut ends the session.
type SignOut struct{}

// AuthState asks whether the session is signed in.
type AuthState struct{}

// ValidateField checks one auth form field as it loses focus.
type ValidateField struct {
	Field    string `json:"field" binding:"required"`
	Value    string `json:"value"`
	Password string `json:"password"`
}

func (LoadCart) Name() string       { return "load_cart" }
func (AddToCart) Name() string      { return "add_to_cart" }
func (UpdateQuantity) Name() string { return "update_quantity" }
func (RemoveItem) Name() string     { return "remove_item" }
func (LoadCheckout) Name() string   { return "load_checkout" }
func (PlaceOrder) Name() string     { return "place_order" }
func (OpenProduct) Name() string    { return "open_product" }
func (LoadMore) Name() string       { return "load_more" }
func (SearchProducts) Name() string { return "search_products" }
func (SignUp) Name() string         { return "sign_up" }
func (SignIn) Name() string         { return "sign_in" }
func (SignOut) Name() string        { return "sign_out" }
func (AuthState) Name() string      { return "auth_state" }
func (ValidateField) Name() string  { return "validate_field" }
