package apiclient

// Product is a catalog entry as returned by the shop API.
type Product struct {
	ID     string  `json:"_id"`
	Name   string  `json:"name"`
	Brand  string  `json:"brand,omitempty"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Rating int     `json:"rating,omitempty"`
}

// CartItem is one line of the server-side cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the full server-side cart. TotalPrice is computed by the server.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// envelope is the common response wrapper of the shop API.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (e envelope) ok() bool        { return e.Success }
func (e envelope) message() string { return e.Message }

type authResponse struct {
	envelope
	Token string `json:"token"`
}

type cartResponse struct {
	envelope
	Cart *Cart `json:"cart"`
}

type productsResponse struct {
	envelope
	Products []Product `json:"products"`
}
