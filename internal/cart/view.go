package cart

import (
	"storefront/internal/apiclient"
	"storefront/internal/catalog"
	"storefront/internal/notify"
)

// Paths the flows redirect to.
const (
	SignInPath    = "/signin"
	DashboardPath = "/dashboard"
)

// View receives view-model updates from the synchronizer.
type View interface {
	RenderCart(CartView)
	RenderCheckout(CheckoutView)
	Notify(notify.Notification)
	Redirect(path string)
}

// Row is one rendered cart line. Subtotal is display-only; the cart total
// always comes from the server.
type Row struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Subtotal      float64 `json:"subtotal"`
	PriceLabel    string  `json:"price_label"`
	SubtotalLabel string  `json:"subtotal_label"`
}

// CartView is the cart table plus its total.
type CartView struct {
	Rows       []Row   `json:"rows"`
	Total      float64 `json:"total"`
	TotalLabel string  `json:"total_label"`
}

// CheckoutView is the order summary of the checkout page.
type CheckoutView struct {
	Rows          []Row  `json:"rows"`
	Empty         bool   `json:"empty"`
	EmptyMessage  string `json:"empty_message,omitempty"`
	SubtotalLabel string `json:"subtotal_label"`
	TotalLabel    string `json:"total_label"`
}

var rupees = catalog.Rupees

func rowsOf(c *apiclient.Cart, image func(string) string) []Row {
	rows := make([]Row, 0, len(c.Items))
	for _, it := range c.Items {
		sub := it.Product.Price * float64(it.Quantity)
		rows = append(rows, Row{
			ProductID:     it.Product.ID,
			Name:          it.Product.Name,
			Image:         image(it.Product.Image),
			Price:         it.Product.Price,
			Quantity:      it.Quantity,
			Subtotal:      sub,
			PriceLabel:    rupees(it.Product.Price),
			SubtotalLabel: rupees(sub),
		})
	}
	return rows
}

func cartView(c *apiclient.Cart, image func(string) string) CartView {
	return CartView{
		Rows:       rowsOf(c, image),
		Total:      c.TotalPrice,
		TotalLabel: rupees(c.TotalPrice),
	}
}

func checkoutView(c *apiclient.Cart, image func(string) string) CheckoutView {
	if len(c.Items) == 0 {
		return CheckoutView{
			Rows:          []Row{},
			Empty:         true,
			EmptyMessage:  "Your cart is empty.",
			SubtotalLabel: rupees(0),
			TotalLabel:    rupees(0),
		}
	}
	return CheckoutView{
		Rows:          rowsOf(c, image),
		SubtotalLabel: rupees(c.TotalPrice),
		TotalLabel:    rupees(c.TotalPrice),
	}
}
