package storefront

import (
	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/notify"
)

// View names carried by ViewModel.View.
const (
	ViewCart     = "cart"
	ViewCheckout = "checkout"
	ViewOrder    = "order"
	ViewProduct  = "product"
	ViewProducts = "products"
	ViewAuth     = "auth"
)

// ViewModel is everything the page needs to apply after one interaction.
type ViewModel struct {
	View          string                 `json:"view,omitempty"`
	Cart          *cart.CartView         `json:"cart,omitempty"`
	Checkout      *cart.CheckoutView     `json:"checkout,omitempty"`
	Order         *cart.OrderResult      `json:"order,omitempty"`
	Product       *catalog.ProductDetail `json:"product,omitempty"`
	Products      []catalog.ListedCard   `json:"products,omitempty"`
	Errors        auth.FieldErrors       `json:"errors,omitempty"`
	Notifications []notify.Notification  `json:"notifications"`
	Redirect      string                 `json:"redirect,omitempty"`
	Authenticated bool                   `json:"authenticated"`
}

// Recorder collects flow output into a ViewModel. It implements both
// cart.View and auth.View.
type Recorder struct {
	vm ViewModel
}

var (
	_ cart.View = (*Recorder)(nil)
	_ auth.View = (*Recorder)(nil)
)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{vm: ViewModel{Notifications: []notify.Notification{}}}
}

func (r *Recorder) RenderCart(c cart.CartView) {
	r.vm.View = ViewCart
	r.vm.Cart = &c
}

func (r *Recorder) RenderCheckout(c cart.CheckoutView) {
	r.vm.View = ViewCheckout
	r.vm.Checkout = &c
}

func (r *Recorder) Notify(n notify.Notification) {
	r.vm.Notifications = append(r.vm.Notifications, n)
}

// Redirect keeps the last redirect requested.
func (r *Recorder) Redirect(path string) {
	r.vm.Redirect = path
}

// ShowErrors merges field errors; later errors for a field win.
func (r *Recorder) ShowErrors(errs auth.FieldErrors) {
	if r.vm.Errors == nil {
		r.vm.Errors = auth.FieldErrors{}
	}
	for field, msg := range errs {
		r.vm.Errors[field] = msg
	}
}

// ViewModel returns the collected view model.
func (r *Recorder) ViewModel() *ViewModel {
	vm := r.vm
	return &vm
}
