package gateway

import (
	"context"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/backend"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/storefront"

	"github.com/gin-gonic/gin"
)

// Dispatcher runs storefront events. *storefront.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, sessionID string, ev storefront.Event) *storefront.ViewModel
}

// BackendStatus reports which shop API host is in use.
type BackendStatus interface {
	Choice() backend.Choice
}

// HealthChecker is an optional dependency probed by /health.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler maps storefront HTTP requests to events.
type Handler struct {
	dispatcher Dispatcher
	backend    BackendStatus
	storage    HealthChecker
}

// NewHandler creates a handler. storage may be nil.
func NewHandler(dispatcher Dispatcher, status BackendStatus, storage HealthChecker) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		backend:    status,
		storage:    storage,
	}
}

func (h *Handler) dispatch(c *gin.Context, ev storefront.Event) {
	c.Set("event", ev.Name())
	vm := h.dispatcher.Dispatch(c.Request.Context(), SessionID(c), ev)
	c.JSON(http.StatusOK, vm)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// Health reports liveness, the pinned shop API host and, when images are
// presigned, object storage reachability.
func (h *Handler) Health(c *gin.Context) {
	resp := gin.H{
		"status":  "healthy",
		"service": "storefront",
		"backend": h.backend.Choice().String(),
	}

	if h.storage != nil {
		storageHealth := gin.H{"status": "up"}
		if err := h.storage.Health(c.Request.Context()); err != nil {
			storageHealth["status"] = "down"
			storageHealth["error"] = err.Error()
		}
		resp["storage"] = storageHealth
	}

	c.JSON(http.StatusOK, resp)
}

// AuthState handles GET /api/auth/state
func (h *Handler) AuthState(c *gin.Context) {
	h.dispatch(c, storefront.AuthState{})
}

// SignUp handles POST /auth/signup
func (h *Handler) SignUp(c *gin.Context) {
	var form auth.SignupForm
	if !bindJSON(c, &form) {
		return
	}
	h.dispatch(c, storefront.SignUp{Form: form})
}

// SignIn handles POST /auth/signin
func (h *Handler) SignIn(c *gin.Context) {
	var form auth.SigninForm
	if !bindJSON(c, &form) {
		return
	}
	h.dispatch(c, storefront.SignIn{Form: form})
}

// SignOut handles POST /auth/signout
func (h *Handler) SignOut(c *gin.Context) {
	h.dispatch(c, storefront.SignOut{})
}

// ValidateField handles POST /auth/validate
func (h *Handler) ValidateField(c *gin.Context) {
	var ev storefront.ValidateField
	if !bindJSON(c, &ev) {
		return
	}
	h.dispatch(c, ev)
}

// SearchProducts handles GET /api/products?search=
func (h *Handler) SearchProducts(c *gin.Context) {
	h.dispatch(c, storefront.SearchProducts{Query: c.Query("search")})
}

// LoadMore handles GET /api/products/more/:section
func (h *Handler) LoadMore(c *gin.Context) {
	h.dispatch(c, storefront.LoadMore{Section: catalog.Section(c.Param("section"))})
}

// OpenProduct handles POST /api/products/detail
func (h *Handler) OpenProduct(c *gin.Context) {
	var card catalog.Card
	if !bindJSON(c, &card) {
		return
	}
	h.dispatch(c, storefront.OpenProduct{Card: card})
}

// LoadCart handles GET /api/cart
func (h *Handler) LoadCart(c *gin.Context) {
	h.dispatch(c, storefront.LoadCart{})
}

// AddToCart handles POST /api/cart/items
func (h *Handler) AddToCart(c *gin.Context) {
	var ev storefront.AddToCart
	if !bindJSON(c, &ev) {
		return
	}
	h.dispatch(c, ev)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PUT /api/cart/items/:id
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}
	h.dispatch(c, storefront.UpdateQuantity{ProductID: c.Param("id"), Quantity: req.Quantity})
}

// RemoveItem handles DELETE /api/cart/items/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	h.dispatch(c, storefront.RemoveItem{ProductID: c.Param("id")})
}

// LoadCheckout handles GET /api/checkout
func (h *Handler) LoadCheckout(c *gin.Context) {
	h.dispatch(c, storefront.LoadCheckout{})
}

// PlaceOrder handles POST /api/checkout
func (h *Handler) PlaceOrder(c *gin.Context) {
	var form cart.CheckoutForm
	if !bindJSON(c, &form) {
		return
	}
	h.dispatch(c, storefront.PlaceOrder{Form: form})
}
