package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/notify"
	"storefront/internal/session"
)

// Config wires the flows a Dispatcher runs.
type Config struct {
	Sessions session.Manager
	Cart     *cart.Synchronizer
	Auth     *auth.Service
	Catalog  *catalog.Catalog
	Search   catalog.Searcher
}

// Dispatcher runs events for a browser session.
type Dispatcher struct {
	sessions session.Manager
	cart     *cart.Synchronizer
	auth     *auth.Service
	catalog  *catalog.Catalog
	search   catalog.Searcher
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(cfg Config, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sessions: cfg.Sessions,
		cart:     cfg.Cart,
		auth:     cfg.Auth,
		catalog:  cfg.Catalog,
		search:   cfg.Search,
		logger:   logger,
	}
}

// Dispatch runs ev on behalf of sessionID and returns the resulting view
// model. It never fails: every error surfaces as a notification.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, ev Event) *ViewModel {
	rec := NewRecorder()

	token, err := d.token(ctx, sessionID)
	if err != nil {
		d.logger.Error("Failed to read session", "session_id", sessionID, "error", err.Error())
		rec.Notify(notify.Error("Something went wrong. Please try again."))
		return rec.ViewModel()
	}

	d.logger.Debug("Dispatching event", "event", ev.Name(), "session_id", sessionID)
	d.run(ctx, sessionID, token, ev, rec)

	vm := rec.ViewModel()
	vm.Authenticated = d.signedIn(ctx, sessionID)
	if _, ok := ev.(AuthState); ok {
		vm.View = ViewAuth
	}
	return vm
}

func (d *Dispatcher) run(ctx context.Context, sessionID, token string, ev Event, rec *Recorder) {
	switch e := ev.(type) {
	case LoadCart:
		d.cart.Load(ctx, token, rec)
	case AddToCart:
		d.cart.Add(ctx, token, e.ProductName, e.Quantity, rec)
	case UpdateQuantity:
		d.cart.UpdateQuantity(ctx, token, e.ProductID, e.Quantity, rec)
	case RemoveItem:
		d.cart.Remove(ctx, token, e.ProductID, rec)
	case LoadCheckout:
		d.cart.LoadCheckout(ctx, token, rec)
	case PlaceOrder:
		res := d.cart.PlaceOrder(ctx, token, e.Form, rec)
		if res.Items > 0 && rec.vm.Redirect == cart.DashboardPath {
			rec.vm.View = ViewOrder
			rec.vm.Order = &res
		}
	case OpenProduct:
		detail := d.catalog.Detail(ctx, e.Card)
		rec.vm.View = ViewProduct
		rec.vm.Product = &detail
	case LoadMore:
		rec.vm.View = ViewProducts
		rec.vm.Products = d.catalog.More(ctx, e.Section)
	case SearchProducts:
		cards, err := d.catalog.Search(ctx, d.search, e.Query)
		if err != nil {
			d.logger.Warn("Product search failed", "query", e.Query, "error", err.Error())
			rec.Notify(notify.Error("Error searching products"))
			return
		}
		rec.vm.View = ViewProducts
		rec.vm.Products = cards
	case SignUp:
		d.auth.SignUp(ctx, sessionID, e.Form, rec)
	case SignIn:
		d.auth.SignIn(ctx, sessionID, e.Form, rec)
	case SignOut:
		if err := d.auth.SignOut(ctx, sessionID, rec); err != nil {
			d.logger.Error("Sign-out failed", "session_id", sessionID, "error", err.Error())
			rec.Notify(notify.Error("Error signing out"))
		}
	case AuthState:
	case ValidateField:
		rec.ShowErrors(auth.FieldErrors{e.Field: auth.ValidateField(e.Field, e.Value, e.Password)})
	default:
		d.logger.Warn("Unknown event", "event", fmt.Sprintf("%T", ev))
	}
}

func (d *Dispatcher) token(ctx context.Context, sessionID string) (string, error) {
	token, err := d.sessions.Token(ctx, sessionID)
	if errors.Is(err, session.ErrNoToken) || errors.Is(err, session.ErrInvalidSession) {
		return "", nil
	}
	return token, err
}

func (d *Dispatcher) signedIn(ctx context.Context, sessionID string) bool {
	state, err := d.auth.State(ctx, sessionID)
	if err != nil {
		d.logger.Warn("Failed to read auth state", "session_id", sessionID, "error", err.Error())
		return false
	}
	return state.Authenticated
}
