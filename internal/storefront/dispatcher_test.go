package storefront

import (
	"context"
	"testing"
	"time"

	"storefront/internal/activity"
	"storefront/internal/apiclient"
	"storefront/internal/apitest"
	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/logger"
	"storefront/internal/notify"
	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	watch  = apiclient.Product{ID: "p-watch", Name: "Men Watch", Price: 600, Image: "img/elect/clock-e10.jpg"}
	kettle = apiclient.Product{ID: "p-kettle", Name: "Smeg Electric Kettle", Price: 400, Image: "img/elect/e11.jpg"}
)

type fixture struct {
	shop     *apitest.Shop
	sessions session.Manager
	events   *activity.Recorder
	d        *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	shop := apitest.NewShop(t, watch, kettle)
	client := shop.Client()
	sessions := session.NewManager(session.NewMemoryStore(), time.Hour, logger.Discard())
	events := &activity.Recorder{}
	log := logger.Discard()

	d := NewDispatcher(Config{
		Sessions: sessions,
		Cart:     cart.NewSynchronizer(client, nil, events, log),
		Auth:     auth.NewService(client, sessions, events, log),
		Catalog:  catalog.New(nil, 1),
		Search:   client,
	}, log)
	return &fixture{shop: shop, sessions: sessions, events: events, d: d}
}

func (f *fixture) signUp(t *testing.T, sessionID string) {
	t.Helper()
	vm := f.d.Dispatch(context.Background(), sessionID, SignUp{Form: auth.SignupForm{
		Name:            "Asha",
		Email:           "asha@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}})
	require.True(t, vm.Authenticated, "sign-up failed: %+v", vm)
}

func TestShoppingSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "s1")

	vm := f.d.Dispatch(ctx, "s1", AddToCart{ProductName: "Men Watch", Quantity: 2})
	assert.Equal(t, []notify.Notification{notify.Success("Product added to cart!")}, vm.Notifications)

	f.d.Dispatch(ctx, "s1", AddToCart{ProductName: "Kettle"})

	vm = f.d.Dispatch(ctx, "s1", LoadCart{})
	assert.Equal(t, ViewCart, vm.View)
	require.NotNil(t, vm.Cart)
	require.Len(t, vm.Cart.Rows, 2)
	assert.Equal(t, 1600.0, vm.Cart.Total)
	assert.True(t, vm.Authenticated)

	vm = f.d.Dispatch(ctx, "s1", UpdateQuantity{ProductID: kettle.ID, Quantity: 3})
	assert.Equal(t, 2400.0, vm.Cart.Total)

	vm = f.d.Dispatch(ctx, "s1", RemoveItem{ProductID: watch.ID})
	require.Len(t, vm.Cart.Rows, 1)
	assert.Equal(t, []notify.Notification{notify.Removed()}, vm.Notifications)

	vm = f.d.Dispatch(ctx, "s1", LoadCheckout{})
	assert.Equal(t, ViewCheckout, vm.View)
	assert.Equal(t, "Rs. 1200", vm.Checkout.TotalLabel)

	vm = f.d.Dispatch(ctx, "s1", PlaceOrder{Form: cart.CheckoutForm{
		FullName:   "Asha Rao",
		Email:      "asha@example.com",
		Address:    "12 MG Road",
		City:       "Pune",
		PostalCode: "411001",
		Phone:      "9999999999",
	}})
	assert.Equal(t, ViewOrder, vm.View)
	assert.Equal(t, &cart.OrderResult{Items: 1, Removed: 1}, vm.Order)
	assert.Equal(t, cart.DashboardPath, vm.Redirect)

	assert.Equal(t, []string{
		activity.TypeSignedUp,
		activity.TypeCartItemAdded,
		activity.TypeCartItemAdded,
		activity.TypeCartItemRemoved,
		activity.TypeOrderPlaced,
	}, f.events.Types())
}

func TestSignOutThenLoadRedirectsToSignIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "s1")

	vm := f.d.Dispatch(ctx, "s1", SignOut{})
	assert.False(t, vm.Authenticated)
	assert.Equal(t, auth.HomePath, vm.Redirect)

	_, err := f.sessions.Token(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrNoToken)

	before := f.shop.Requests("GET /cart")
	vm = f.d.Dispatch(ctx, "s1", LoadCart{})
	assert.Equal(t, cart.SignInPath, vm.Redirect)
	assert.Nil(t, vm.Cart)
	assert.Equal(t, before, f.shop.Requests("GET /cart"))
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "s1")

	vm := f.d.Dispatch(ctx, "s2", AuthState{})
	assert.Equal(t, ViewAuth, vm.View)
	assert.False(t, vm.Authenticated)

	vm = f.d.Dispatch(ctx, "s1", AuthState{})
	assert.True(t, vm.Authenticated)
}

func TestSignInErrorsReachViewModel(t *testing.T) {
	f := newFixture(t)

	vm := f.d.Dispatch(context.Background(), "s1", SignIn{Form: auth.SigninForm{}})

	assert.Equal(t, auth.FieldErrors{
		auth.FieldSigninUsername: "Please enter your email",
		auth.FieldSigninPassword: "Please enter your password",
	}, vm.Errors)
	assert.False(t, vm.Authenticated)
	assert.Zero(t, f.shop.TotalRequests())
}

func TestCatalogEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	vm := f.d.Dispatch(ctx, "s1", OpenProduct{Card: catalog.Card{Name: "Men Watch", Brand: "Sonata", Rating: 4}})
	assert.Equal(t, ViewProduct, vm.View)
	require.NotNil(t, vm.Product)
	assert.Len(t, vm.Product.Thumbnails, 4)
	assert.True(t, vm.Product.Options.Size)

	vm = f.d.Dispatch(ctx, "s1", LoadMore{Section: catalog.SectionArrivals})
	assert.Equal(t, ViewProducts, vm.View)
	assert.Len(t, vm.Products, 4)

	vm = f.d.Dispatch(ctx, "s1", SearchProducts{Query: "kettle"})
	require.Len(t, vm.Products, 1)
	assert.Equal(t, "Smeg Electric Kettle", vm.Products[0].Name)

	f.shop.Break("GET /products")
	vm = f.d.Dispatch(ctx, "s1", SearchProducts{Query: "kettle"})
	assert.Empty(t, vm.Products)
	assert.Equal(t, []notify.Notification{notify.Error("Error searching products")}, vm.Notifications)
}

func TestValidateFieldEvent(t *testing.T) {
	f := newFixture(t)

	vm := f.d.Dispatch(context.Background(), "s1", ValidateField{Field: auth.FieldPassword, Value: "123"})
	assert.Equal(t, auth.FieldErrors{auth.FieldPassword: "Password must be at least 6 characters"}, vm.Errors)

	vm = f.d.Dispatch(context.Background(), "s1", ValidateField{Field: auth.FieldPassword, Value: "123456"})
	assert.Equal(t, auth.FieldErrors{auth.FieldPassword: ""}, vm.Errors)
}

func TestRecorderKeepsEmptyNotificationList(t *testing.T) {
	vm := NewRecorder().ViewModel()
	assert.NotNil(t, vm.Notifications)
	assert.Empty(t, vm.Notifications)
}
