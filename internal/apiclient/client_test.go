package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/apiclient"
	"storefront/internal/apitest"
	"storefront/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kettle = apiclient.Product{ID: "p-1", Name: "Smeg Electric Kettle", Price: 400, Image: "img/elect/e11.jpg"}

func TestSearchProducts(t *testing.T) {
	shop := apitest.NewShop(t, kettle, apiclient.Product{ID: "p-2", Name: "Men Watch", Price: 600})
	client := shop.Client()

	got, err := client.SearchProducts(context.Background(), "Smeg Electric Kettle")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kettle, got[0])
	assert.Equal(t, 1, shop.Requests("GET /products"))
}

func TestCartRoundTrip(t *testing.T) {
	shop := apitest.NewShop(t, kettle)
	shop.AddUser("a@b.co", "secret1", "tok")
	client := shop.Client()
	ctx := context.Background()

	cart, err := client.AddToCart(ctx, "tok", kettle.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 800.0, cart.TotalPrice)

	cart, err = client.UpdateCartItem(ctx, "tok", kettle.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	cart, err = client.GetCart(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, cart.TotalPrice)

	cart, err = client.RemoveCartItem(ctx, "tok", kettle.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRejectionCarriesServerMessage(t *testing.T) {
	shop := apitest.NewShop(t)
	client := shop.Client()

	_, err := client.Login(context.Background(), apiclient.LoginRequest{Email: "nobody@x.io", Password: "nope"})
	require.Error(t, err)

	var rejected *apiclient.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnauthorized, rejected.Status)
	msg, ok := apiclient.RejectionMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid email or password", msg)
}

func TestGetCart_UnknownTokenIsRejected(t *testing.T) {
	shop := apitest.NewShop(t)

	_, err := shop.Client().GetCart(context.Background(), "stale")
	msg, ok := apiclient.RejectionMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Not authorized", msg)
}

type fixedResolver string

func (f fixedResolver) Resolve(context.Context) (string, error) { return string(f), nil }

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := apiclient.New(fixedResolver(base), nil, logger.Discard())
	_, err := client.GetCart(context.Background(), "tok")
	assert.True(t, errors.Is(err, apiclient.ErrUnavailable))
}

func TestNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	t.Cleanup(srv.Close)

	client := apiclient.New(fixedResolver(srv.URL), nil, logger.Discard())
	_, err := client.SearchProducts(context.Background(), "x")
	assert.True(t, errors.Is(err, apiclient.ErrDecode))

	srv500 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv500.Close)

	client = apiclient.New(fixedResolver(srv500.URL), nil, logger.Discard())
	_, err = client.SearchProducts(context.Background(), "x")
	var rejected *apiclient.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadGateway, rejected.Status)
}

func TestBearerTokenIsSent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"cart":{"items":[],"totalPrice":0}}`))
	}))
	t.Cleanup(srv.Close)

	client := apiclient.New(fixedResolver(srv.URL), nil, logger.Discard())
	_, err := client.GetCart(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
}
