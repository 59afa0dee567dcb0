package catalog

import (
	"context"
	"testing"

	"storefront/internal/apiclient"
	"storefront/internal/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	shop := apitest.NewShop(t,
		apiclient.Product{ID: "p1", Name: "Men Watch", Brand: "Sonata", Price: 600, Image: "img/elect/clock-e10.jpg", Rating: 4},
		apiclient.Product{ID: "p2", Name: "Smeg Electric Kettle", Price: 400, Image: "img/elect/e11.jpg"},
	)
	c := New(prefixResolver("https://cdn/"), 1)

	cards, err := c.Search(context.Background(), shop.Client(), "watch")

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Men Watch", cards[0].Name)
	assert.Equal(t, "Rs. 600", cards[0].Price)
	assert.Equal(t, "https://cdn/img/elect/clock-e10.jpg", cards[0].Image)
	assert.Equal(t, "★★★★☆", cards[0].Stars)
}

func TestSearch_Rejected(t *testing.T) {
	shop := apitest.NewShop(t)
	shop.Break("GET /products")

	_, err := New(nil, 1).Search(context.Background(), shop.Client(), "watch")

	var rejected *apiclient.RejectedError
	assert.ErrorAs(t, err, &rejected)
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "Rs. 500", Rupees(500))
	assert.Equal(t, "Rs. 99.5", Rupees(99.5))
	assert.Equal(t, "Rs. 0", Rupees(0))
}
