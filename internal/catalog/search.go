package catalog

import (
	"context"
	"strconv"

	"storefront/internal/apiclient"
)

// Searcher finds products by name on the shop API.
type Searcher interface {
	SearchProducts(ctx context.Context, name string) ([]apiclient.Product, error)
}

// Rupees formats an amount the way the storefront prints prices.
func Rupees(amount float64) string {
	return "Rs. " + strconv.FormatFloat(amount, 'f', -1, 64)
}

// Search looks products up by name and returns them as tiles.
func (c *Catalog) Search(ctx context.Context, api Searcher, name string) ([]ListedCard, error) {
	products, err := api.SearchProducts(ctx, name)
	if err != nil {
		return nil, err
	}

	out := make([]ListedCard, 0, len(products))
	for _, p := range products {
		card := Card{
			Name:   p.Name,
			Brand:  p.Brand,
			Price:  Rupees(p.Price),
			Image:  c.resolve(ctx, p.Image),
			Rating: p.Rating,
		}
		out = append(out, ListedCard{Card: card, Stars: Stars(card.Rating)})
	}
	return out, nil
}
