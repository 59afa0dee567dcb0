package catalog

import "context"

// Section names a home page product strip that can load more items.
type Section string

const (
	SectionFeatured Section = "featured"
	SectionArrivals Section = "arrivals"
)

var moreProducts = map[Section][]Card{
	SectionFeatured: {
		{Image: "img/product/n1.jpg", Brand: "adidas", Name: "Sky-blue Shirt", Rating: 5, Price: "Rs. 500"},
		{Image: "img/product/n2.jpg", Brand: "adidas", Name: "Men Shirts", Rating: 5, Price: "Rs. 400"},
		{Image: "img/product/n3.jpg", Brand: "adidas", Name: "Plain White Shirts", Rating: 5, Price: "Rs. 500"},
		{Image: "img/product/n4.jpg", Brand: "adidas", Name: "Half printed Shirts", Rating: 5, Price: "Rs. 400"},
	},
	SectionArrivals: {
		{Image: "img/elect/earphone-e9.jpg", Brand: "adidas", Name: "Earphone (White color)", Rating: 5, Price: "Rs. 100"},
		{Image: "img/elect/clock-e10.jpg", Brand: "Sonata", Name: "Men Watch", Rating: 5, Price: "Rs. 600"},
		{Image: "img/elect/e11.jpg", Brand: "adidas", Name: "Smeg Electric Kettle", Rating: 5, Price: "Rs. 400"},
		{Image: "img/elect/laptop-e12.jpg", Brand: "adidas", Name: "Dell Refurbished Laptop", Rating: 5, Price: "Rs. 40,000"},
	},
}

// ListedCard is a product tile ready to render.
type ListedCard struct {
	Card
	Stars string `json:"stars"`
}

// More returns the extra tiles of a section. Unknown sections are empty.
func (c *Catalog) More(ctx context.Context, section Section) []ListedCard {
	cards := moreProducts[section]
	out := make([]ListedCard, 0, len(cards))
	for _, card := range cards {
		card.Image = c.resolve(ctx, card.Image)
		out = append(out, ListedCard{Card: card, Stars: Stars(card.Rating)})
	}
	return out
}
