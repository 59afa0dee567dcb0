package catalog

import "fmt"

var reviewPool = []Review{
	{Author: "John D.", Rating: 5, Text: "Excellent product! Exactly as described and fast shipping."},
	{Author: "Sarah M.", Rating: 4, Text: "Great quality and value for money. Highly recommended!"},
	{Author: "Mike R.", Rating: 5, Text: "Amazing purchase. Works perfectly and looks fantastic."},
	{Author: "Emma L.", Rating: 4, Text: "Very satisfied with this product. Good customer service too."},
	{Author: "David K.", Rating: 5, Text: "Outstanding quality and performance. Will buy again!"},
}

// sampleReviews returns the first 2–4 reviews of the pool.
func (c *Catalog) sampleReviews() []Review {
	c.mu.Lock()
	n := c.rand.Intn(3) + 2
	c.mu.Unlock()

	out := make([]Review, n)
	for i := range out {
		r := reviewPool[i]
		r.Stars = Stars(r.Rating)
		out[i] = r
	}
	return out
}

func reviewsLabel(n int) string {
	return fmt.Sprintf("(%d reviews)", n)
}
