// Package catalog builds the product listing and modal view models.
package catalog

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// thumbnailCount is the number of gallery thumbnails in the modal.
const thumbnailCount = 4

// ImageResolver turns image references into loadable URLs.
type ImageResolver interface {
	Resolve(ctx context.Context, image string) string
}

// Card is what a product tile shows; it is all the modal has to work with.
type Card struct {
	Name   string `json:"name" binding:"required"`
	Brand  string `json:"brand"`
	Price  string `json:"price"`
	Image  string `json:"image"`
	Rating int    `json:"rating"`
}

// Thumbnail is one gallery image of the modal.
type Thumbnail struct {
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Review is a customer review shown in the modal.
type Review struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Stars  string `json:"stars"`
	Text   string `json:"text"`
}

// Options says which selectors the modal shows for the product.
type Options struct {
	Size    bool `json:"size"`
	Color   bool `json:"color"`
	Storage bool `json:"storage"`
}

// ProductDetail is the product modal view model.
type ProductDetail struct {
	Title        string      `json:"title"`
	Brand        string      `json:"brand"`
	Price        string      `json:"price"`
	Stars        string      `json:"stars"`
	MainImage    string      `json:"main_image"`
	Thumbnails   []Thumbnail `json:"thumbnails"`
	Description  string      `json:"description"`
	Reviews      []Review    `json:"reviews"`
	ReviewsLabel string      `json:"reviews_label"`
	Options      Options     `json:"options"`
}

// Catalog builds listing and modal view models.
type Catalog struct {
	images ImageResolver

	mu   sync.Mutex
	rand *rand.Rand
}

// New creates a catalog. images may be nil; seed 0 seeds from the clock.
func New(images ImageResolver, seed int64) *Catalog {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Catalog{images: images, rand: rand.New(rand.NewSource(seed))}
}

func (c *Catalog) resolve(ctx context.Context, image string) string {
	if c.images == nil {
		return image
	}
	return c.images.Resolve(ctx, image)
}

// Detail builds the modal for a product card.
func (c *Catalog) Detail(ctx context.Context, card Card) ProductDetail {
	img := c.resolve(ctx, card.Image)

	thumbs := make([]Thumbnail, thumbnailCount)
	for i := range thumbs {
		thumbs[i] = Thumbnail{URL: img, Active: i == 0}
	}

	reviews := c.sampleReviews()

	return ProductDetail{
		Title:        card.Name,
		Brand:        card.Brand,
		Price:        card.Price,
		Stars:        Stars(card.Rating),
		MainImage:    img,
		Thumbnails:   thumbs,
		Description:  ParseBrand(card.Brand).Description(),
		Reviews:      reviews,
		ReviewsLabel: reviewsLabel(len(reviews)),
		Options:      OptionsFor(card.Name),
	}
}

// Stars renders a 0..5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

var (
	sizeKeywords    = []string{"shirt", "t-shirt", "pant", "kurti", "watch", "shoe"}
	noColorKeywords = []string{"telephone", "bulb"}
	storageKeywords = []string{"phone", "iphone", "samsung", "oneplus", "oppo", "realme", "infinix", "huawe", "laptop"}
)

// OptionsFor derives the modal selectors from the product title.
func OptionsFor(title string) Options {
	t := strings.ToLower(title)
	return Options{
		Size:    containsAny(t, sizeKeywords),
		Color:   !containsAny(t, noColorKeywords),
		Storage: containsAny(t, storageKeywords),
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
