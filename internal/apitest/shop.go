// Package apitest runs an in-memory shop API for tests. It serves the
// same routes and envelopes as the remote API and records every request.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"storefront/internal/apiclient"

	"github.com/gin-gonic/gin"
)

// Shop is a fake shop API backed by maps.
type Shop struct {
	server *httptest.Server

	mu         sync.Mutex
	healthy    bool
	products   []apiclient.Product
	users      map[string]user
	carts      map[string][]apiclient.CartItem
	requests   map[string]int
	failRemove map[string]bool
	broken     map[string]bool
	nextToken  int
}

type user struct {
	name     string
	password string
	token    string
}

// NewShop starts a fake shop seeded with products. It is closed with t.
func NewShop(t testing.TB, products ...apiclient.Product) *Shop {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Shop{
		healthy:    true,
		products:   products,
		users:      make(map[string]user),
		carts:      make(map[string][]apiclient.CartItem),
		requests:   make(map[string]int),
		failRemove: make(map[string]bool),
		broken:     make(map[string]bool),
	}
	s.server = httptest.NewServer(s.routes())
	t.Cleanup(s.server.Close)
	return s
}

// BaseURL is the API base (with the /api prefix).
func (s *Shop) BaseURL() string { return s.server.URL + "/api" }

// HealthURL is the liveness endpoint at the host root.
func (s *Shop) HealthURL() string { return s.server.URL + "/health" }

// SetHealthy toggles the /health answer between 200 and 503.
func (s *Shop) SetHealthy(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = ok
}

// AddUser registers a user whose login yields token.
func (s *Shop) AddUser(email, password, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = user{name: email, password: password, token: token}
	if _, ok := s.carts[token]; !ok {
		s.carts[token] = nil
	}
}

// SeedCart replaces the cart of token.
func (s *Shop) SeedCart(token string, items ...apiclient.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[token] = append([]apiclient.CartItem(nil), items...)
}

// Cart returns a copy of the cart of token.
func (s *Shop) Cart(token string) []apiclient.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]apiclient.CartItem(nil), s.carts[token]...)
}

// FailRemoval makes DELETE /cart/remove/:id answer success=false for id.
func (s *Shop) FailRemoval(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRemove[productID] = true
}

// Break makes route (e.g. "GET /cart") answer success=false.
func (s *Shop) Break(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broken[route] = true
}

// Requests counts requests to route, e.g. "PUT /cart/update/:id".
func (s *Shop) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// TotalRequests counts every API request, /health excluded.
func (s *Shop) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for route, c := range s.requests {
		if route != "GET /health" {
			n += c
		}
	}
	return n
}

func (s *Shop) routes() http.Handler {
	r := gin.New()
	r.Use(s.record)

	r.GET("/health", func(c *gin.Context) {
		s.mu.Lock()
		ok := s.healthy
		s.mu.Unlock()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	api.GET("/products", s.searchProducts)
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	cart := api.Group("/cart", s.authenticate)
	cart.GET("", s.getCart)
	cart.POST("/add", s.addToCart)
	cart.PUT("/update/:id", s.updateCart)
	cart.DELETE("/remove/:id", s.removeFromCart)

	return r
}

func (s *Shop) record(c *gin.Context) {
	route := c.Request.Method + " " + strings.TrimPrefix(c.FullPath(), "/api")
	s.mu.Lock()
	s.requests[route]++
	broken := s.broken[route]
	s.mu.Unlock()

	if broken {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "broken"})
		return
	}
	c.Next()
}

func (s *Shop) authenticate(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	s.mu.Lock()
	_, ok := s.carts[token]
	s.mu.Unlock()
	if token == "" || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
		return
	}
	c.Set("token", token)
	c.Next()
}

func (s *Shop) searchProducts(c *gin.Context) {
	q := strings.ToLower(c.Query("search"))
	s.mu.Lock()
	defer s.mu.Unlock()

	found := []apiclient.Product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			found = append(found, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": found})
}

func (s *Shop) register(c *gin.Context) {
	var req apiclient.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User already exists"})
		return
	}
	s.nextToken++
	token := fmt.Sprintf("token-%d", s.nextToken)
	s.users[req.Email] = user{name: req.Name, password: req.Password, token: token}
	s.carts[token] = nil
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token})
}

func (s *Shop) login(c *gin.Context) {
	var req apiclient.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.Email]
	if !ok || u.password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": u.token})
}

func (s *Shop) getCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": s.cartLocked(c.GetString("token"))})
}

func (s *Shop) addToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}
	token := c.GetString("token")

	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.productLocked(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	items := s.carts[token]
	for i := range items {
		if items[i].Product.ID == req.ProductID {
			items[i].Quantity += req.Quantity
			c.JSON(http.StatusOK, gin.H{"success": true, "cart": s.cartLocked(token)})
			return
		}
	}
	s.carts[token] = append(items, apiclient.CartItem{Product: product, Quantity: req.Quantity})
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": s.cartLocked(token)})
}

func (s *Shop) updateCart(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid quantity"})
		return
	}
	token, id := c.GetString("token"), c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[token]
	for i := range items {
		if items[i].Product.ID == id {
			items[i].Quantity = req.Quantity
			c.JSON(http.StatusOK, gin.H{"success": true, "cart": s.cartLocked(token)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not in cart"})
}

func (s *Shop) removeFromCart(c *gin.Context) {
	token, id := c.GetString("token"), c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRemove[id] {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not remove item"})
		return
	}
	items := s.carts[token]
	kept := items[:0]
	for _, it := range items {
		if it.Product.ID != id {
			kept = append(kept, it)
		}
	}
	s.carts[token] = kept
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": s.cartLocked(token)})
}

func (s *Shop) productLocked(id string) (apiclient.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return apiclient.Product{}, false
}

func (s *Shop) cartLocked(token string) apiclient.Cart {
	items := append([]apiclient.CartItem{}, s.carts[token]...)
	var total float64
	for _, it := range items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return apiclient.Cart{Items: items, TotalPrice: total}
}
