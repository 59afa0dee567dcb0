package session

import "time"

// Credential is what the storefront remembers for a browser session:
// the opaque bearer token issued by the shop API.
type Credential struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
