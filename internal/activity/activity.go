// Package activity describes the storefront events published for
// analytics, and the publisher abstraction the flows depend on.
package activity

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeCartItemAdded   = "cart.item_added"
	TypeCartItemRemoved = "cart.item_removed"
	TypeOrderPlaced     = "order.placed"
	TypeSignedUp        = "auth.signed_up"
	TypeSignedIn        = "auth.signed_in"
	TypeSignedOut       = "auth.signed_out"
)

// Event is one storefront activity record.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType string, data map[string]any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events. Publishing is fire-and-forget: flows log a
// failed publish and carry on.
type Publisher interface {
	Publish(event Event) error
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(Event) error { return nil }
