// Package notify models the transient toast notifications shown after
// every storefront interaction.
package notify

import "time"

// DismissAfter is how long a notification stays on screen.
const DismissAfter = 3 * time.Second

// Kind selects the styling of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	// KindRemoved is the dedicated "item removed" toast of the cart page.
	KindRemoved Kind = "removed"
)

// Notification is an auto-dismissing message.
type Notification struct {
	Kind           Kind   `json:"kind"`
	Message        string `json:"message"`
	DismissAfterMS int64  `json:"dismiss_after_ms"`
}

func newNotification(kind Kind, msg string) Notification {
	return Notification{Kind: kind, Message: msg, DismissAfterMS: DismissAfter.Milliseconds()}
}

func Success(msg string) Notification { return newNotification(KindSuccess, msg) }
func Error(msg string) Notification   { return newNotification(KindError, msg) }
func Warning(msg string) Notification { return newNotification(KindWarning, msg) }

// Removed is the cart-row removal toast.
func Removed() Notification { return newNotification(KindRemoved, "Item removed from cart") }
