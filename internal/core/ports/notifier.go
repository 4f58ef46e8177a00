package ports

import "context"

// Notification is a human-readable message handed to a Notifier.
type Notification struct {
	// Key classifies the message for routing, e.g. "product.updated".
	Key   string `json:"key"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// DeliveryResult is the outcome of one delivery attempt. Detail holds the
// transport status on success or the transport error text on failure.
type DeliveryResult struct {
	Delivered bool
	Detail    string
}

// Notifier delivers notifications on a best-effort basis. Notify never
// returns an error: failures are captured in the result.
type Notifier interface {
	Notify(ctx context.Context, n Notification) DeliveryResult
}
