package lifecycle

import (
	"fmt"

	"jerseyorders/internal/models"
)

// Notification events emitted by lifecycle transitions.
const (
	EventApproved        = "approved"
	EventRejected        = "rejected"
	EventDetailsReceived = "details_received"
)

func autoMessage(event string, o models.Order) string {
	switch event {
	case EventApproved:
		return fmt.Sprintf("Hello %s,\n\nGreat news! Your jersey order (%s) has been approved and is now in production.\n\nWe will notify you once it's ready for pickup/delivery.\n\nThank you for your order!",
			o.CustomerName, o.ID)
	case EventRejected:
		return fmt.Sprintf("Hello %s,\n\nWe regret to inform you that your jersey order (%s) has been rejected.\n\nPlease contact us for more information.\n\nThank you for your understanding.",
			o.CustomerName, o.ID)
	case EventDetailsReceived:
		return fmt.Sprintf("Hello %s,\n\nThank you for submitting your jersey details for order %s.\n\nWe will review your details and notify you of the approval status soon.\n\nThank you for your order!",
			o.CustomerName, o.ID)
	}
	return ""
}

// DefaultMessage is the staff-facing prefill for a manual notification,
// keyed by the order's current status.
func DefaultMessage(o models.Order) string {
	switch o.Status {
	case models.StatusApproved:
		return autoMessage(EventApproved, o)
	case models.StatusRejected:
		return autoMessage(EventRejected, o)
	default:
		return fmt.Sprintf("Hello %s,\n\nYour jersey order (%s) is currently being processed. We will notify you once it's ready.\n\nThank you for your order!",
			o.CustomerName, o.ID)
	}
}
