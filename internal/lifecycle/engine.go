// Package lifecycle enforces the order state machine: transition guards,
// timestamps set exactly once, and the notification records emitted as
// transition side effects.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jerseyorders/internal/links"
	"jerseyorders/internal/models"
	"jerseyorders/internal/store"
)

var (
	// ErrInvalidTransition means the order's current status does not
	// admit the requested action.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrDetailsAlreadySubmitted guards against a second detail
	// submission once the list is finalized.
	ErrDetailsAlreadySubmitted = errors.New("details already submitted")
	// ErrLinkAlreadyGenerated guards the one-time unique link assignment.
	ErrLinkAlreadyGenerated = errors.New("customer link already generated")
)

// QuantityMismatchError reports a detail list whose length does not match
// the order's jersey quantity.
type QuantityMismatchError struct {
	Want int
	Got  int
}

func (e QuantityMismatchError) Error() string {
	return fmt.Sprintf("expected %d jersey details, got %d", e.Want, e.Got)
}

// Engine drives order transitions against an injected store. It holds no
// order state of its own.
type Engine struct {
	store     store.Store
	shortener *links.Shortener
}

func NewEngine(st store.Store, shortener *links.Shortener) *Engine {
	return &Engine{store: st, shortener: shortener}
}

// Create persists a new order in the initial pending state. The store
// assigns the id and creation date.
func (e *Engine) Create(ctx context.Context, o models.Order) (models.Order, error) {
	return e.store.Create(ctx, o)
}

// Approve moves a pending or details_submitted order to approved, stamps
// approvedDate once and records an auto notification. Approving an already
// approved order is a no-op.
func (e *Engine) Approve(ctx context.Context, id string) (models.Order, error) {
	return e.review(ctx, id, models.StatusApproved, EventApproved)
}

// Reject is the symmetric counterpart of Approve.
func (e *Engine) Reject(ctx context.Context, id string) (models.Order, error) {
	return e.review(ctx, id, models.StatusRejected, EventRejected)
}

func (e *Engine) review(ctx context.Context, id string, target models.Status, event string) (models.Order, error) {
	o, err := e.store.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if o.Status == target {
		return o, nil
	}
	if !o.Status.Reviewable() {
		return models.Order{}, ErrInvalidTransition
	}

	now := time.Now()
	patch := store.Patch{
		Status:        &target,
		Notifications: append(o.Notifications, e.autoNotification(o, event)),
	}
	if target == models.StatusApproved {
		patch.ApprovedDate = &now
	} else {
		patch.RejectedDate = &now
	}

	updated, err := e.store.Update(ctx, id, patch)
	if err != nil {
		return models.Order{}, err
	}
	log.Printf("[LIFECYCLE] [INFO] order %s -> %s", id, target)
	return updated, nil
}

// SubmitDetails finalizes the customer's jersey details. The list length
// must equal the order's jersey quantity and details may only be submitted
// once; the status moves to details_submitted regardless of any earlier
// review outcome.
func (e *Engine) SubmitDetails(ctx context.Context, id string, details []models.JerseyDetail) (models.Order, error) {
	o, err := e.store.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if o.HasDetails() {
		return models.Order{}, ErrDetailsAlreadySubmitted
	}
	if len(details) != o.JerseyQuantity {
		return models.Order{}, QuantityMismatchError{Want: o.JerseyQuantity, Got: len(details)}
	}

	now := time.Now()
	status := models.StatusDetailsSubmitted
	updated, err := e.store.Update(ctx, id, store.Patch{
		Status:               &status,
		CustomerDetails:      details,
		DetailsSubmittedDate: &now,
		Notifications:        append(o.Notifications, e.autoNotification(o, EventDetailsReceived)),
	})
	if err != nil {
		return models.Order{}, err
	}
	log.Printf("[LIFECYCLE] [INFO] order %s details submitted (%d jerseys)", id, len(details))
	return updated, nil
}

// GenerateLink assigns the one-time shareable customer URL. The short link
// is attached separately and never blocks this transition.
func (e *Engine) GenerateLink(ctx context.Context, id, baseURL string) (models.Order, error) {
	o, err := e.store.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if o.UniqueLink != "" {
		return models.Order{}, ErrLinkAlreadyGenerated
	}

	link, err := links.BuildShareableURL(o, baseURL)
	if err != nil {
		return models.Order{}, err
	}
	return e.store.Update(ctx, id, store.Patch{UniqueLink: &link})
}

// AttachShortLink asks the provider chain for a shorter equivalent of the
// order's unique link and stores it when one is returned. Failures are
// silent: the long URL remains fully functional.
func (e *Engine) AttachShortLink(ctx context.Context, id string) {
	if e.shortener == nil {
		return
	}

	o, err := e.store.Get(ctx, id)
	if err != nil || o.UniqueLink == "" || o.ShortLink != "" {
		return
	}

	short := e.shortener.Shorten(ctx, o.UniqueLink)
	if short == "" {
		return
	}
	if _, err := e.store.Update(ctx, id, store.Patch{ShortLink: &short}); err != nil {
		log.Printf("[LIFECYCLE] [WARN] short link for %s not saved: %v", id, err)
	}
}

// Notify records a staff-triggered notification. An empty message falls
// back to the status-appropriate default template.
func (e *Engine) Notify(ctx context.Context, id, notificationType, message string) (models.Order, error) {
	o, err := e.store.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if message == "" {
		message = DefaultMessage(o)
	}

	n := models.Notification{
		ID:       models.NewNotificationID(),
		OrderID:  o.ID,
		Type:     notificationType,
		Message:  message,
		SentDate: time.Now(),
		Status:   "sent",
	}
	return e.store.Update(ctx, id, store.Patch{
		Notifications: append(o.Notifications, n),
	})
}

func (e *Engine) autoNotification(o models.Order, event string) models.Notification {
	return models.Notification{
		ID:            models.NewNotificationID(),
		OrderID:       o.ID,
		Type:          "email",
		Message:       autoMessage(event, o),
		SentDate:      time.Now(),
		Status:        "sent",
		AutoGenerated: true,
	}
}
