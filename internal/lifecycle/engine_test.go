package lifecycle

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"jerseyorders/internal/links"
	"jerseyorders/internal/models"
	"jerseyorders/internal/store"
)

func newTestEngine() (*Engine, *store.Memory) {
	st := store.NewMemory()
	return NewEngine(st, nil), st
}

func createOrder(t *testing.T, e *Engine, quantity int) models.Order {
	t.Helper()
	o, err := e.Create(context.Background(), models.Order{
		CustomerName:   "Sarah Johnson",
		CustomerEmail:  "sarah.johnson@email.com",
		CustomerPhone:  "+1-555-2043",
		JerseyQuantity: quantity,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return o
}

func validDetails(n int) []models.JerseyDetail {
	details := make([]models.JerseyDetail, 0, n)
	for i := 0; i < n; i++ {
		details = append(details, models.JerseyDetail{
			Type:         "Player Jersey",
			Name:         "Smith",
			Number:       i + 1,
			SizeCategory: "Adult",
			Size:         "L",
			Sleeve:       "Short Sleeve",
			Shorts:       "Yes",
		})
	}
	return details
}

func TestFullOrderScenario(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	order := createOrder(t, e, 2)
	if order.Status != models.StatusPending {
		t.Fatalf("new order must be pending, got %s", order.Status)
	}

	// Generate the shareable link and read the status back out of the
	// embedded payload.
	order, err := e.GenerateLink(ctx, order.ID, "https://shop.example.com")
	if err != nil {
		t.Fatalf("generate link failed: %v", err)
	}
	parsed, err := url.Parse(order.UniqueLink)
	if err != nil {
		t.Fatalf("unique link does not parse: %v", err)
	}
	snapshot, err := links.DecodePayload(parsed.Query().Get("payload"), order.ID)
	if err != nil {
		t.Fatalf("payload decode failed: %v", err)
	}
	if snapshot.Status != models.StatusPending {
		t.Fatalf("payload status must read pending, got %s", snapshot.Status)
	}

	// Customer submits both jerseys.
	order, err = e.SubmitDetails(ctx, order.ID, validDetails(2))
	if err != nil {
		t.Fatalf("submit details failed: %v", err)
	}
	if order.Status != models.StatusDetailsSubmitted {
		t.Fatalf("expected details_submitted, got %s", order.Status)
	}
	if len(order.CustomerDetails) != 2 {
		t.Fatalf("expected 2 details, got %d", len(order.CustomerDetails))
	}
	if order.DetailsSubmittedDate == nil {
		t.Fatal("detailsSubmittedDate must be stamped")
	}
	if len(order.Notifications) != 1 || order.Notifications[0].Message == "" {
		t.Fatalf("expected one details_received notification, got %+v", order.Notifications)
	}

	// Staff approves; the earlier notification must survive.
	order, err = e.Approve(ctx, order.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if order.Status != models.StatusApproved || order.ApprovedDate == nil {
		t.Fatalf("approve did not land: %+v", order)
	}
	if len(order.Notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(order.Notifications))
	}
	first, second := order.Notifications[0], order.Notifications[1]
	if !first.AutoGenerated || !second.AutoGenerated {
		t.Fatal("both notifications must be auto generated")
	}
	if first.OrderID != order.ID || second.OrderID != order.ID {
		t.Fatal("notifications must reference the order")
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	order := createOrder(t, e, 1)

	once, err := e.Approve(ctx, order.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	twice, err := e.Approve(ctx, order.ID)
	if err != nil {
		t.Fatalf("second approve must be a no-op, got %v", err)
	}

	if twice.Status != models.StatusApproved {
		t.Fatalf("expected approved, got %s", twice.Status)
	}
	if !twice.ApprovedDate.Equal(*once.ApprovedDate) {
		t.Fatal("approvedDate must be set exactly once")
	}
	if len(twice.Notifications) != 1 {
		t.Fatalf("second approve must not append a notification, got %d", len(twice.Notifications))
	}
}

func TestRejectAfterApproveIsInvalid(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	order := createOrder(t, e, 1)
	if _, err := e.Approve(ctx, order.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := e.Reject(ctx, order.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApproveAfterDetailsSubmitted(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	order := createOrder(t, e, 1)
	if _, err := e.SubmitDetails(ctx, order.ID, validDetails(1)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	order, err := e.Approve(ctx, order.ID)
	if err != nil {
		t.Fatalf("approve after submission must be allowed, got %v", err)
	}
	if order.Status != models.StatusApproved {
		t.Fatalf("expected approved, got %s", order.Status)
	}
	if order.DetailsSubmittedDate == nil {
		t.Fatal("earlier transition timestamps must never be cleared")
	}
}

func TestSubmitDetailsGuards(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	order := createOrder(t, e, 2)

	var mismatch QuantityMismatchError
	if _, err := e.SubmitDetails(ctx, order.ID, validDetails(1)); !errors.As(err, &mismatch) {
		t.Fatalf("expected QuantityMismatchError, got %v", err)
	} else if mismatch.Want != 2 || mismatch.Got != 1 {
		t.Fatalf("unexpected mismatch detail: %+v", mismatch)
	}

	if _, err := e.SubmitDetails(ctx, order.ID, validDetails(2)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := e.SubmitDetails(ctx, order.ID, validDetails(2)); !errors.Is(err, ErrDetailsAlreadySubmitted) {
		t.Fatalf("expected ErrDetailsAlreadySubmitted, got %v", err)
	}
}

func TestGenerateLinkOnlyOnce(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	order := createOrder(t, e, 1)
	if _, err := e.GenerateLink(ctx, order.ID, "https://shop.example.com"); err != nil {
		t.Fatalf("generate link failed: %v", err)
	}
	if _, err := e.GenerateLink(ctx, order.ID, "https://shop.example.com"); !errors.Is(err, ErrLinkAlreadyGenerated) {
		t.Fatalf("expected ErrLinkAlreadyGenerated, got %v", err)
	}
}

func TestNotifyRecordsManualNotification(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	order := createOrder(t, e, 1)

	order, err := e.Notify(ctx, order.ID, "sms", "your jerseys are ready")
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(order.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(order.Notifications))
	}
	n := order.Notifications[0]
	if n.Type != "sms" || n.Message != "your jerseys are ready" || n.AutoGenerated {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.Status != "sent" {
		t.Fatalf("notification status must be sent, got %q", n.Status)
	}

	// Empty message falls back to the status default template.
	order, err = e.Notify(ctx, order.ID, "email", "")
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if order.Notifications[1].Message == "" {
		t.Fatal("expected default message for empty input")
	}
}

func TestTransitionsOnUnknownOrder(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	if _, err := e.Approve(ctx, "ORD-404"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := e.SubmitDetails(ctx, "ORD-404", validDetails(1)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := e.GenerateLink(ctx, "ORD-404", "https://x"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
