// Package store provides the durable keyed collection of orders. Two
// interchangeable backends satisfy the same contract: Memory (local-only)
// and Mongo (remote document store).
package store

import (
	"context"
	"errors"
	"time"

	"jerseyorders/internal/models"
)

// ErrNotFound signals an unknown order id. Callers distinguish "nothing
// changed" from a functional failure with errors.Is.
var ErrNotFound = errors.New("order not found")

// Patch is a partial update, shallow-merged into the stored record. Nil
// fields are left untouched. The store does not validate field semantics;
// that is the caller's responsibility.
type Patch struct {
	Status               *models.Status
	ApprovedDate         *time.Time
	RejectedDate         *time.Time
	DetailsSubmittedDate *time.Time
	CustomerDetails      []models.JerseyDetail
	UniqueLink           *string
	ShortLink            *string
	Notifications        []models.Notification
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status models.Status
	// Search is matched case-insensitively against id, customer name,
	// email and phone.
	Search string
	// DateRange is a creation-date bucket: "today", "week", "month" or
	// "year".
	DateRange string
	// HasDetails filters on presence of submitted customer details.
	HasDetails *bool
}

// Store is the order persistence contract. Every mutating call persists
// synchronously before returning. There is no optimistic locking; the last
// update to land wins.
type Store interface {
	// Create assigns an id, pending status and creation date, persists
	// the order and returns the stored record.
	Create(ctx context.Context, o models.Order) (models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	// Update shallow-merges the patch and returns the updated record.
	Update(ctx context.Context, id string, p Patch) (models.Order, error)
	// List returns matching orders, newest first.
	List(ctx context.Context, f Filter) ([]models.Order, error)
	Delete(ctx context.Context, id string) error
}

// matchesDateRange implements the creation-date buckets used by the
// in-process backend; the document store translates the same buckets into
// query conditions.
func matchesDateRange(created, now time.Time, bucket string) bool {
	switch bucket {
	case "", "all":
		return true
	case "today":
		y1, m1, d1 := created.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case "week":
		return !created.Before(now.Add(-7 * 24 * time.Hour))
	case "month":
		return !created.Before(now.Add(-30 * 24 * time.Hour))
	case "year":
		return !created.Before(now.Add(-365 * 24 * time.Hour))
	}
	return true
}
