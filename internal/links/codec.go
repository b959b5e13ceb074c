// Package links builds shareable customer URLs, encodes order snapshots
// into self-contained payload tokens and shortens links through external
// providers.
package links

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jerseyorders/internal/models"
)

// ErrDecode marks any payload decoding failure. Callers treat it as a soft
// failure and fall back to a store lookup; it is never shown to customers.
var ErrDecode = errors.New("payload decode failed")

// Snapshot is the minimal order subset embedded in a shareable link so the
// customer page can render without reaching the store. Notifications, links
// and submitted details are intentionally excluded.
type Snapshot struct {
	ID                  string        `json:"id"`
	CustomerName        string        `json:"customerName"`
	CustomerEmail       string        `json:"customerEmail"`
	CustomerPhone       string        `json:"customerPhone"`
	JerseyQuantity      int           `json:"jerseyQuantity"`
	Status              models.Status `json:"status"`
	SpecialInstructions string        `json:"specialInstructions"`
	CreatedDate         string        `json:"createdDate"`
}

// SnapshotOf extracts the embeddable subset of an order.
func SnapshotOf(o models.Order) Snapshot {
	return Snapshot{
		ID:                  o.ID,
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		CustomerPhone:       o.CustomerPhone,
		JerseyQuantity:      o.JerseyQuantity,
		Status:              o.Status,
		SpecialInstructions: o.SpecialInstructions,
		CreatedDate:         o.CreatedDate.UTC().Format(time.RFC3339),
	}
}

// Order rebuilds a displayable order from a decoded snapshot.
func (s Snapshot) Order() models.Order {
	created, _ := time.Parse(time.RFC3339, s.CreatedDate)
	return models.Order{
		ID:                  s.ID,
		CustomerName:        s.CustomerName,
		CustomerEmail:       s.CustomerEmail,
		CustomerPhone:       s.CustomerPhone,
		JerseyQuantity:      s.JerseyQuantity,
		Status:              s.Status,
		SpecialInstructions: s.SpecialInstructions,
		CreatedDate:         created,
	}
}

// EncodePayload serializes the snapshot to UTF-8 JSON and base64-encodes it.
func EncodePayload(s Snapshot) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePayload reverses EncodePayload. The embedded id must match wantID;
// any mismatch or malformed token yields ErrDecode.
func DecodePayload(token, wantID string) (Snapshot, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		if raw, err = base64.URLEncoding.DecodeString(token); err != nil {
			return Snapshot{}, fmt.Errorf("%w: invalid base64", ErrDecode)
		}
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: invalid json", ErrDecode)
	}
	if s.ID == "" || s.ID != wantID {
		return Snapshot{}, fmt.Errorf("%w: id mismatch", ErrDecode)
	}
	return s, nil
}

// BuildShareableURL constructs the canonical customer link:
// <base>/customer.html?order=<id>&action=details&payload=<token>.
// Parameter order is preserved so the link shape stays stable.
func BuildShareableURL(o models.Order, base string) (string, error) {
	token, err := EncodePayload(SnapshotOf(o))
	if err != nil {
		return "", err
	}
	base = strings.TrimSuffix(base, "/")
	return fmt.Sprintf("%s/customer.html?order=%s&action=details&payload=%s",
		base, url.QueryEscape(o.ID), url.QueryEscape(token)), nil
}
