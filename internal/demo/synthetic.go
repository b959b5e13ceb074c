// Package demo fabricates plausible orders so the customer detail form
// stays exercisable when an order id cannot be resolved through the store
// or an embedded payload. Synthetic orders are flagged and never written
// back to the store.
package demo

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"jerseyorders/internal/models"
)

const (
	OrderTypeLive      = "live"
	OrderTypeSimulated = "simulated"
)

// simulatedPrefixes classify ids deterministically; anything else is
// treated as a live order.
var simulatedPrefixes = []string{"ORD-", "JERSEY-", "CUST-", "DEMO-"}

// Classify returns the order type for an unresolvable id.
func Classify(orderID string) string {
	for _, p := range simulatedPrefixes {
		if strings.HasPrefix(orderID, p) {
			return OrderTypeSimulated
		}
	}
	return OrderTypeLive
}

var customerNames = []string{
	"Sarah Johnson", "Michael Chen", "Emily Rodriguez", "David Thompson",
	"Lisa Anderson", "James Wilson", "Maria Garcia", "Robert Brown",
	"Jennifer Davis", "Christopher Lee", "Amanda Taylor", "Daniel Martinez",
}

var customerEmails = []string{
	"sarah.johnson@email.com", "michael.chen@company.com", "emily.rodriguez@team.org",
	"david.thompson@sports.com", "lisa.anderson@club.net", "james.wilson@group.com",
	"maria.garcia@league.org", "robert.brown@association.com", "jennifer.davis@union.net",
	"christopher.lee@federation.com", "amanda.taylor@alliance.org", "daniel.martinez@coalition.com",
}

var specialInstructions = []string{
	"Please ensure high quality materials are used.",
	"Rush order - needed for upcoming tournament.",
	"Standard quality materials are acceptable.",
	"Premium materials preferred for durability.",
	"Custom sizing required for team uniforms.",
	"Bulk order - please maintain consistency.",
	"Special color requirements - contact if unclear.",
	"Standard processing time is acceptable.",
}

// Generator synthesizes orders from fixed identity pools.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator builds a generator; rng may be nil for a time-seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, now: time.Now}
}

// Order synthesizes a pending order for the requested id: a random customer
// identity, quantity 1-10 and a creation date within the past 30 days.
func (g *Generator) Order(orderID string) models.Order {
	identity := g.rng.Intn(len(customerNames))
	created := g.now().AddDate(0, 0, -g.rng.Intn(30))

	return models.Order{
		ID:                  orderID,
		CustomerName:        customerNames[identity],
		CustomerEmail:       customerEmails[identity],
		CustomerPhone:       fmt.Sprintf("+1-555-%04d", g.rng.Intn(9000)+1000),
		JerseyQuantity:      g.rng.Intn(10) + 1,
		SpecialInstructions: specialInstructions[g.rng.Intn(len(specialInstructions))],
		Status:              models.StatusPending,
		CreatedDate:         created,
		OrderType:           Classify(orderID),
	}
}
