package models

import (
	"time"
)

// JerseyDetail is one customer's specification for a single jersey unit.
// Index i within an order's CustomerDetails corresponds to "Jersey i+1".
type JerseyDetail struct {
	Type              string `bson:"type" json:"type"`
	Name              string `bson:"name" json:"name"`
	Number            int    `bson:"number" json:"number"`
	SizeCategory      string `bson:"sizeCategory" json:"sizeCategory"`
	Size              string `bson:"size" json:"size"`
	Sleeve            string `bson:"sleeve" json:"sleeve"`
	Shorts            string `bson:"shorts" json:"shorts"`
	AdditionalDetails string `bson:"additionalDetails,omitempty" json:"additionalDetails,omitempty"`
}

// Notification records that a message would have been sent for an order.
// There is no real delivery; Status is always "sent".
type Notification struct {
	ID            string    `bson:"id" json:"id"`
	OrderID       string    `bson:"orderId" json:"orderId"`
	Type          string    `bson:"type" json:"type"`
	Message       string    `bson:"message" json:"message"`
	SentDate      time.Time `bson:"sentDate" json:"sentDate"`
	Status        string    `bson:"status" json:"status"`
	AutoGenerated bool      `bson:"autoGenerated,omitempty" json:"autoGenerated,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID                   string         `bson:"_id" json:"id"`
	CustomerName         string         `bson:"customerName" json:"customerName"`
	CustomerEmail        string         `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone        string         `bson:"customerPhone" json:"customerPhone"`
	JerseyQuantity       int            `bson:"jerseyQuantity" json:"jerseyQuantity"`
	SpecialInstructions  string         `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Status               Status         `bson:"status" json:"status"`
	CreatedDate          time.Time      `bson:"createdDate" json:"createdDate"`
	ApprovedDate         *time.Time     `bson:"approvedDate,omitempty" json:"approvedDate,omitempty"`
	RejectedDate         *time.Time     `bson:"rejectedDate,omitempty" json:"rejectedDate,omitempty"`
	DetailsSubmittedDate *time.Time     `bson:"detailsSubmittedDate,omitempty" json:"detailsSubmittedDate,omitempty"`
	CustomerDetails      []JerseyDetail `bson:"customerDetails,omitempty" json:"customerDetails,omitempty"`
	UniqueLink           string         `bson:"uniqueLink,omitempty" json:"uniqueLink,omitempty"`
	ShortLink            string         `bson:"shortLink,omitempty" json:"shortLink,omitempty"`
	Notifications        []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`

	// OrderType marks synthetic fallback orders ("live" or "simulated").
	// It is only set on orders fabricated for the customer page and is
	// never persisted.
	OrderType string `bson:"-" json:"orderType,omitempty"`
}

// HasDetails reports whether the customer already submitted jersey details.
func (o *Order) HasDetails() bool {
	return len(o.CustomerDetails) > 0
}
