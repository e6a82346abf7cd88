package models

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Order is a persisted cake order. Money lives in pence; the only mutation
// after creation is the pending→paid transition made by payment
// coordination.
type Order struct {
	ID                    int64     `json:"id"`
	CustomerName          string    `json:"customerName"`
	CustomerEmail         string    `json:"customerEmail"`
	CustomerPhone         string    `json:"customerPhone"`
	CollectionDate        string    `json:"collectionDate"` // YYYY-MM-DD
	ProductType           string    `json:"productType"`
	ProductDetails        string    `json:"productDetails"`
	SpecialRequirements   string    `json:"specialRequirements,omitempty"`
	Extras                []string  `json:"extras,omitempty"`
	TotalPence            int64     `json:"totalPence"`
	DepositPence          int64     `json:"depositPence"`
	DepositOnly           bool      `json:"depositOnly"`
	PaymentStatus         string    `json:"paymentStatus"`
	StripePaymentIntentID string    `json:"stripePaymentIntentId,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}
