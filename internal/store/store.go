package store

import (
	"context"
	"errors"

	"normanbakes_back_end/internal/models"
)

var (
	ErrNotFound = errors.New("order not found")
	ErrDateFull = errors.New("collection date is fully booked")
)

// OrderStore owns all persisted order and seasonal-deal state. CreateOrder
// is the atomic reserve-if-available step: counting existing orders for the
// collection date and inserting happen under one serializing unit, so two
// concurrent submissions can never both take the last slot.
type OrderStore interface {
	// CreateOrder assigns id/createdAt, sets paymentStatus=pending and
	// stores the order, or fails with ErrDateFull when the date already
	// holds maxPerDate orders (any payment status).
	CreateOrder(ctx context.Context, order models.Order, maxPerDate int) (models.Order, error)

	GetOrder(ctx context.Context, id int64) (models.Order, error)

	// ListOrders returns every order, most recent first.
	ListOrders(ctx context.Context) ([]models.Order, error)

	// CountForDate counts stored orders for a YYYY-MM-DD date regardless
	// of payment status, pending orders hold capacity too.
	CountForDate(ctx context.Context, date string) (int, error)

	// MarkPaid transitions pending→paid and records the payment intent.
	// Idempotent: repeating it leaves the order paid with its original
	// intent reference and no error.
	MarkPaid(ctx context.Context, id int64, paymentIntentID string) (models.Order, error)

	GetActiveSeasonalDeals(ctx context.Context) ([]models.SeasonalDeal, error)
	CreateSeasonalDeal(ctx context.Context, deal models.SeasonalDeal) (models.SeasonalDeal, error)
}
