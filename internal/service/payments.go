package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"normanbakes_back_end/internal/models"
	"normanbakes_back_end/internal/notify"
	"normanbakes_back_end/internal/store"
)

var (
	ErrPaymentUnavailable = errors.New("payment gateway not configured")
	ErrPaymentNotSettled  = errors.New("payment has not been settled")
)

// PaymentIntent is the gateway-neutral view of an in-progress card charge.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Metadata     map[string]string
}

// PaymentGateway fronts the card payment provider so coordination logic
// stays testable without network calls.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountPence int64, metadata map[string]string, description string) (PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (PaymentIntent, error)
}

// PaymentService bridges stored orders to the payment gateway.
type PaymentService struct {
	Store    store.OrderStore
	Gateway  PaymentGateway // nil when no gateway credential is configured
	Notifier notify.Notifier
}

// CreateIntent opens a payment intent for the order's deposit. The amount
// always comes from the stored order; whatever the client thinks it owes
// is ignored.
func (s *PaymentService) CreateIntent(ctx context.Context, orderID int64) (string, error) {
	if s.Gateway == nil {
		return "", ErrPaymentUnavailable
	}

	order, err := s.Store.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	intent, err := s.Gateway.CreateIntent(ctx, order.DepositPence, map[string]string{
		"orderId":       strconv.FormatInt(order.ID, 10),
		"customerName":  order.CustomerName,
		"customerEmail": order.CustomerEmail,
	}, fmt.Sprintf("Deposit for %s - Order #%d", order.ProductType, order.ID))
	if err != nil {
		return "", fmt.Errorf("gateway.CreateIntent: %w", err)
	}

	return intent.ClientSecret, nil
}

// ConfirmPayment checks the intent with the gateway before touching the
// order: it must have settled and carry this order's id. Only then is the
// order marked paid (idempotently) and the owner told.
func (s *PaymentService) ConfirmPayment(ctx context.Context, orderID int64, paymentIntentID string) (models.Order, error) {
	if s.Gateway == nil {
		return models.Order{}, ErrPaymentUnavailable
	}

	order, err := s.Store.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}

	intent, err := s.Gateway.GetIntent(ctx, paymentIntentID)
	if err != nil {
		return models.Order{}, fmt.Errorf("gateway.GetIntent: %w", err)
	}
	if intent.Status != "succeeded" {
		return models.Order{}, fmt.Errorf("intent %s status %q: %w", paymentIntentID, intent.Status, ErrPaymentNotSettled)
	}
	if got := intent.Metadata["orderId"]; got != strconv.FormatInt(orderID, 10) {
		return models.Order{}, fmt.Errorf("intent %s belongs to order %q: %w", paymentIntentID, got, ErrPaymentNotSettled)
	}

	alreadyPaid := order.PaymentStatus == models.PaymentStatusPaid

	updated, err := s.Store.MarkPaid(ctx, orderID, paymentIntentID)
	if err != nil {
		return models.Order{}, err
	}

	// Repeat confirms are fine, but only the first one rings the bell.
	if !alreadyPaid && s.Notifier != nil {
		s.Notifier.Notify(notify.KindPaymentConfirmed, updated)
	}

	return updated, nil
}
