package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

const stripeTimeout = 15 * time.Second

// StripeGateway implements PaymentGateway on the global Stripe client.
// Construct it only when a secret key is configured.
type StripeGateway struct{}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountPence int64, metadata map[string]string, description string) (PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, stripeTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountPence),
		Currency: stripe.String(string(stripe.CurrencyGBP)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata:    metadata,
		Description: stripe.String(description),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.NewString())

	intent, err := paymentintent.New(params)
	if err != nil {
		return PaymentIntent{}, err
	}

	return PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		Metadata:     intent.Metadata,
	}, nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, stripeTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(id, params)
	if err != nil {
		return PaymentIntent{}, err
	}

	return PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		Metadata:     intent.Metadata,
	}, nil
}
