package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"normanbakes_back_end/internal/availability"
	"normanbakes_back_end/internal/catalogue"
	"normanbakes_back_end/internal/models"
	"normanbakes_back_end/internal/notify"
	"normanbakes_back_end/internal/pricing"
	"normanbakes_back_end/internal/store"
)

var ErrDateUnavailable = errors.New("collection date unavailable")

// ValidationError carries per-field reasons back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrderRequest is the client-submitted order draft. Any amount the client
// worked out for itself is deliberately absent; pricing is server-side.
type OrderRequest struct {
	CustomerName        string   `json:"customerName"`
	CustomerEmail       string   `json:"customerEmail"`
	CustomerPhone       string   `json:"customerPhone"`
	CollectionDate      string   `json:"collectionDate"`
	ProductType         string   `json:"productType"`
	ProductDetails      string   `json:"productDetails"`
	SpecialRequirements string   `json:"specialRequirements"`
	Extras              []string `json:"extras"`
}

// OrderService runs the intake pipeline: validate, price,
// reserve-if-available, persist, then notify the owner.
type OrderService struct {
	Store      store.OrderStore
	Calendar   *availability.Calendar
	Policy     pricing.DepositPolicy
	MaxPerDate int
	Notifier   notify.Notifier
}

// PlaceOrder validates and prices the request, then persists it through the
// store's atomic capacity reservation. The owner notification afterwards is
// best-effort: a failed e-mail never rolls back the stored order.
func (s *OrderService) PlaceOrder(ctx context.Context, req OrderRequest) (models.Order, error) {
	if err := s.validate(req); err != nil {
		return models.Order{}, err
	}

	date, err := availability.ParseDate(req.CollectionDate)
	if err != nil {
		return models.Order{}, &ValidationError{Fields: map[string]string{
			"collectionDate": "must be a valid YYYY-MM-DD date",
		}}
	}
	if s.Calendar.IsBlocked(date) {
		return models.Order{}, ErrDateUnavailable
	}

	quote, err := pricing.QuoteOrder(s.Policy, req.ProductType, req.Extras)
	if err != nil {
		return models.Order{}, fmt.Errorf("pricing: %w", err)
	}

	draft := models.Order{
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
		CollectionDate:      req.CollectionDate,
		ProductType:         req.ProductType,
		ProductDetails:      strings.TrimSpace(req.ProductDetails),
		SpecialRequirements: strings.TrimSpace(req.SpecialRequirements),
		Extras:              normalizeExtras(req.Extras),
		TotalPence:          quote.TotalPence,
		DepositPence:        quote.DepositPence,
		DepositOnly:         quote.DepositOnly,
	}

	order, err := s.Store.CreateOrder(ctx, draft, s.MaxPerDate)
	if err != nil {
		if errors.Is(err, store.ErrDateFull) {
			return models.Order{}, ErrDateUnavailable
		}
		return models.Order{}, fmt.Errorf("store.CreateOrder: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.Notify(notify.KindNewOrder, order)
	}

	return order, nil
}

// CheckDate reports whether a date can still be booked and how many orders
// already sit on it. Malformed dates fail with availability.ErrInvalidDate.
func (s *OrderService) CheckDate(ctx context.Context, dateStr string) (bool, int, error) {
	date, err := availability.ParseDate(dateStr)
	if err != nil {
		return false, 0, err
	}

	count, err := s.Store.CountForDate(ctx, dateStr)
	if err != nil {
		return false, 0, fmt.Errorf("store.CountForDate: %w", err)
	}

	available := !s.Calendar.IsBlocked(date) && count < s.MaxPerDate
	return available, count, nil
}

func (s *OrderService) validate(req OrderRequest) error {
	fields := make(map[string]string)

	if strings.TrimSpace(req.CustomerName) == "" {
		fields["customerName"] = "name is required"
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		fields["customerEmail"] = "email is required"
	} else if _, err := mail.ParseAddress(strings.TrimSpace(req.CustomerEmail)); err != nil {
		fields["customerEmail"] = "must be a valid email address"
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		fields["customerPhone"] = "phone number is required"
	}
	if strings.TrimSpace(req.CollectionDate) == "" {
		fields["collectionDate"] = "collection date is required"
	}
	if req.ProductType == "" {
		fields["productType"] = "product type is required"
	} else if _, ok := catalogue.ProductByID(req.ProductType); !ok {
		fields["productType"] = "unknown product type"
	}
	if strings.TrimSpace(req.ProductDetails) == "" {
		fields["productDetails"] = "product details are required"
	}
	for _, id := range req.Extras {
		if id == "" {
			continue
		}
		if _, ok := catalogue.ExtraByID(id); !ok {
			fields["extras"] = "unknown extra: " + id
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func normalizeExtras(extras []string) []string {
	var out []string
	for _, id := range extras {
		if id == "" || id == "none" {
			continue
		}
		out = append(out, id)
	}
	return out
}
