package pricing

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"normanbakes_back_end/internal/catalogue"
)

var ErrInvalidSelection = errors.New("invalid product selection")

// Quote is the server-computed price of an order selection. Amounts are in
// pence; nothing client-submitted ever ends up in here.
type Quote struct {
	TotalPence   int64 `json:"totalPence"`
	DepositPence int64 `json:"depositPence"`
	// DepositOnly means TotalPence is a fixed down-payment and the real
	// price is agreed with the customer afterwards.
	DepositOnly bool `json:"depositOnly"`
}

const (
	PolicyFull    = "full"
	PolicyPercent = "percent"
	PolicyFlat    = "flat"
)

// DepositPolicy decides how much of a quote's total is charged up front.
// It is a single configured value, not a per-call-site decision.
type DepositPolicy struct {
	Mode      string
	Percent   int64 // for PolicyPercent
	FlatPence int64 // for PolicyFlat
}

// PolicyFromEnv reads DEPOSIT_POLICY (full|percent|flat) plus
// DEPOSIT_PERCENT / DEPOSIT_FLAT_PENCE. Defaults to full payment up front,
// which is what the shop advertises.
func PolicyFromEnv() DepositPolicy {
	policy := DepositPolicy{Mode: PolicyFull}

	switch os.Getenv("DEPOSIT_POLICY") {
	case PolicyPercent:
		policy.Mode = PolicyPercent
		policy.Percent = 20
		if v, err := strconv.ParseInt(os.Getenv("DEPOSIT_PERCENT"), 10, 64); err == nil && v > 0 && v <= 100 {
			policy.Percent = v
		}
	case PolicyFlat:
		policy.Mode = PolicyFlat
		policy.FlatPence = 2000
		if v, err := strconv.ParseInt(os.Getenv("DEPOSIT_FLAT_PENCE"), 10, 64); err == nil && v > 0 {
			policy.FlatPence = v
		}
	}

	return policy
}

// DepositFor applies the policy to a total. Percent rounds half-up to the
// penny; flat deposits never exceed the total.
func (p DepositPolicy) DepositFor(totalPence int64) int64 {
	switch p.Mode {
	case PolicyPercent:
		return (totalPence*p.Percent + 50) / 100
	case PolicyFlat:
		if p.FlatPence > totalPence {
			return totalPence
		}
		return p.FlatPence
	default:
		return totalPence
	}
}

// QuoteOrder prices a selection against the static catalogue:
// total = product price + sum of extras. An empty extras list (or the
// explicit "none" entry) costs nothing. Unknown ids fail.
//
// Deposit-only products charge the whole listed placeholder (plus extras)
// up front regardless of policy, that placeholder already is the deposit.
func QuoteOrder(policy DepositPolicy, productID string, extraIDs []string) (Quote, error) {
	product, ok := catalogue.ProductByID(productID)
	if !ok {
		return Quote{}, fmt.Errorf("product %q: %w", productID, ErrInvalidSelection)
	}

	total := product.PricePence
	for _, id := range extraIDs {
		if id == "" {
			continue
		}
		extra, ok := catalogue.ExtraByID(id)
		if !ok {
			return Quote{}, fmt.Errorf("extra %q: %w", id, ErrInvalidSelection)
		}
		total += extra.PricePence
	}

	quote := Quote{TotalPence: total, DepositOnly: product.DepositOnly}
	if product.DepositOnly {
		quote.DepositPence = total
	} else {
		quote.DepositPence = policy.DepositFor(total)
	}

	return quote, nil
}

// FormatGBP renders pence for humans, e.g. 7050 to "£70.50". Display only,
// money stays in pence everywhere else.
func FormatGBP(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s£%d.%02d", sign, pence/100, pence%100)
}
