package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

// ChargeRequest is the instruction handed to the external payment gateway.
type ChargeRequest struct {
	Amount      decimal.Decimal
	Currency    string
	CardToken   string
	Description string
}

// ChargeResult carries the gateway's reference for a confirmed charge.
type ChargeResult struct {
	Reference string
}

// PaymentGateway is the boundary to the external payment provider. The core
// only ever asks it for a confirmed charge.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type stripeGateway struct{}

// NewStripeGateway returns a PaymentGateway backed by Stripe.
func NewStripeGateway(apiKey string) PaymentGateway {
	stripe.Key = apiKey
	return &stripeGateway{}
}

func (g *stripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.Amount.Mul(decimal.NewFromInt(100)).IntPart()),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(req.CardToken); err != nil {
		return nil, fmt.Errorf("invalid card token: %w", err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}
	return &ChargeResult{Reference: ch.ID}, nil
}
